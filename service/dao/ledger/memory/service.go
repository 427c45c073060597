// Package memory keeps the archive of terminated units in memory.
package memory

import (
	"context"
	"sort"

	"github.com/gbroques/process-scheduling/model/pcb"
	"github.com/gbroques/process-scheduling/service/dao"
	"github.com/gbroques/process-scheduling/service/dao/criteria"
	"github.com/gbroques/process-scheduling/service/dao/store"
)

// Service is an in-memory, thread-safe archive of pcb.Record keyed by PID.
type Service struct {
	*store.MemoryStore[int, pcb.Record]
}

var _ dao.Service[int, pcb.Record] = (*Service)(nil)

// Save validates and archives record.
func (s *Service) Save(ctx context.Context, record *pcb.Record) error {
	if record == nil {
		return dao.ErrNilEntity
	}
	if record.PID < 0 {
		return dao.ErrInvalidID
	}
	return s.MemoryStore.Save(ctx, record)
}

// List returns matching records ordered by PID.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*pcb.Record, error) {
	records, err := s.MemoryStore.List(ctx, parameters...)
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool { return records[i].PID < records[j].PID })
	return records, nil
}

// New creates an empty archive.
func New() *Service {
	return &Service{
		MemoryStore: store.NewMemoryStore[int, pcb.Record](
			func(r *pcb.Record) int { return r.PID },
			func(r *pcb.Record, parameters []*dao.Parameter) bool {
				return criteria.Match(r.Slot, r.PCB.Priority, parameters)
			},
		),
	}
}
