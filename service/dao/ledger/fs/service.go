// Package fs archives terminated units as JSON documents under a base URL
// through the afs storage abstraction.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gbroques/process-scheduling/model/pcb"
	"github.com/gbroques/process-scheduling/service/dao"
	"github.com/gbroques/process-scheduling/service/dao/criteria"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// Service implements a storage-backed archive of pcb.Record.
type Service struct {
	baseURL string
	fs      afs.Service
	mu      sync.RWMutex
}

// Ensure Service implements dao.Service
var _ dao.Service[int, pcb.Record] = (*Service)(nil)

// Save persists a record
func (s *Service) Save(ctx context.Context, record *pcb.Record) error {
	if record == nil {
		return dao.ErrNilEntity
	}
	if record.PID < 0 {
		return dao.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record %d: %w", record.PID, err)
	}
	location := s.recordURL(record.PID)
	if err = s.fs.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save record to %s: %w", location, err)
	}
	return nil
}

// Load retrieves a record by PID
func (s *Service) Load(ctx context.Context, pid int) (*pcb.Record, error) {
	if pid < 0 {
		return nil, dao.ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	location := s.recordURL(pid)
	exists, err := s.fs.Exists(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to check record %d: %w", pid, err)
	}
	if !exists {
		return nil, fmt.Errorf("record %d: %w", pid, dao.ErrNotFound)
	}
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read record %d: %w", pid, err)
	}
	var record pcb.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record %d: %w", pid, err)
	}
	return &record, nil
}

// Delete removes a record
func (s *Service) Delete(ctx context.Context, pid int) error {
	if pid < 0 {
		return dao.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	location := s.recordURL(pid)
	exists, err := s.fs.Exists(ctx, location)
	if err != nil {
		return fmt.Errorf("failed to check record %d: %w", pid, err)
	}
	if !exists {
		return fmt.Errorf("record %d: %w", pid, dao.ErrNotFound)
	}
	if err := s.fs.Delete(ctx, location); err != nil {
		return fmt.Errorf("failed to delete record %d: %w", pid, err)
	}
	return nil
}

// List returns matching records ordered by PID
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*pcb.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objects, err := s.fs.List(ctx, s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	var records []*pcb.Record
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", object.URL(), err)
		}
		var record pcb.Record
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", object.URL(), err)
		}
		if !criteria.Match(record.Slot, record.PCB.Priority, parameters) {
			continue
		}
		records = append(records, &record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].PID < records[j].PID })
	return records, nil
}

func (s *Service) recordURL(pid int) string {
	return url.Join(s.baseURL, fmt.Sprintf("%06d.json", pid))
}

// New creates an archive rooted at baseURL, creating the location if needed.
func New(ctx context.Context, baseURL string) (*Service, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	fs := afs.New()
	baseURL = url.Normalize(baseURL, file.Scheme)
	exists, _ := fs.Exists(ctx, baseURL)
	if !exists {
		if err := fs.Create(ctx, baseURL, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", baseURL, err)
		}
	}
	return &Service{baseURL: baseURL, fs: fs}, nil
}
