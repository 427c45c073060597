package fs

import (
	"context"
	"testing"

	"github.com/gbroques/process-scheduling/model/clock"
	"github.com/gbroques/process-scheduling/model/pcb"
	"github.com/gbroques/process-scheduling/service/dao"
	"github.com/gbroques/process-scheduling/service/dao/criteria"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	_, err := New(ctx, "")
	assert.Error(t, err)

	srv, err := New(ctx, t.TempDir()+"/archive")
	require.NoError(t, err)

	assert.ErrorIs(t, srv.Save(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, srv.Save(ctx, &pcb.Record{PID: -2}), dao.ErrInvalidID)

	records := []*pcb.Record{
		{PID: 11, Slot: 1, AdmittedAt: clock.New(0, 500), TerminatedAt: clock.New(3, 7), Dispatches: 4,
			PCB: pcb.PCB{TotalCPU: clock.New(0, 60_000_000), TotalSys: clock.New(3, 0), LastBurst: 1000, ReadyToTerminate: true}},
		{PID: 3, Slot: 0, PCB: pcb.PCB{ReadyToTerminate: true}},
	}
	for _, record := range records {
		require.NoError(t, srv.Save(ctx, record))
	}

	loaded, err := srv.Load(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, records[0].TerminatedAt, loaded.TerminatedAt)
	assert.Equal(t, records[0].PCB.TotalCPU, loaded.PCB.TotalCPU)
	assert.Equal(t, records[0].PCB.TotalSys, loaded.PCB.TotalSys)
	assert.Equal(t, 4, loaded.Dispatches)
	assert.False(t, loaded.PCB.WasInterrupted())

	listed, err := srv.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, 3, listed[0].PID)
	assert.Equal(t, 11, listed[1].PID)

	listed, err = srv.List(ctx, dao.NewParameter(criteria.Slot, 1))
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 11, listed[0].PID)

	require.NoError(t, srv.Delete(ctx, 3))
	_, err = srv.Load(ctx, 3)
	assert.ErrorIs(t, err, dao.ErrNotFound)
	assert.ErrorIs(t, srv.Delete(ctx, 3), dao.ErrNotFound)
}
