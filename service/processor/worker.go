package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/gbroques/process-scheduling/internal/logger"
	"github.com/gbroques/process-scheduling/model/clock"
	"github.com/gbroques/process-scheduling/model/dispatch"
	"github.com/gbroques/process-scheduling/service/messaging"
	"github.com/gbroques/process-scheduling/service/messaging/memory"
	"golang.org/x/exp/rand"
)

type worker struct {
	pid      int
	slot     int
	service  *Service
	inbox    *memory.Queue[dispatch.Dispatch]
	rng      *rand.Rand
	mark     clock.Clock
	ctx      context.Context
	cancelFn context.CancelFunc
}

func newWorker(ctx context.Context, cancel context.CancelFunc, s *Service, spawn dispatch.Spawn) *worker {
	return &worker{
		pid:      spawn.PID,
		slot:     spawn.Slot,
		service:  s,
		inbox:    s.newInbox(),
		rng:      rand.New(rand.NewSource(uint64(spawn.Seed))),
		mark:     spawn.AdmittedAt,
		ctx:      ctx,
		cancelFn: cancel,
	}
}

// run consumes dispatches until the unit terminates or is aborted.
func (w *worker) run() {
	defer w.service.workerWg.Done()
	defer w.cancelFn()

	for {
		msg, err := w.inbox.Consume(w.ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, messaging.ErrClosed) {
				return
			}
			w.service.logger.Error("worker inbox failed", logger.PIDAttr(w.pid), logger.ErrAttr(err))
			return
		}

		report := w.handle(msg)
		if report.Terminal() {
			w.service.release(w)
		}
		if err := w.service.reports.Publish(w.ctx, &report); err != nil {
			w.service.logger.Debug("report not delivered", logger.PIDAttr(w.pid), logger.ErrAttr(err))
			return
		}
		if report.Terminal() {
			return
		}
	}
}

// handle runs one turn and releases the dispatch slot. A dispatch that does
// not name this worker is rejected and reported as failed.
func (w *worker) handle(msg messaging.Message[dispatch.Dispatch]) dispatch.Report {
	d := msg.T()
	if current, _, _ := w.service.slot.Current(); current != w.slot || d.Slot != w.slot {
		err := fmt.Errorf("%w: worker slot %d, dispatched %d, named %d", dispatch.ErrNotScheduled, w.slot, d.Slot, current)
		_ = msg.Nack(err)
		return dispatch.Report{Slot: w.slot, PID: w.pid, PCB: d.PCB, Err: err}
	}

	report := w.turn(d)
	if err := w.service.slot.Release(w.slot); err != nil {
		report.Err = err
		_ = msg.Nack(err)
		return report
	}
	_ = msg.Ack()
	return report
}

// turn simulates the use of one quantum and updates the unit's PCB.
func (w *worker) turn(d *dispatch.Dispatch) dispatch.Report {
	entry := d.PCB
	report := dispatch.Report{Slot: w.slot, PID: w.pid, Outcome: d.Outcome}

	var usage int64
	if entry.WasInterrupted() {
		usage = entry.Resume()
		report.Resumed = true
		report.Outcome = dispatch.Normal
	} else {
		usage = w.usage(d.Quantum)
	}

	used := usage
	switch report.Outcome {
	case dispatch.EventWait:
		used = 0
		if usage > 1 {
			used = 1 + w.rng.Int63n(usage-1)
		}
		entry.Interrupt(usage - used)
		report.WaitDelay = w.rng.Int63n(w.service.waitMax + 1)
	case dispatch.Preempted:
		if usage > 1 {
			percent := 1 + w.rng.Int63n(99)
			used = max(1, usage*percent/100)
			entry.Interrupt(usage - used)
		}
	}

	end := d.Now.AddNanos(uint64(used))
	entry.TotalSys = entry.TotalSys.Add(end.Sub(w.mark)).AddNanos(uint64(report.WaitDelay))
	entry.TotalCPU = entry.TotalCPU.AddNanos(uint64(used))
	entry.LastBurst = used
	w.mark = end

	if report.Outcome == dispatch.Normal && !entry.WasInterrupted() &&
		entry.TotalCPU.IsPast(w.service.threshold) && w.rng.Intn(2) == 0 {
		entry.ReadyToTerminate = true
	}

	report.PCB = entry
	report.Burst = used
	return report
}

// usage picks the full quantum or a random part of it.
func (w *worker) usage(quantum int64) int64 {
	if quantum <= 1 || w.rng.Intn(2) == 0 {
		return quantum
	}
	return 1 + w.rng.Int63n(quantum-1)
}
