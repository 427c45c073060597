// Package pcb defines the process control block and the bounded process
// table the scheduler admits worker units into.
package pcb

import (
	"github.com/gbroques/process-scheduling/model/clock"
	"github.com/markphelps/optional"
	"gopkg.in/yaml.v3"
)

// PCB holds the accounting record for one active unit.
type PCB struct {
	TotalCPU  clock.Clock `json:"totalCpu" yaml:"totalCpu"`
	TotalSys  clock.Clock `json:"totalSys" yaml:"totalSys"`
	LastBurst int64       `json:"lastBurst" yaml:"lastBurst"`
	Priority  int         `json:"priority" yaml:"priority"`
	// Remaining is present only while the unit is interrupted. It is
	// serialized as remainingTime, null when absent.
	Remaining        optional.Int64 `json:"remainingTime" yaml:"-"`
	ReadyToTerminate bool           `json:"readyToTerminate" yaml:"readyToTerminate"`
}

// WasInterrupted reports whether the unit has a saved remainder to resume.
func (p *PCB) WasInterrupted() bool {
	return p.Remaining.Present()
}

// Interrupt records the unused part of the current burst.
func (p *PCB) Interrupt(remaining int64) {
	p.Remaining.Set(remaining)
}

// Resume clears the interrupted state and returns the saved remainder.
func (p *PCB) Resume() int64 {
	remaining := p.Remaining.OrElse(0)
	p.Remaining = optional.Int64{}
	return remaining
}

// Turnaround returns the total time the unit spent in the system.
func (p *PCB) Turnaround() clock.Clock {
	return p.TotalSys
}

type plainPCB PCB

type pcbDocument struct {
	plainPCB      `yaml:",inline"`
	RemainingTime *int64 `yaml:"remainingTime"`
}

// MarshalYAML implements yaml.Marshaler.
func (p PCB) MarshalYAML() (interface{}, error) {
	return pcbDocument{plainPCB: plainPCB(p), RemainingTime: p.Remaining.ToPtr()}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *PCB) UnmarshalYAML(node *yaml.Node) error {
	var doc pcbDocument
	if err := node.Decode(&doc); err != nil {
		return err
	}
	*p = PCB(doc.plainPCB)
	p.Remaining = optional.NewInt64FromPtr(doc.RemainingTime)
	return nil
}

// Record is the archived PCB of a terminated unit. Slots are reused, so the
// record is keyed by PID rather than by slot.
type Record struct {
	PID          int         `json:"pid" yaml:"pid"`
	Slot         int         `json:"slot" yaml:"slot"`
	AdmittedAt   clock.Clock `json:"admittedAt" yaml:"admittedAt"`
	TerminatedAt clock.Clock `json:"terminatedAt" yaml:"terminatedAt"`
	Dispatches   int         `json:"dispatches" yaml:"dispatches"`
	PCB          PCB         `json:"pcb" yaml:"pcb"`
}

// Wait returns the time the unit spent in the system without running.
func (r *Record) Wait() clock.Clock {
	return r.PCB.TotalSys.Sub(r.PCB.TotalCPU)
}
