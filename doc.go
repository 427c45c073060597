// Package oss simulates an operating system process scheduler.
//
// A supervisor admits worker units into a bounded process table, queues them
// on a multi-level ready queue set and hands one unit at a time a quantum of
// simulated CPU time. Each worker decides how much of its quantum it uses,
// whether it blocks on an event or is preempted, and when it terminates.
// After the completion target is reached the supervisor reports CPU,
// turnaround and wait time statistics.
//
// The root package wires the pieces together:
//
//	config, _ := oss.LoadConfig(ctx, "oss.yaml")
//	srv, _ := oss.New(oss.WithConfig(config))
//	outcome, err := srv.Run(ctx)
//
// The trace of admissions, dispatches and terminations followed by the
// statistics report is written to config.Output.Path.
package oss
