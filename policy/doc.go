// Package policy provides the feedback rule of the multi-level ready queues:
// given how a unit used its last quantum, pick the level it is requeued at.
package policy
