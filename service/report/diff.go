package report

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	sgdiff "github.com/sourcegraph/go-diff/diff"
)

// Delta describes how a rendered report differs from a baseline.
type Delta struct {
	Patch   string
	Added   int
	Changed int
	Deleted int
}

// IsEmpty reports whether the reports are identical.
func (d *Delta) IsEmpty() bool {
	return d.Patch == ""
}

// Diff compares a rendered report against a baseline rendering.
func Diff(baseline, current string) (*Delta, error) {
	if baseline == current {
		return &Delta{}, nil
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(baseline),
		B:        difflib.SplitLines(current),
		FromFile: "baseline",
		ToFile:   "current",
		Context:  1,
	}
	patch, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return nil, fmt.Errorf("failed to diff reports: %w", err)
	}
	delta := &Delta{Patch: patch}
	if patch == "" {
		return delta, nil
	}
	fileDiff, err := sgdiff.ParseFileDiff([]byte(patch))
	if err != nil {
		return nil, fmt.Errorf("failed to parse report diff: %w", err)
	}
	stats := fileDiff.Stat()
	delta.Added = int(stats.Added)
	delta.Changed = int(stats.Changed)
	delta.Deleted = int(stats.Deleted)
	return delta, nil
}
