package criteria

import (
	"github.com/gbroques/process-scheduling/service/dao"
)

// Parameter names understood by Match.
const (
	Slot     = "Slot"
	Priority = "Priority"
)

// Match reports whether a record with the given slot and priority satisfies
// every parameter. Unknown parameters match everything.
func Match(slot, priority int, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil {
			continue
		}
		var actual int
		switch parameter.Name {
		case Slot:
			actual = slot
		case Priority:
			actual = priority
		default:
			continue
		}
		if !matchValue(actual, parameter.Value) {
			return false
		}
	}
	return true
}

func matchValue(actual int, value interface{}) bool {
	switch expected := value.(type) {
	case int:
		return actual == expected
	case []int:
		for _, candidate := range expected {
			if actual == candidate {
				return true
			}
		}
		return false
	}
	return true
}
