package dao

// Parameter narrows a List call.
type Parameter struct {
	Name  string
	Value interface{}
}

// NewParameter creates a parameter; a single value is stored unwrapped.
func NewParameter(name string, values ...int) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}
