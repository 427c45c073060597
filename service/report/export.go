package report

import (
	"fmt"

	"github.com/viant/toolbox"
	"gopkg.in/yaml.v3"
)

type export struct {
	Units            int
	Divisor          int
	TotalCPU         string
	TotalSys         string
	AvgCPU           string
	AvgTurnaround    string
	AvgWait          string
	StdDevTurnaround float64
	P50Turnaround    float64
	P95Turnaround    float64
}

// AsMap returns the summary without per-unit rows as a generic map. Empty
// values are dropped.
func (s *Summary) AsMap() (map[string]interface{}, error) {
	source := export{
		Units:            s.Units,
		Divisor:          s.Divisor,
		TotalCPU:         s.TotalCPU.String(),
		TotalSys:         s.TotalSys.String(),
		AvgCPU:           s.AvgCPU.String(),
		AvgTurnaround:    s.AvgTurnaround.String(),
		AvgWait:          s.AvgWait.String(),
		StdDevTurnaround: s.StdDevTurnaround,
		P50Turnaround:    s.P50Turnaround,
		P95Turnaround:    s.P95Turnaround,
	}
	aMap := map[string]interface{}{}
	if err := toolbox.DefaultConverter.AssignConverted(&aMap, source); err != nil {
		return nil, fmt.Errorf("failed to convert summary: %w", err)
	}
	return toolbox.DeleteEmptyKeys(aMap), nil
}

// YAML encodes the summary map.
func (s *Summary) YAML() ([]byte, error) {
	aMap, err := s.AsMap()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(aMap)
}
