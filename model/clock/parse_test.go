package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	var testCases = []struct {
		description string
		text        string
		expect      Clock
		expectErr   error
	}{
		{description: "seconds and nanos", text: "1:000000500", expect: Clock{Seconds: 1, Nanoseconds: 500}},
		{description: "short nanos", text: "0:100000000", expect: Clock{Nanoseconds: 100_000_000}},
		{description: "seconds only", text: "5", expect: Clock{Seconds: 5}},
		{description: "surrounding space", text: "  2:3 ", expect: Clock{Seconds: 2, Nanoseconds: 3}},
		{description: "normalized", text: "0:1500000000", expect: Clock{Seconds: 1, Nanoseconds: 500_000_000}},
		{description: "empty", text: "", expectErr: ErrSyntax},
		{description: "missing nanos", text: "1:", expectErr: ErrSyntax},
		{description: "trailing input", text: "1:2x", expectErr: ErrSyntax},
		{description: "letters", text: "abc", expectErr: ErrSyntax},
		{description: "too many seconds", text: "4294967296", expectErr: ErrOverflow},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			actual, err := Parse(testCase.text)
			if testCase.expectErr != nil {
				assert.ErrorIs(t, err, testCase.expectErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, testCase.expect, actual)
		})
	}
}

func TestClock_YAML(t *testing.T) {
	type holder struct {
		Quantum Clock `yaml:"quantum"`
	}
	var h holder
	assert.NoError(t, yaml.Unmarshal([]byte("quantum: 0:100000000\n"), &h))
	assert.Equal(t, Clock{Nanoseconds: 100_000_000}, h.Quantum)

	data, err := yaml.Marshal(h)
	assert.NoError(t, err)
	assert.Equal(t, "quantum: 0:100000000\n", string(data))
}
