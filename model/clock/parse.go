package clock

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	whitespaceCode = iota + 1
	digitsCode
	colonCode
)

var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	digitsToken     = parsly.NewToken(digitsCode, "Digits", &digitsMatcher{})
	colonToken      = parsly.NewToken(colonCode, ":", matcher.NewByte(':'))
)

type digitsMatcher struct{}

func (m *digitsMatcher) Match(cursor *parsly.Cursor) int {
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if c := cursor.Input[i]; c < '0' || c > '9' {
			break
		}
		matched++
	}
	return matched
}

// Parse reads a clock written as "seconds:nanoseconds" or "seconds".
// Nanoseconds above one second are normalized.
func Parse(text string) (Clock, error) {
	cursor := parsly.NewCursor("", []byte(strings.TrimSpace(text)), 0)
	matched := cursor.MatchAfterOptional(whitespaceToken, digitsToken)
	if matched.Code != digitsCode {
		return Zero, fmt.Errorf("%w: %q: %v", ErrSyntax, text, cursor.NewError(digitsToken))
	}
	seconds, err := strconv.ParseUint(matched.Text(cursor), 10, 64)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q: %v", ErrSyntax, text, err)
	}
	var nanos uint64
	switch cursor.MatchOne(colonToken).Code {
	case colonCode:
		matched = cursor.MatchOne(digitsToken)
		if matched.Code != digitsCode {
			return Zero, fmt.Errorf("%w: %q: %v", ErrSyntax, text, cursor.NewError(digitsToken))
		}
		if nanos, err = strconv.ParseUint(matched.Text(cursor), 10, 64); err != nil {
			return Zero, fmt.Errorf("%w: %q: %v", ErrSyntax, text, err)
		}
	case parsly.EOF:
		return newChecked(text, seconds, 0)
	}
	if cursor.HasMore() {
		return Zero, fmt.Errorf("%w: %q: unexpected trailing input", ErrSyntax, text)
	}
	return newChecked(text, seconds, nanos)
}

func newChecked(text string, seconds, nanos uint64) (Clock, error) {
	if seconds+nanos/NanosPerSecond > uint64(Max.Seconds) {
		return Zero, fmt.Errorf("%w: %q", ErrOverflow, text)
	}
	return New(seconds, nanos), nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Clock) UnmarshalText(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
