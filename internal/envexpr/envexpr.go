// Package envexpr substitutes ${env.KEY} references in configuration text.
package envexpr

import (
	"os"
	"strings"
	"unicode"
)

const prefix = "${env."

// Expand replaces every ${env.KEY} in value with lookup(KEY). A reference
// without a closing brace is kept literally; one whose key holds anything
// but letters, digits or '_' keeps its prefix and is scanned again after it.
func Expand(value string, lookup func(key string) string) string {
	if !strings.Contains(value, prefix) {
		return value
	}
	var b strings.Builder
	rest := value
	for {
		idx := strings.Index(rest, prefix)
		if idx < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:idx])
		body := rest[idx+len(prefix):]
		end := strings.IndexByte(body, '}')
		if end < 0 {
			b.WriteString(rest[idx:])
			return b.String()
		}
		key := body[:end]
		if !isKey(key) {
			b.WriteString(prefix)
			rest = body
			continue
		}
		b.WriteString(lookup(key))
		rest = body[end+1:]
	}
}

// ExpandEnv expands references from the process environment.
func ExpandEnv(value string) string {
	return Expand(value, os.Getenv)
}

func isKey(key string) bool {
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
