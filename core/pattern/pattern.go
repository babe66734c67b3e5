// Package pattern matches asset relative paths against wildcard or regular expression
// patterns. Both kinds are case-insensitive and must match the whole path.
package pattern

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// ErrInvalidPattern is wrapped by every compile or evaluation failure.
var ErrInvalidPattern = errors.New("invalid file pattern")

// matchTimeout bounds a single regex evaluation.
const matchTimeout = 5 * time.Second

// Kind selects how a pattern is interpreted.
type Kind int

const (
	// Wildcard patterns support '*' (any run of characters) and '?' (one character).
	Wildcard Kind = iota
	// Regex patterns are ECMAScript-style regular expressions.
	Regex
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Wildcard:
		return "wildcard"
	case Regex:
		return "regex"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind parses "wildcard" or "regex". An empty string means Wildcard.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wildcard", "glob":
		return Wildcard, nil
	case "regex", "regexp":
		return Regex, nil
	default:
		return Wildcard, fmt.Errorf("unknown file pattern type %q", s)
	}
}

// Matcher is a compiled pattern.
type Matcher struct {
	pattern string
	kind    Kind
	re      *regexp2.Regexp
}

// Compile compiles pattern according to kind.
func Compile(pattern string, kind Kind) (*Matcher, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}

	var (
		expr string
		opts regexp2.RegexOptions
	)
	switch kind {
	case Wildcard:
		expr = wildcardToRegex(pattern)
		opts = regexp2.IgnoreCase | regexp2.Singleline
	case Regex:
		expr = "^(?:" + pattern + ")$"
		opts = regexp2.IgnoreCase | regexp2.ECMAScript
	default:
		return nil, fmt.Errorf("%w: unknown pattern kind %s", ErrInvalidPattern, kind)
	}

	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
	}
	re.MatchTimeout = matchTimeout

	return &Matcher{pattern: pattern, kind: kind, re: re}, nil
}

// Match reports whether the whole path matches.
func (m *Matcher) Match(path string) (bool, error) {
	ok, err := m.re.MatchString(path)
	if err != nil {
		return false, fmt.Errorf("%w: %q against %q: %v", ErrInvalidPattern, m.pattern, path, err)
	}
	return ok, nil
}

// Pattern returns the source pattern.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Kind returns how the pattern is interpreted.
func (m *Matcher) Kind() Kind {
	return m.kind
}

func wildcardToRegex(pattern string) string {
	var b strings.Builder
	b.WriteString("^")
	literal := strings.Builder{}
	flush := func() {
		if literal.Len() > 0 {
			b.WriteString(regexp2.Escape(literal.String()))
			literal.Reset()
		}
	}
	for _, r := range pattern {
		switch r {
		case '*':
			flush()
			b.WriteString(".*")
		case '?':
			flush()
			b.WriteString(".")
		default:
			literal.WriteRune(r)
		}
	}
	flush()
	b.WriteString("$")
	return b.String()
}
