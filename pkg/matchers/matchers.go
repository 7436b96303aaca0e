// Package matchers finds the inventory records whose display name matches a
// component's detection pattern.
package matchers

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/inventory"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// Predicate reports whether a display name matches.
type Predicate func(displayName string) bool

// DefaultPattern is the glob used when a component gives no pattern.
func DefaultPattern(name string) string {
	return "*" + name + "*"
}

// Compile builds the predicate for pattern. Glob syntax is the default;
// useRegex switches to an unanchored regular expression search. Invalid
// patterns are configuration errors.
func Compile(pattern string, caseSensitive, useRegex bool) (Predicate, error) {
	if useRegex {
		expr := pattern
		if !caseSensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "invalid match expression %q", pattern).
				WithDetail("pattern", pattern)
		}
		return re.MatchString, nil
	}

	glob := globPattern(pattern)
	if !caseSensitive {
		glob = strings.ToLower(glob)
	}
	if !doublestar.ValidatePattern(glob) {
		return nil, errors.Newf(errors.ErrConfigValid, "invalid match pattern %q", pattern).
			WithDetail("pattern", pattern)
	}
	return func(displayName string) bool {
		if !caseSensitive {
			displayName = strings.ToLower(displayName)
		}
		ok, err := doublestar.Match(glob, separatorFree.Replace(displayName))
		return err == nil && ok
	}, nil
}

// Display names are not paths: doublestar's '/' separator is swapped for NUL,
// which no display name holds, so '*' and '?' match any character.
var separatorFree = strings.NewReplacer("/", "\x00")

// globPattern makes a display-name pattern safe for doublestar. Slashes
// become ordinary characters and backslashes are literal, not escapes.
func globPattern(pattern string) string {
	return strings.NewReplacer("/", "\x00", `\`, `\\`).Replace(pattern)
}

// Matcher matches patterns against one inventory snapshot.
type Matcher struct {
	snapshot *inventory.Snapshot
	logger   zerolog.Logger
}

// New creates a matcher over snapshot.
func New(snapshot *inventory.Snapshot) *Matcher {
	return &Matcher{
		snapshot: snapshot,
		logger:   logging.GetLogger("matchers"),
	}
}

// Match returns every record whose display name satisfies the pattern, in
// snapshot order. No match is an empty result, not an error.
func (m *Matcher) Match(pattern string, caseSensitive, useRegex bool) ([]inventory.Record, error) {
	pred, err := Compile(pattern, caseSensitive, useRegex)
	if err != nil {
		return nil, err
	}

	var matched []inventory.Record
	for _, r := range m.snapshot.Records() {
		if pred(r.DisplayName) {
			matched = append(matched, r)
		}
	}

	m.logger.Trace().
		Str("pattern", pattern).
		Bool("caseSensitive", caseSensitive).
		Bool("regex", useRegex).
		Int("matches", len(matched)).
		Msg("Matched inventory")

	return matched, nil
}
