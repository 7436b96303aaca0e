package matchers

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/inventory"
)

// leadingVersion picks the numeric part of display versions such as
// "2.45.1.windows.1" or "9.1 (build 42)".
var leadingVersion = regexp.MustCompile(`^v?(\d+(?:\.\d+){0,2})`)

// CompileVersion parses a version constraint such as ">= 1.80, < 2".
func CompileVersion(constraint string) (*semver.Constraints, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigValid, "invalid version constraint %q", constraint).
			WithDetail("constraint", constraint)
	}
	return c, nil
}

// ParseVersion reads a display version leniently. Trailing segments that
// are not part of a semantic version are dropped.
func ParseVersion(s string) (*semver.Version, error) {
	s = strings.TrimSpace(s)
	if v, err := semver.NewVersion(s); err == nil {
		return v, nil
	}
	m := leadingVersion.FindStringSubmatch(s)
	if m == nil {
		return nil, errors.Newf(errors.ErrInvalidInput, "no version in %q", s)
	}
	return semver.NewVersion(m[1])
}

// FilterVersion keeps the records whose display version satisfies c, in
// order. Records without a readable version never satisfy a constraint.
func FilterVersion(records []inventory.Record, c *semver.Constraints) []inventory.Record {
	var kept []inventory.Record
	for _, r := range records {
		v, err := ParseVersion(r.DisplayVersion)
		if err != nil {
			continue
		}
		if c.Check(v) {
			kept = append(kept, r)
		}
	}
	return kept
}
