package types

import (
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
)

// Availability is the detection outcome for a component. It decides whether
// the component is installed.
type Availability string

const (
	// AvailabilityAvailable means detection found the application.
	AvailabilityAvailable Availability = "Available"
	// AvailabilityUnavailable means detection ran and found nothing.
	AvailabilityUnavailable Availability = "Unavailable"
	// AvailabilityIgnored excludes the component on request.
	AvailabilityIgnored Availability = "Ignored"
	// AvailabilityAlwaysInstall installs the component without detection.
	AvailabilityAlwaysInstall Availability = "AlwaysInstall"
	// AvailabilityNeverInstall never installs the component.
	AvailabilityNeverInstall Availability = "NeverInstall"
	// AvailabilityDetectionFailure marks a component whose metadata could not be used.
	AvailabilityDetectionFailure Availability = "DetectionFailure"
	// AvailabilityNoLogic marks a component with no metadata while autodetect is off.
	AvailabilityNoLogic Availability = "NoLogic"
)

var allAvailabilities = []Availability{
	AvailabilityAvailable,
	AvailabilityUnavailable,
	AvailabilityIgnored,
	AvailabilityAlwaysInstall,
	AvailabilityNeverInstall,
	AvailabilityDetectionFailure,
	AvailabilityNoLogic,
}

// AllAvailabilities returns every classification in declaration order.
func AllAvailabilities() []Availability {
	out := make([]Availability, len(allAvailabilities))
	copy(out, allAvailabilities)
	return out
}

// ParseAvailability converts a descriptor token into an Availability.
// Matching is case-insensitive; unknown tokens are configuration errors.
func ParseAvailability(token string) (Availability, error) {
	trimmed := strings.TrimSpace(token)
	for _, a := range allAvailabilities {
		if strings.EqualFold(string(a), trimmed) {
			return a, nil
		}
	}
	return "", errors.Newf(errors.ErrConfigValid, "unknown availability %q", token).
		WithDetail("token", token)
}

// Installable reports whether components with this classification get linked.
func (a Availability) Installable() bool {
	return a == AvailabilityAvailable || a == AvailabilityAlwaysInstall
}

// String implements fmt.Stringer
func (a Availability) String() string {
	return string(a)
}
