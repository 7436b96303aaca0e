// Package descriptor reads component metadata files.
//
// A descriptor is an XML document named <component>.xml:
//
//	<Component>
//	  <FriendlyName>Visual Studio Code</FriendlyName>
//	  <Detection>
//	    <Method>Automatic</Method>
//	    <MatchPattern>Microsoft Visual Studio Code*</MatchPattern>
//	    <MatchRegEx>false</MatchRegEx>
//	    <MatchCaseSensitive>false</MatchCaseSensitive>
//	    <MatchVersion>>= 1.80</MatchVersion>
//	  </Detection>
//	  <InstallPath>
//	    <SpecialFolder>ApplicationData</SpecialFolder>
//	    <Destination>Code/User</Destination>
//	  </InstallPath>
//	</Component>
//
// Element names are matched case-insensitively.
package descriptor

import (
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/matchers"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/beevik/etree"
)

// Detection methods
const (
	MethodAutomatic = "Automatic"
	MethodStatic    = "Static"
)

// Detection says how a component's availability is decided. It is one of
// Automatic, Static or Invalid.
type Detection interface {
	isDetection()
}

// Automatic matches a pattern against the software inventory. Version, when
// set, is a constraint the matched record's display version must meet.
type Automatic struct {
	Pattern       string
	CaseSensitive bool
	Regex         bool
	Version       string
}

// Static assigns a fixed classification.
type Static struct {
	Availability types.Availability
}

// Invalid records a detection block that could not be interpreted.
type Invalid struct {
	Err error
}

func (Automatic) isDetection() {}
func (Static) isDetection()    {}
func (Invalid) isDetection()   {}

// DefaultDetection is the automatic detection used for a component named name
// when nothing more specific is configured.
func DefaultDetection(name string) Automatic {
	return Automatic{Pattern: matchers.DefaultPattern(name)}
}

// InstallPath holds the raw install location fields. Empty means absent.
type InstallPath struct {
	SpecialFolder string
	Destination   string
}

// Descriptor is a parsed metadata file.
type Descriptor struct {
	// Name is the component the descriptor belongs to.
	Name string

	// Path is the file it was read from; Origin says which directory.
	Path   string
	Origin Origin

	FriendlyName string
	Detection    Detection
	InstallPath  InstallPath
}

// Origin is the directory a descriptor was found in.
type Origin string

const (
	OriginCustom Origin = "custom"
	OriginGlobal Origin = "global"
)

// Parse reads a descriptor document for the component name. Malformed XML
// or a wrong root element is an error; problems inside <Detection> become an
// Invalid detection instead so the rest of the descriptor stays usable.
func Parse(name string, data []byte) (*Descriptor, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDescriptorParse, "malformed descriptor for %s", name).
			WithDetail("component", name)
	}

	root := doc.Root()
	if root == nil || !strings.EqualFold(root.Tag, "Component") {
		return nil, errors.Newf(errors.ErrDescriptorParse, "descriptor for %s has no <Component> root", name).
			WithDetail("component", name)
	}

	d := &Descriptor{
		Name:         name,
		FriendlyName: childText(root, "FriendlyName"),
		Detection:    parseDetection(name, child(root, "Detection")),
	}

	if ip := child(root, "InstallPath"); ip != nil {
		d.InstallPath = InstallPath{
			SpecialFolder: childText(ip, "SpecialFolder"),
			Destination:   childText(ip, "Destination"),
		}
	}

	return d, nil
}

func parseDetection(name string, el *etree.Element) Detection {
	if el == nil {
		return DefaultDetection(name)
	}

	method := childText(el, "Method")
	switch {
	case method == "" || strings.EqualFold(method, MethodAutomatic):
		return parseAutomatic(name, el)
	case strings.EqualFold(method, MethodStatic):
		token := childText(el, "Availability")
		if token == "" {
			return Invalid{Err: errors.Newf(errors.ErrDescriptorParse, "static detection for %s has no <Availability>", name).
				WithDetail("component", name)}
		}
		a, err := types.ParseAvailability(token)
		if err != nil {
			return Invalid{Err: err}
		}
		return Static{Availability: a}
	default:
		return Invalid{Err: errors.Newf(errors.ErrDescriptorParse, "unknown detection method %q for %s", method, name).
			WithDetail("component", name).
			WithDetail("method", method)}
	}
}

func parseAutomatic(name string, el *etree.Element) Detection {
	det := DefaultDetection(name)
	if p := childText(el, "MatchPattern"); p != "" {
		det.Pattern = p
	}

	var err error
	if det.Regex, err = parseBool(childText(el, "MatchRegEx"), false); err != nil {
		return Invalid{Err: errors.Wrapf(err, errors.ErrDescriptorParse, "bad <MatchRegEx> for %s", name)}
	}
	if det.CaseSensitive, err = parseBool(childText(el, "MatchCaseSensitive"), false); err != nil {
		return Invalid{Err: errors.Wrapf(err, errors.ErrDescriptorParse, "bad <MatchCaseSensitive> for %s", name)}
	}
	if v := childText(el, "MatchVersion"); v != "" {
		if _, err := matchers.CompileVersion(v); err != nil {
			return Invalid{Err: errors.Wrapf(err, errors.ErrDescriptorParse, "bad <MatchVersion> for %s", name)}
		}
		det.Version = v
	}
	return det
}

// parseBool accepts true/false, 1/0 and yes/no. Empty yields def.
func parseBool(s string, def bool) (bool, error) {
	switch strings.ToLower(s) {
	case "":
		return def, nil
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		return false, errors.Newf(errors.ErrConfigValid, "invalid boolean %q", s).
			WithDetail("value", s)
	}
}

func child(el *etree.Element, tag string) *etree.Element {
	for _, c := range el.ChildElements() {
		if strings.EqualFold(c.Tag, tag) {
			return c
		}
	}
	return nil
}

func childText(el *etree.Element, tag string) string {
	c := child(el, tag)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Text())
}
