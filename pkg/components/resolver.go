// Package components turns dotfiles root subdirectories into classified
// components with a resolved install location.
package components

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/descriptor"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/inventory"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/matchers"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/rs/zerolog"
)

// Resolver classifies components against one inventory snapshot.
type Resolver struct {
	matcher    *matchers.Matcher
	folders    paths.FolderResolver
	homeDir    string
	autodetect bool
	logger     zerolog.Logger
}

// NewResolver creates a resolver. homeDir is the install location used when
// a descriptor names neither a special folder nor a destination.
func NewResolver(snapshot *inventory.Snapshot, folders paths.FolderResolver, homeDir string, autodetect bool) *Resolver {
	return &Resolver{
		matcher:    matchers.New(snapshot),
		folders:    folders,
		homeDir:    homeDir,
		autodetect: autodetect,
		logger:     logging.GetLogger("components"),
	}
}

// Resolve builds the component for the directory name at sourcePath. desc
// is its descriptor (nil when none exists) and loadErr the error from
// loading it. Nothing here fails: problems are recorded on the component.
func (r *Resolver) Resolve(name, sourcePath string, desc *descriptor.Descriptor, loadErr error) *types.Component {
	c := &types.Component{
		Name:       name,
		SourcePath: sourcePath,
	}
	if desc != nil {
		c.FriendlyName = desc.FriendlyName
	}

	switch {
	case loadErr != nil:
		c.Availability = types.AvailabilityDetectionFailure
		c.AddProblem(loadErr)
	case desc != nil:
		r.detect(c, desc.Detection)
	case r.autodetect:
		r.detect(c, descriptor.DefaultDetection(name))
	default:
		c.Availability = types.AvailabilityNoLogic
	}

	// An unreadable descriptor may name any location, so nothing is
	// resolved for it. Path errors only count against installable components.
	if loadErr == nil {
		var ip descriptor.InstallPath
		if desc != nil {
			ip = desc.InstallPath
		}
		installPath, err := r.installPath(ip)
		switch {
		case err == nil:
			c.RemovePath = installPath
			if c.Availability.Installable() {
				c.InstallPath = installPath
			}
		case c.Availability.Installable():
			c.AddProblem(err)
		}
	}

	event := r.logger.Debug()
	if c.HasProblems() {
		event = r.logger.Warn().Errs("problems", c.Problems)
	}
	event.
		Str("component", name).
		Str("availability", c.Availability.String()).
		Str("installPath", c.InstallPath).
		Msg("Component resolved")

	return c
}

func (r *Resolver) detect(c *types.Component, det descriptor.Detection) {
	switch d := det.(type) {
	case descriptor.Automatic:
		records, err := r.matcher.Match(d.Pattern, d.CaseSensitive, d.Regex)
		if err != nil {
			c.Availability = types.AvailabilityDetectionFailure
			c.AddProblem(err)
			return
		}
		if d.Version != "" {
			constraint, err := matchers.CompileVersion(d.Version)
			if err != nil {
				c.Availability = types.AvailabilityDetectionFailure
				c.AddProblem(err)
				return
			}
			records = matchers.FilterVersion(records, constraint)
		}
		if len(records) == 0 {
			c.Availability = types.AvailabilityUnavailable
			return
		}
		ref := records[0]
		c.Availability = types.AvailabilityAvailable
		c.InventoryRef = &ref
		if c.FriendlyName == "" {
			c.FriendlyName = ref.DisplayName
		}
	case descriptor.Static:
		c.Availability = d.Availability
	case descriptor.Invalid:
		c.Availability = types.AvailabilityDetectionFailure
		c.AddProblem(d.Err)
	default:
		c.Availability = types.AvailabilityDetectionFailure
		c.AddProblem(errors.Newf(errors.ErrInternal, "unsupported detection %T", det))
	}
}

// installPath applies the special folder / destination table:
//
//	folder  destination  result
//	-       -            home directory
//	-       absolute     destination
//	-       relative     error
//	set     -            folder
//	set     relative     folder joined with destination
//	set     absolute     error
func (r *Resolver) installPath(ip descriptor.InstallPath) (string, error) {
	folder := strings.TrimSpace(ip.SpecialFolder)
	dest := strings.TrimSpace(ip.Destination)

	if dest != "" {
		if err := validateDestination(dest); err != nil {
			return "", err
		}
	}

	if folder == "" {
		switch {
		case dest == "":
			if r.homeDir == "" {
				return "", errors.New(errors.ErrConfigValid, "no home directory to install into")
			}
			return filepath.Clean(r.homeDir), nil
		case filepath.IsAbs(dest):
			return filepath.Clean(dest), nil
		default:
			return "", errors.Newf(errors.ErrConfigValid, "relative destination %q needs a special folder", dest).
				WithDetail("destination", dest)
		}
	}

	base, err := r.folders.Resolve(folder)
	if err != nil {
		return "", err
	}
	if dest == "" {
		return filepath.Clean(base), nil
	}
	if filepath.IsAbs(dest) {
		return "", errors.Newf(errors.ErrConfigValid, "absolute destination %q cannot be combined with special folder %s", dest, folder).
			WithDetail("destination", dest).
			WithDetail("folder", folder)
	}
	return filepath.Join(base, filepath.FromSlash(dest)), nil
}

// validateDestination rejects characters no path can hold.
func validateDestination(dest string) error {
	bad := "\x00"
	if runtime.GOOS == "windows" {
		bad += `<>"|?*`
	}
	if strings.ContainsAny(dest, bad) {
		return errors.Newf(errors.ErrConfigValid, "invalid destination %q", dest).
			WithDetail("destination", dest)
	}
	return nil
}
