package descriptor

import (
	"path/filepath"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Loader finds descriptors, preferring the custom directory over the global
// one.
type Loader struct {
	fs        afero.Fs
	customDir string
	globalDir string
	logger    zerolog.Logger
}

// NewLoader creates a loader. Either directory may be empty.
func NewLoader(fs afero.Fs, customDir, globalDir string) *Loader {
	return &Loader{
		fs:        fs,
		customDir: customDir,
		globalDir: globalDir,
		logger:    logging.GetLogger("descriptor"),
	}
}

// Load returns the descriptor for name, or nil when neither directory has
// one. The returned error is a configuration error for that component only.
func (l *Loader) Load(name string) (*Descriptor, error) {
	candidates := []struct {
		dir    string
		origin Origin
	}{
		{l.customDir, OriginCustom},
		{l.globalDir, OriginGlobal},
	}

	for _, c := range candidates {
		if c.dir == "" {
			continue
		}
		path := filepath.Join(c.dir, name+paths.DescriptorExt)

		exists, err := afero.Exists(l.fs, path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot check descriptor %s", path).
				WithDetail("path", path)
		}
		if !exists {
			continue
		}

		data, err := afero.ReadFile(l.fs, path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrDescriptorParse, "cannot read descriptor %s", path).
				WithDetail("path", path)
		}

		d, err := Parse(name, data)
		if err != nil {
			return nil, err
		}
		d.Path = path
		d.Origin = c.origin

		l.logger.Debug().
			Str("component", name).
			Str("path", path).
			Str("origin", string(c.origin)).
			Msg("Descriptor loaded")
		return d, nil
	}

	l.logger.Trace().Str("component", name).Msg("No descriptor")
	return nil, nil
}
