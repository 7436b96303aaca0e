package inventory

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// FileProvider reads records from a snapshot file. The format follows the
// extension: .toml uses [[record]] tables, .yaml/.yml a top-level records list.
type FileProvider struct {
	Fs   afero.Fs
	Path string
}

// NewFileProvider creates a provider reading path from the OS filesystem.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{Fs: afero.NewOsFs(), Path: path}
}

func (p *FileProvider) Name() string { return "file" }

type tomlSnapshot struct {
	Records []Record `toml:"record"`
}

type yamlSnapshot struct {
	Records []Record `yaml:"records"`
}

func (p *FileProvider) Query() ([]Record, error) {
	data, err := afero.ReadFile(p.Fs, p.Path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read inventory file %s", p.Path).
			WithDetail("path", p.Path)
	}

	var records []Record
	switch strings.ToLower(filepath.Ext(p.Path)) {
	case ".toml":
		var snap tomlSnapshot
		if err := toml.Unmarshal(data, &snap); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "invalid TOML inventory file %s", p.Path)
		}
		records = snap.Records
	case ".yaml", ".yml":
		var snap yamlSnapshot
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "invalid YAML inventory file %s", p.Path)
		}
		records = snap.Records
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unsupported inventory file format %q", filepath.Ext(p.Path)).
			WithDetail("path", p.Path)
	}

	for i := range records {
		if records[i].Source == "" {
			records[i].Source = p.Name()
		}
	}
	return records, nil
}
