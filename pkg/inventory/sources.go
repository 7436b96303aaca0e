package inventory

import (
	"runtime"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
)

// Source tokens accepted in configuration.
const (
	SourceRegistry = "registry"
	SourcePath     = "path"
	SourceFile     = "file"
)

// DefaultSources returns the sources used when none are configured.
func DefaultSources() []string {
	if runtime.GOOS == "windows" {
		return []string{SourceRegistry}
	}
	return []string{SourcePath}
}

// FromSources builds a provider from configuration tokens. The file source
// requires file to be set.
func FromSources(sources []string, file string) (Provider, error) {
	if len(sources) == 0 {
		sources = DefaultSources()
	}

	var providers []Provider
	for _, src := range sources {
		switch strings.ToLower(strings.TrimSpace(src)) {
		case SourceRegistry:
			providers = append(providers, NewRegistryProvider())
		case SourcePath:
			providers = append(providers, NewPathProvider())
		case SourceFile:
			if file == "" {
				return nil, errors.New(errors.ErrConfigValid, "inventory source \"file\" needs inventory.file to be set")
			}
			providers = append(providers, NewFileProvider(file))
		case "":
			continue
		default:
			return nil, errors.Newf(errors.ErrConfigValid, "unknown inventory source %q", src).
				WithDetail("source", src)
		}
	}

	if len(providers) == 1 {
		return providers[0], nil
	}
	return NewMultiProvider(providers...), nil
}
