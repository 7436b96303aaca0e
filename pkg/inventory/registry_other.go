//go:build !windows

package inventory

import (
	"github.com/arthur-debert/dotlink/pkg/errors"
)

// RegistryProvider reads the Windows uninstall registry. On other platforms
// every query fails.
type RegistryProvider struct{}

// NewRegistryProvider creates a provider over the uninstall registry keys.
func NewRegistryProvider() *RegistryProvider {
	return &RegistryProvider{}
}

func (p *RegistryProvider) Name() string { return "registry" }

func (p *RegistryProvider) Query() ([]Record, error) {
	return nil, errors.New(errors.ErrInventoryQuery, "the registry inventory is only available on Windows")
}
