package inventory

// Record is a single installed-software entry.
type Record struct {
	DisplayName string `json:"displayName" yaml:"displayName" toml:"display_name"`

	// DisplayVersion is the version as the software reports it, free form.
	DisplayVersion string `json:"displayVersion,omitempty" yaml:"displayVersion,omitempty" toml:"display_version"`

	// Key is the opaque uninstall identifier (registry key path, executable path, ...).
	Key string `json:"key,omitempty" yaml:"key,omitempty" toml:"key"`

	UninstallCommand string `json:"uninstallCommand,omitempty" yaml:"uninstallCommand,omitempty" toml:"uninstall_command"`
	NoRemove         bool   `json:"noRemove,omitempty" yaml:"noRemove,omitempty" toml:"no_remove"`
	SystemComponent  bool   `json:"systemComponent,omitempty" yaml:"systemComponent,omitempty" toml:"system_component"`

	// Source names the provider that produced the record.
	Source string `json:"source,omitempty" yaml:"source,omitempty" toml:"source"`
}

// Visible reports whether detection may see the record.
func Visible(r Record) bool {
	if r.DisplayName == "" || r.SystemComponent {
		return false
	}
	return r.UninstallCommand != "" || r.NoRemove
}

// Provider enumerates raw installed-software records.
type Provider interface {
	Name() string
	Query() ([]Record, error)
}
