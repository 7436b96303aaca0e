package config

// RunConfig is the resolved configuration for one invocation. It is built
// once by Load and never mutated afterwards.
type RunConfig struct {
	DotfilesRoot string          `koanf:"dotfiles_root"`
	Autodetect   bool            `koanf:"autodetect"`
	HomeDir      string          `koanf:"home_dir"`
	Metadata     MetadataConfig  `koanf:"metadata"`
	Inventory    InventoryConfig `koanf:"inventory"`

	// RootFromFallback is set when no root was configured and the working
	// directory was used instead.
	RootFromFallback bool `koanf:"-"`
}

// MetadataConfig locates the descriptor directories.
type MetadataConfig struct {
	CustomDir string `koanf:"custom_dir"`
	GlobalDir string `koanf:"global_dir"`
}

// InventoryConfig selects the software inventory sources.
type InventoryConfig struct {
	Sources []string `koanf:"sources"`
	File    string   `koanf:"file"`
}

// Overrides are the values given on the command line. Zero values mean
// "not given".
type Overrides struct {
	DotfilesRoot string
	Autodetect   *bool
}

// toMap converts the overrides into a koanf layer.
func (o Overrides) toMap() map[string]interface{} {
	m := map[string]interface{}{}
	if o.DotfilesRoot != "" {
		m["dotfiles_root"] = o.DotfilesRoot
	}
	if o.Autodetect != nil {
		m["autodetect"] = *o.Autodetect
	}
	return m
}

// Bool returns a pointer to b, for Overrides.Autodetect.
func Bool(b bool) *bool {
	return &b
}
