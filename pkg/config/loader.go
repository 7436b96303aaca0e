package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/inventory"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read as configuration.
const EnvPrefix = "DOTLINK_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Options controls Load.
type Options struct {
	Overrides Overrides

	// UserConfigPath replaces the XDG config file location. Empty uses
	// paths.UserConfigPath.
	UserConfigPath string
}

// DefaultContent returns the embedded defaults file.
func DefaultContent() string {
	return string(defaultConfig)
}

// Load builds the RunConfig. The dotfiles root is settled first from every
// layer that can name it, then the root's own config file joins the stack.
func Load(opts Options) (*RunConfig, error) {
	logger := logging.GetLogger("config")

	userPath := opts.UserConfigPath
	if userPath == "" {
		userPath = paths.UserConfigPath()
	}

	// 1. Everything except the root config, to find the root
	pre, err := loadLayers(userPath, "", opts.Overrides)
	if err != nil {
		return nil, err
	}

	explicit := opts.Overrides.DotfilesRoot
	if explicit == "" && os.Getenv(paths.EnvDotfilesRoot) == "" {
		explicit = pre.String("dotfiles_root")
	}
	root, fallback, err := paths.FindDotfilesRoot(explicit)
	if err != nil {
		return nil, err
	}

	// 2. The full stack, now including <root>/.dotlink.toml
	k, err := loadLayers(userPath, paths.RootConfigPath(root), opts.Overrides)
	if err != nil {
		return nil, err
	}

	var cfg RunConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	cfg.DotfilesRoot = root
	cfg.RootFromFallback = fallback
	if err := postProcess(&cfg); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("root", cfg.DotfilesRoot).
		Bool("fallback", cfg.RootFromFallback).
		Bool("autodetect", cfg.Autodetect).
		Str("customDir", cfg.Metadata.CustomDir).
		Str("globalDir", cfg.Metadata.GlobalDir).
		Strs("sources", cfg.Inventory.Sources).
		Msg("Configuration loaded")

	return &cfg, nil
}

// loadLayers stacks defaults, the user file, the root file (when rootPath
// is set), the environment and the overrides.
func loadLayers(userPath, rootPath string, overrides Overrides) (*koanf.Koanf, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	if err := loadFile(k, userPath); err != nil {
		return nil, err
	}

	if rootPath != "" {
		if err := loadFile(k, rootPath); err != nil {
			return nil, err
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	if err := k.Load(confmap.Provider(overrides.toMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load command line overrides")
	}

	return k, nil
}

// envKey maps DOTLINK_METADATA__GLOBAL_DIR to metadata.global_dir.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// loadFile merges a TOML file if it exists.
func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read config file %s", path).
			WithDetail("path", path)
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}

// postProcess fills in computed defaults and normalizes paths.
func postProcess(cfg *RunConfig) error {
	cfg.HomeDir = paths.ExpandHome(strings.TrimSpace(cfg.HomeDir))
	if cfg.HomeDir == "" {
		cfg.HomeDir = paths.HomeDir()
	}
	if cfg.HomeDir == "" {
		return errors.New(errors.ErrConfigValid, "cannot determine the home directory; set home_dir")
	}
	if !filepath.IsAbs(cfg.HomeDir) {
		return errors.Newf(errors.ErrConfigValid, "home_dir must be absolute, got %q", cfg.HomeDir).
			WithDetail("home_dir", cfg.HomeDir)
	}

	cfg.Metadata.CustomDir = underRoot(cfg.DotfilesRoot, cfg.Metadata.CustomDir)
	if cfg.Metadata.CustomDir == "" {
		cfg.Metadata.CustomDir = paths.CustomMetadataPath(cfg.DotfilesRoot)
	}

	cfg.Metadata.GlobalDir = paths.ExpandHome(strings.TrimSpace(cfg.Metadata.GlobalDir))
	if cfg.Metadata.GlobalDir == "" {
		cfg.Metadata.GlobalDir = paths.GlobalMetadataDir()
	}

	var sources []string
	for _, s := range cfg.Inventory.Sources {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			sources = append(sources, s)
		}
	}
	if len(sources) == 0 {
		sources = inventory.DefaultSources()
	}
	cfg.Inventory.Sources = sources

	if cfg.Inventory.File != "" {
		cfg.Inventory.File = underRoot(cfg.DotfilesRoot, cfg.Inventory.File)
	}

	return nil
}

// underRoot expands ~ and anchors relative paths at root.
func underRoot(root, p string) string {
	p = paths.ExpandHome(strings.TrimSpace(p))
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
