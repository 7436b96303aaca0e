// pkg/config/loader_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real temp directories, environment variables
// PURPOSE: Test configuration layering into RunConfig

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type configEnv struct {
	root     string
	home     string
	userPath string
}

func setupConfigEnv(t *testing.T) configEnv {
	t.Helper()
	base := t.TempDir()
	env := configEnv{
		root:     filepath.Join(base, "dotfiles"),
		home:     filepath.Join(base, "home"),
		userPath: filepath.Join(base, "xdg", "dotlink", "config.toml"),
	}
	require.NoError(t, os.MkdirAll(env.root, 0755))
	require.NoError(t, os.MkdirAll(env.home, 0755))

	t.Setenv("HOME", env.home)
	t.Setenv("DOTFILES_ROOT", env.root)
	for _, k := range []string{
		"DOTLINK_AUTODETECT", "DOTLINK_DOTFILES_ROOT", "DOTLINK_HOME_DIR",
		"DOTLINK_METADATA__CUSTOM_DIR", "DOTLINK_METADATA__GLOBAL_DIR",
		"DOTLINK_INVENTORY__SOURCES", "DOTLINK_INVENTORY__FILE",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	return env
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadDefaults(t *testing.T) {
	env := setupConfigEnv(t)

	cfg, err := config.Load(config.Options{UserConfigPath: env.userPath})
	require.NoError(t, err)

	assert.Equal(t, env.root, cfg.DotfilesRoot)
	assert.False(t, cfg.RootFromFallback)
	assert.True(t, cfg.Autodetect)
	assert.Equal(t, env.home, cfg.HomeDir)
	assert.Equal(t, filepath.Join(env.root, ".dotlink"), cfg.Metadata.CustomDir)
	assert.NotEmpty(t, cfg.Metadata.GlobalDir)
	assert.NotEmpty(t, cfg.Inventory.Sources)
	assert.Empty(t, cfg.Inventory.File)
}

func TestLoadEmptyCustomDir(t *testing.T) {
	env := setupConfigEnv(t)
	writeFile(t, env.userPath, `
[metadata]
custom_dir = "  "
`)

	cfg, err := config.Load(config.Options{UserConfigPath: env.userPath})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.root, ".dotlink"), cfg.Metadata.CustomDir)
}

func TestLoadLayering(t *testing.T) {
	t.Run("user config overrides defaults", func(t *testing.T) {
		env := setupConfigEnv(t)
		writeFile(t, env.userPath, `
autodetect = false

[metadata]
global_dir = "~/shared-meta"
`)

		cfg, err := config.Load(config.Options{UserConfigPath: env.userPath})
		require.NoError(t, err)
		assert.False(t, cfg.Autodetect)
		assert.Equal(t, filepath.Join(env.home, "shared-meta"), cfg.Metadata.GlobalDir)
	})

	t.Run("root config overrides user config", func(t *testing.T) {
		env := setupConfigEnv(t)
		writeFile(t, env.userPath, `autodetect = false`)
		writeFile(t, filepath.Join(env.root, ".dotlink.toml"), `
autodetect = true

[metadata]
custom_dir = "meta"

[inventory]
sources = ["file"]
file = "inventory.toml"
`)

		cfg, err := config.Load(config.Options{UserConfigPath: env.userPath})
		require.NoError(t, err)
		assert.True(t, cfg.Autodetect)
		assert.Equal(t, filepath.Join(env.root, "meta"), cfg.Metadata.CustomDir)
		assert.Equal(t, []string{"file"}, cfg.Inventory.Sources)
		assert.Equal(t, filepath.Join(env.root, "inventory.toml"), cfg.Inventory.File)
	})

	t.Run("environment overrides files", func(t *testing.T) {
		env := setupConfigEnv(t)
		writeFile(t, filepath.Join(env.root, ".dotlink.toml"), `autodetect = true`)
		t.Setenv("DOTLINK_AUTODETECT", "false")
		t.Setenv("DOTLINK_INVENTORY__SOURCES", "path,file")
		t.Setenv("DOTLINK_INVENTORY__FILE", "/tmp/inv.yaml")

		cfg, err := config.Load(config.Options{UserConfigPath: env.userPath})
		require.NoError(t, err)
		assert.False(t, cfg.Autodetect)
		assert.Equal(t, []string{"path", "file"}, cfg.Inventory.Sources)
		assert.Equal(t, "/tmp/inv.yaml", cfg.Inventory.File)
	})

	t.Run("command line overrides everything", func(t *testing.T) {
		env := setupConfigEnv(t)
		t.Setenv("DOTLINK_AUTODETECT", "false")

		cfg, err := config.Load(config.Options{
			UserConfigPath: env.userPath,
			Overrides:      config.Overrides{Autodetect: config.Bool(true)},
		})
		require.NoError(t, err)
		assert.True(t, cfg.Autodetect)
	})
}

func TestLoadRootSelection(t *testing.T) {
	t.Run("flag wins over DOTFILES_ROOT", func(t *testing.T) {
		env := setupConfigEnv(t)
		other := t.TempDir()

		cfg, err := config.Load(config.Options{
			UserConfigPath: env.userPath,
			Overrides:      config.Overrides{DotfilesRoot: other},
		})
		require.NoError(t, err)
		assert.Equal(t, other, cfg.DotfilesRoot)
	})

	t.Run("DOTFILES_ROOT wins over configured value", func(t *testing.T) {
		env := setupConfigEnv(t)
		writeFile(t, env.userPath, `dotfiles_root = "/somewhere/else"`)

		cfg, err := config.Load(config.Options{UserConfigPath: env.userPath})
		require.NoError(t, err)
		assert.Equal(t, env.root, cfg.DotfilesRoot)
	})

	t.Run("configured value used without DOTFILES_ROOT", func(t *testing.T) {
		env := setupConfigEnv(t)
		require.NoError(t, os.Unsetenv("DOTFILES_ROOT"))
		writeFile(t, env.userPath, `dotfiles_root = "~/dots"`)

		cfg, err := config.Load(config.Options{UserConfigPath: env.userPath})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(env.home, "dots"), cfg.DotfilesRoot)
		assert.False(t, cfg.RootFromFallback)
	})

	t.Run("root config file is read from the chosen root", func(t *testing.T) {
		env := setupConfigEnv(t)
		other := t.TempDir()
		writeFile(t, filepath.Join(other, ".dotlink.toml"), `home_dir = "/opt/home"`)

		cfg, err := config.Load(config.Options{
			UserConfigPath: env.userPath,
			Overrides:      config.Overrides{DotfilesRoot: other},
		})
		require.NoError(t, err)
		assert.Equal(t, "/opt/home", cfg.HomeDir)
	})
}

func TestLoadErrors(t *testing.T) {
	t.Run("malformed file", func(t *testing.T) {
		env := setupConfigEnv(t)
		writeFile(t, env.userPath, `autodetect = [`)

		_, err := config.Load(config.Options{UserConfigPath: env.userPath})
		require.Error(t, err)
		assert.Equal(t, errors.ErrConfigLoad, errors.GetErrorCode(err))
	})

	t.Run("relative home_dir", func(t *testing.T) {
		env := setupConfigEnv(t)
		writeFile(t, env.userPath, `home_dir = "relative/home"`)

		_, err := config.Load(config.Options{UserConfigPath: env.userPath})
		require.Error(t, err)
		assert.True(t, errors.IsConfigError(err))
	})
}

func TestDefaultContent(t *testing.T) {
	content := config.DefaultContent()
	assert.Contains(t, content, "autodetect = true")
	assert.Contains(t, content, "[metadata]")
	assert.Contains(t, content, "[inventory]")
}
