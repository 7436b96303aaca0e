// pkg/linker/install_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (symlinks) via testutil.TestEnvironment
// PURPOSE: Test the install state machine

package linker_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/linker"
	"github.com/arthur-debert/dotlink/pkg/testutil"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallMinimalLinking(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	src := env.SetupComponent("vim", testutil.VimTree())
	target := filepath.Join(env.ConfigDir, "vim")

	outcomes := linker.New(env.FS, false).Install(env.Component("vim", target))

	require.Len(t, outcomes, 1)
	assert.Equal(t, types.Outcome{
		Component: "vim",
		Source:    src,
		Target:    target,
		Action:    types.ActionLinked,
	}, outcomes[0])
	testutil.AssertLinkTo(t, target, src)
}

func TestInstallCreatesMissingParent(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	src := env.SetupComponent("nvim", testutil.FileTree{"init.lua": "-- init"})
	target := filepath.Join(env.HomeDir, "deep", "nested", "nvim")

	outcomes := linker.New(env.FS, false).Install(env.Component("nvim", target))

	require.Len(t, outcomes, 1)
	assert.Equal(t, types.ActionLinked, outcomes[0].Action)
	testutil.AssertRealDir(t, filepath.Dir(target))
	testutil.AssertLinkTo(t, target, src)
}

func TestInstallIdempotent(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	src := env.SetupComponent("vim", testutil.VimTree())
	env.WithFileTree(testutil.FileTree{"existing": "keep me"})
	c := env.Component("vim", env.HomeDir)
	l := linker.New(env.FS, false)

	first := l.Install(c)
	counts := testutil.CountActions(first)
	assert.Equal(t, 3, counts[types.ActionLinked])
	assert.Zero(t, counts[types.ActionConflict])

	second := l.Install(c)
	counts = testutil.CountActions(second)
	assert.Zero(t, counts[types.ActionLinked])
	assert.Zero(t, counts[types.ActionConflict])
	assert.Equal(t, 3, counts[types.ActionAlreadyLinked])

	testutil.AssertLinkTo(t, filepath.Join(env.HomeDir, "vimrc"), filepath.Join(src, "vimrc"))
	testutil.AssertLinkTo(t, filepath.Join(env.HomeDir, "colors"), filepath.Join(src, "colors"))
	testutil.AssertRealFile(t, filepath.Join(env.HomeDir, "existing"), "keep me")
}

func TestInstallMerge(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	src := env.SetupComponent("vim", testutil.VimTree())
	target := filepath.Join(env.ConfigDir, "vim")
	testutil.CreateFileTree(t, target, testutil.FileTree{
		"colors": testutil.FileTree{"other.vim": "\" another scheme"},
	})

	outcomes := linker.New(env.FS, false).Install(env.Component("vim", target))

	counts := testutil.CountActions(outcomes)
	assert.Equal(t, 3, counts[types.ActionLinked])
	assert.Zero(t, counts[types.ActionConflict])

	testutil.AssertRealDir(t, target)
	testutil.AssertRealDir(t, filepath.Join(target, "colors"))
	testutil.AssertLinkTo(t, filepath.Join(target, "vimrc"), filepath.Join(src, "vimrc"))
	testutil.AssertLinkTo(t, filepath.Join(target, "colors", "monokai.vim"), filepath.Join(src, "colors", "monokai.vim"))
	testutil.AssertRealFile(t, filepath.Join(target, "colors", "other.vim"), "\" another scheme")
}

func TestInstallConflicts(t *testing.T) {
	t.Run("real file blocks a file link", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		src := env.SetupComponent("git", testutil.GitTree())
		env.WithFileTree(testutil.FileTree{"gitconfig": "mine"})

		outcomes := linker.New(env.FS, false).Install(env.Component("git", env.HomeDir))

		conflict, ok := testutil.FindOutcome(outcomes, filepath.Join(env.HomeDir, "gitconfig"))
		require.True(t, ok)
		assert.Equal(t, types.ActionConflict, conflict.Action)
		assert.Equal(t, types.ReasonRealFile, conflict.Reason)
		require.Error(t, conflict.Err)
		assert.True(t, errors.IsErrorCode(conflict.Err, errors.ErrConflict))
		testutil.AssertRealFile(t, filepath.Join(env.HomeDir, "gitconfig"), "mine")

		// Sibling still processed
		testutil.AssertLinkTo(t, filepath.Join(env.HomeDir, "gitignore"), filepath.Join(src, "gitignore"))
		assert.Equal(t, 1, testutil.CountActions(outcomes)[types.ActionConflict])
	})

	t.Run("file where a directory is expected", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		src := env.SetupComponent("vim", testutil.VimTree())
		env.WithFileTree(testutil.FileTree{"colors": "not a dir"})

		outcomes := linker.New(env.FS, false).Install(env.Component("vim", env.HomeDir))

		conflict, ok := testutil.FindOutcome(outcomes, filepath.Join(env.HomeDir, "colors"))
		require.True(t, ok)
		assert.Equal(t, types.ReasonTypeMismatch, conflict.Reason)
		assert.Equal(t, 1, testutil.CountActions(outcomes)[types.ActionConflict])
		testutil.AssertRealFile(t, filepath.Join(env.HomeDir, "colors"), "not a dir")
		testutil.AssertLinkTo(t, filepath.Join(env.HomeDir, "vimrc"), filepath.Join(src, "vimrc"))
	})

	t.Run("file at the install root", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		env.SetupComponent("vim", testutil.VimTree())
		target := filepath.Join(env.HomeDir, "vimfiles")
		env.WithFileTree(testutil.FileTree{"vimfiles": "blocker"})

		outcomes := linker.New(env.FS, false).Install(env.Component("vim", target))

		require.Len(t, outcomes, 1)
		assert.Equal(t, types.ActionConflict, outcomes[0].Action)
		assert.Equal(t, types.ReasonTypeMismatch, outcomes[0].Reason)
	})

	t.Run("directory where a file is expected", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		env.SetupComponent("git", testutil.GitTree())
		env.WithFileTree(testutil.FileTree{"gitconfig": testutil.FileTree{}})

		outcomes := linker.New(env.FS, false).Install(env.Component("git", env.HomeDir))

		conflict, ok := testutil.FindOutcome(outcomes, filepath.Join(env.HomeDir, "gitconfig"))
		require.True(t, ok)
		assert.Equal(t, types.ReasonTypeMismatch, conflict.Reason)
		assert.True(t, errors.IsErrorCode(conflict.Err, errors.ErrConflict))
		assert.Equal(t, "type_mismatch", errors.GetErrorDetails(conflict.Err)["reason"])
	})

	t.Run("foreign link", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		env.SetupComponent("git", testutil.GitTree())
		elsewhere := filepath.Join(env.TempDir(), "elsewhere")
		env.WithFileTree(testutil.FileTree{"gitconfig": testutil.Link(elsewhere)})

		outcomes := linker.New(env.FS, false).Install(env.Component("git", env.HomeDir))

		conflict, ok := testutil.FindOutcome(outcomes, filepath.Join(env.HomeDir, "gitconfig"))
		require.True(t, ok)
		assert.Equal(t, types.ReasonForeignLink, conflict.Reason)
		assert.Equal(t, elsewhere, conflict.LinkTarget)
		assert.True(t, errors.IsErrorCode(conflict.Err, errors.ErrConflict))
		testutil.AssertLinkTo(t, filepath.Join(env.HomeDir, "gitconfig"), elsewhere)
	})
}

func TestInstallRelativeLinkIsRecognized(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	src := env.SetupComponent("git", testutil.GitTree())

	rel, err := filepath.Rel(env.HomeDir, filepath.Join(src, "gitconfig"))
	require.NoError(t, err)
	env.WithFileTree(testutil.FileTree{"gitconfig": testutil.Link(rel)})

	outcomes := linker.New(env.FS, false).Install(env.Component("git", env.HomeDir))

	existing, ok := testutil.FindOutcome(outcomes, filepath.Join(env.HomeDir, "gitconfig"))
	require.True(t, ok)
	assert.Equal(t, types.ActionAlreadyLinked, existing.Action)
	assert.Zero(t, testutil.CountActions(outcomes)[types.ActionConflict])
}

func TestInstallFollowsLinkedSourceDirectory(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	shared := filepath.Join(env.TempDir(), "shared-colors")
	testutil.CreateFileTree(t, shared, testutil.FileTree{"solarized.vim": "\" solarized"})
	src := env.SetupComponent("vim", testutil.FileTree{
		"vimrc":  "set number",
		"colors": testutil.Link(shared),
	})
	testutil.CreateFileTree(t, env.HomeDir, testutil.FileTree{"colors": testutil.FileTree{}})

	outcomes := linker.New(env.FS, false).Install(env.Component("vim", env.HomeDir))

	assert.Zero(t, testutil.CountActions(outcomes)[types.ActionConflict])
	testutil.AssertLinkTo(t,
		filepath.Join(env.HomeDir, "colors", "solarized.vim"),
		filepath.Join(src, "colors", "solarized.vim"))
}

func TestInstallDryRun(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.SetupComponent("vim", testutil.VimTree())
	target := filepath.Join(env.HomeDir, "missing-parent", "vim")

	l := linker.New(env.FS, true)
	assert.True(t, l.DryRun())

	outcomes := l.Install(env.Component("vim", target))

	require.Len(t, outcomes, 1)
	assert.Equal(t, types.ActionLinked, outcomes[0].Action)
	testutil.AssertNotExists(t, target)
	testutil.AssertNotExists(t, filepath.Dir(target))
}

func TestInstallSkipsUninstallable(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.SetupComponent("vim", testutil.VimTree())

	c := env.Component("vim", env.HomeDir)
	c.Availability = types.AvailabilityUnavailable
	assert.Empty(t, linker.New(env.FS, false).Install(c))

	c = env.Component("vim", "")
	assert.Empty(t, linker.New(env.FS, false).Install(c))

	entries, err := os.ReadDir(env.HomeDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
