package matchers_test

import (
	"testing"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/inventory"
	"github.com/arthur-debert/dotlink/pkg/matchers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *inventory.Snapshot {
	return inventory.NewSnapshot([]inventory.Record{
		{DisplayName: "Git version 2.45.1", UninstallCommand: "unins000.exe"},
		{DisplayName: "Microsoft Visual Studio Code (User)", UninstallCommand: "unins001.exe"},
		{DisplayName: "Vim 9.1", NoRemove: true},
		{DisplayName: "GitHub Desktop", UninstallCommand: "Update.exe --uninstall"},
		{DisplayName: "Hidden Git Helper", UninstallCommand: "x", SystemComponent: true},
	})
}

func names(records []inventory.Record) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.DisplayName)
	}
	return out
}

func TestMatch(t *testing.T) {
	m := matchers.New(testSnapshot())

	tests := []struct {
		name          string
		pattern       string
		caseSensitive bool
		regex         bool
		want          []string
	}{
		{
			name:    "default wildcard pattern is case-insensitive",
			pattern: matchers.DefaultPattern("git"),
			want:    []string{"Git version 2.45.1", "GitHub Desktop"},
		},
		{
			name:          "case-sensitive glob",
			pattern:       matchers.DefaultPattern("git"),
			caseSensitive: true,
			want:          nil,
		},
		{
			name:    "prefix glob",
			pattern: "Git *",
			want:    []string{"Git version 2.45.1"},
		},
		{
			name:    "single character wildcard",
			pattern: "Vim ?.?",
			want:    []string{"Vim 9.1"},
		},
		{
			name:    "regex is unanchored",
			pattern: `Visual Studio Code`,
			regex:   true,
			want:    []string{"Microsoft Visual Studio Code (User)"},
		},
		{
			name:    "regex case-insensitive by default",
			pattern: `^git(hub)?\b`,
			regex:   true,
			want:    []string{"Git version 2.45.1", "GitHub Desktop"},
		},
		{
			name:          "regex case-sensitive",
			pattern:       `^github`,
			regex:         true,
			caseSensitive: true,
			want:          nil,
		},
		{
			name:    "system components are never visible",
			pattern: "Hidden*",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Match(tt.pattern, tt.caseSensitive, tt.regex)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestMatchNamesWithSlashes(t *testing.T) {
	m := matchers.New(inventory.NewSnapshot([]inventory.Record{
		{DisplayName: "TortoiseGit/SVN Bridge", UninstallCommand: "x"},
		{DisplayName: `Tools\Git`, UninstallCommand: "y"},
	}))

	tests := []struct {
		pattern string
		want    []string
	}{
		{pattern: "*Bridge", want: []string{"TortoiseGit/SVN Bridge"}},
		{pattern: "Tortoise?it?SVN*", want: []string{"TortoiseGit/SVN Bridge"}},
		{pattern: "TortoiseGit/SVN Bridge", want: []string{"TortoiseGit/SVN Bridge"}},
		{pattern: `Tools\Git`, want: []string{`Tools\Git`}},
		{pattern: `tools\*`, want: []string{`Tools\Git`}},
		{pattern: matchers.DefaultPattern("git"), want: []string{"TortoiseGit/SVN Bridge", `Tools\Git`}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := m.Match(tt.pattern, false, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestMatchInvalidPatterns(t *testing.T) {
	m := matchers.New(testSnapshot())

	_, err := m.Match("[unclosed", false, false)
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))

	_, err = m.Match("(unclosed", false, true)
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
}

func TestMatchEmptySnapshot(t *testing.T) {
	m := matchers.New(inventory.NewSnapshot(nil))
	got, err := m.Match("*", false, false)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDefaultPattern(t *testing.T) {
	assert.Equal(t, "*vscode*", matchers.DefaultPattern("vscode"))
}
