package style

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/commands"
	dlerrors "github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestIndent(t *testing.T) {
	Plain()
	tests := []struct {
		name     string
		text     string
		level    int
		expected string
	}{
		{name: "no indent", text: "Hello", level: 0, expected: "Hello"},
		{name: "single indent", text: "Hello", level: 1, expected: "  Hello"},
		{name: "double indent", text: "Hello", level: 2, expected: "    Hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Indent(tt.text, tt.level))
		})
	}
}

func TestIndicators(t *testing.T) {
	Plain()
	assert.Equal(t, "✓", AvailabilityIndicator(types.AvailabilityAvailable))
	assert.Equal(t, "✓", AvailabilityIndicator(types.AvailabilityAlwaysInstall))
	assert.Equal(t, "✗", AvailabilityIndicator(types.AvailabilityDetectionFailure))
	assert.Equal(t, "○", AvailabilityIndicator(types.AvailabilityNoLogic))

	assert.Equal(t, "✓", ActionIndicator(types.ActionLinked))
	assert.Equal(t, "!", ActionIndicator(types.ActionConflict))
	assert.Equal(t, "•", ActionIndicator(types.ActionAlreadyLinked))
}

func TestShortenPath(t *testing.T) {
	home := filepath.FromSlash("/home/alice")
	r := NewTerminalRenderer(home)

	assert.Equal(t, "~", r.ShortenPath(home))
	assert.Equal(t, "~"+string(filepath.Separator)+filepath.FromSlash(".config/nvim"),
		r.ShortenPath(filepath.Join(home, ".config", "nvim")))
	assert.Equal(t, filepath.FromSlash("/opt/tool"), r.ShortenPath(filepath.FromSlash("/opt/tool")))
	assert.Equal(t, "/x", NewTerminalRenderer("").ShortenPath("/x"))
}

func TestRenderComponentList(t *testing.T) {
	Plain()
	home := filepath.FromSlash("/home/alice")
	r := NewTerminalRenderer(home)

	result := &commands.ListResult{
		DotfilesRoot: filepath.Join(home, "dotfiles"),
		Components: []*types.Component{
			{Name: "git", FriendlyName: "Git version 2.45.1", Availability: types.AvailabilityAvailable, InstallPath: home},
			{Name: "emacs", Availability: types.AvailabilityUnavailable},
			{Name: "broken", Availability: types.AvailabilityDetectionFailure,
				Problems: []error{dlerrors.New(dlerrors.ErrDescriptorParse, "malformed descriptor")}},
		},
	}

	out := r.RenderComponentList(result)
	assert.Contains(t, out, "Components in ~"+string(filepath.Separator)+"dotfiles")
	assert.Contains(t, out, "git")
	assert.Contains(t, out, "Available")
	assert.Contains(t, out, "→ ~")
	assert.Contains(t, out, "(Git version 2.45.1)")
	assert.Contains(t, out, "! malformed descriptor")
	assert.NotContains(t, out, "[DESCRIPTOR_PARSE]")

	empty := r.RenderComponentList(&commands.ListResult{DotfilesRoot: "/dots"})
	assert.Contains(t, empty, "No components found")
}

func TestRenderSummary(t *testing.T) {
	Plain()
	r := NewTerminalRenderer("")
	out := r.RenderSummary(commands.Summary{
		types.AvailabilityUnavailable: {"emacs"},
		types.AvailabilityAvailable:   {"git", "vim"},
	})

	lines := strings.Split(out, "\n")
	assert.Equal(t, []string{
		"Available (2)",
		"  git, vim",
		"Unavailable (1)",
		"  emacs",
	}, lines)
}

func TestRenderReport(t *testing.T) {
	Plain()
	home := filepath.FromSlash("/home/alice")
	r := NewTerminalRenderer(home)

	report := &types.RunReport{
		Components: []types.ComponentReport{
			{
				Component: &types.Component{Name: "git", Availability: types.AvailabilityAvailable},
				Outcomes: []types.Outcome{
					{Target: filepath.Join(home, "gitconfig"), Action: types.ActionLinked},
					{Target: filepath.Join(home, "gitignore"), Action: types.ActionConflict,
						Reason: types.ReasonForeignLink, LinkTarget: "/elsewhere"},
					{Target: filepath.Join(home, "gitmessage"), Action: types.ActionAlreadyLinked},
				},
			},
			{
				Component: &types.Component{Name: "emacs", Availability: types.AvailabilityUnavailable},
				Skipped:   true,
			},
		},
	}

	out := r.RenderReport(report, false)
	assert.Contains(t, out, "linked ~"+string(filepath.Separator)+"gitconfig")
	assert.Contains(t, out, "conflict (foreign_link)")
	assert.Contains(t, out, "points to /elsewhere")
	assert.NotContains(t, out, "gitmessage")
	assert.NotContains(t, out, "emacs")
	assert.Contains(t, out, "1 change, 1 conflict, 0 configuration errors")

	verbose := r.RenderReport(report, true)
	assert.Contains(t, verbose, "gitmessage")
	assert.Contains(t, verbose, "emacs skipped (Unavailable)")

	report.DryRun = true
	assert.Contains(t, r.RenderReport(report, false), "Dry run")
}

func TestRenderReportProblems(t *testing.T) {
	Plain()
	home := filepath.FromSlash("/home/alice")
	r := NewTerminalRenderer(home)

	report := &types.RunReport{
		Components: []types.ComponentReport{
			{
				Component: &types.Component{Name: "broken", Availability: types.AvailabilityAlwaysInstall,
					Problems: []error{dlerrors.New(dlerrors.ErrConfigValid, "relative destination needs a special folder")}},
				Skipped: true,
			},
			{
				Component: &types.Component{Name: "unreadable", Availability: types.AvailabilityDetectionFailure,
					Problems: []error{dlerrors.New(dlerrors.ErrFileAccess, "permission denied")}},
				Skipped: true,
			},
			{
				Component: &types.Component{Name: "git", Availability: types.AvailabilityAvailable},
				Outcomes: []types.Outcome{
					{Target: filepath.Join(home, "gitconfig"), Action: types.ActionConflict, Reason: types.ReasonRealFile,
						Err: dlerrors.New(dlerrors.ErrConflict, "a regular file is in the way")},
				},
			},
		},
	}

	out := r.RenderReport(report, false)
	assert.Contains(t, out, "  ! relative destination needs a special folder")
	assert.Contains(t, out, "  ✗ permission denied")
	assert.Contains(t, out, "conflict (real_file) ~"+string(filepath.Separator)+"gitconfig: a regular file is in the way")
	assert.NotContains(t, out, "[CONFLICT]")
}

func TestRenderError(t *testing.T) {
	Plain()
	r := NewTerminalRenderer("")
	assert.Equal(t, "✗ dotfiles root does not exist",
		r.RenderError(dlerrors.New(dlerrors.ErrNotFound, "dotfiles root does not exist")))
	assert.Equal(t, "✗ plain", r.RenderError(errors.New("plain")))
}
