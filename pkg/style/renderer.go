package style

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/commands"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

// TerminalRenderer renders command results for a terminal
type TerminalRenderer struct {
	home string
}

// NewTerminalRenderer creates a renderer. Paths under home are shown with ~.
func NewTerminalRenderer(home string) *TerminalRenderer {
	return &TerminalRenderer{home: home}
}

// ShortenPath replaces the home directory prefix with ~
func (r *TerminalRenderer) ShortenPath(p string) string {
	if r.home == "" || p == "" {
		return p
	}
	rel, err := filepath.Rel(r.home, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	if rel == "." {
		return "~"
	}
	return "~" + string(filepath.Separator) + rel
}

// RenderComponentList renders every component with its classification
func (r *TerminalRenderer) RenderComponentList(result *commands.ListResult) string {
	if len(result.Components) == 0 {
		return MutedStyle.Render("No components found in " + r.ShortenPath(result.DotfilesRoot))
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Components in "+r.ShortenPath(result.DotfilesRoot)) + "\n\n")

	nameWidth, availWidth := 0, 0
	for _, c := range result.Components {
		nameWidth = max(nameWidth, lipgloss.Width(c.Name))
		availWidth = max(availWidth, lipgloss.Width(c.Availability.String()))
	}
	nameCol := lipgloss.NewStyle().Width(nameWidth + 2)
	availCol := lipgloss.NewStyle().Width(availWidth + 2)

	for _, c := range result.Components {
		line := fmt.Sprintf("%s %s%s",
			AvailabilityIndicator(c.Availability),
			nameCol.Render(Bold(c.Name)),
			availCol.Render(AvailabilityStyle(c.Availability).Render(c.Availability.String())),
		)
		if c.InstallPath != "" {
			line += "→ " + PathStyle.Render(r.ShortenPath(c.InstallPath))
		}
		if c.FriendlyName != "" && c.FriendlyName != c.Name {
			line += " " + MutedStyle.Render("("+c.FriendlyName+")")
		}
		b.WriteString(strings.TrimRight(line, " ") + "\n")

		for _, p := range c.Problems {
			b.WriteString(Indent(problemIndicator(p)+" "+r.errorText(p), 2) + "\n")
		}
	}

	if result.InventoryError != nil {
		b.WriteString("\n" + WarningStyle.Render("Inventory incomplete: ") + r.errorText(result.InventoryError) + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// RenderSummary renders component names grouped by classification
func (r *TerminalRenderer) RenderSummary(summary commands.Summary) string {
	groups := summary.Groups()
	if len(groups) == 0 {
		return MutedStyle.Render("No components found")
	}

	var b strings.Builder
	for _, g := range groups {
		title := fmt.Sprintf("%s (%d)", g.Availability, len(g.Names))
		b.WriteString(AvailabilityStyle(g.Availability).Render(title) + "\n")
		b.WriteString(Indent(strings.Join(g.Names, ", "), 1) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderReport renders the outcomes of an install, remove or status run
func (r *TerminalRenderer) RenderReport(report *types.RunReport, verbose bool) string {
	var b strings.Builder
	if report.DryRun {
		b.WriteString(InfoStyle.Render("Dry run: nothing was changed") + "\n\n")
	}

	for _, cr := range report.Components {
		c := cr.Component
		if cr.Skipped && !c.HasProblems() && !verbose {
			continue
		}

		header := Bold(c.Name)
		if cr.Skipped {
			header += " " + MutedStyle.Render("skipped ("+c.Availability.String()+")")
		}
		b.WriteString(header + "\n")

		for _, p := range c.Problems {
			b.WriteString(Indent(problemIndicator(p)+" "+r.errorText(p), 1) + "\n")
		}
		for _, o := range cr.Outcomes {
			if o.Action == types.ActionAlreadyLinked && !verbose {
				continue
			}
			b.WriteString(Indent(r.renderOutcome(o), 1) + "\n")
		}
	}

	b.WriteString("\n" + r.renderTotals(report))
	return b.String()
}

func (r *TerminalRenderer) renderOutcome(o types.Outcome) string {
	label := string(o.Action)
	if o.IsConflict() {
		label += " (" + string(o.Reason) + ")"
		label = WarningStyle.Render(label)
	} else if o.Changes() {
		label = LinkStyle.Render(label)
	} else {
		label = MutedStyle.Render(label)
	}

	line := fmt.Sprintf("%s %s %s", ActionIndicator(o.Action), label, PathStyle.Render(r.ShortenPath(o.Target)))
	switch {
	case o.Reason == types.ReasonForeignLink:
		line += MutedStyle.Render(" points to " + r.ShortenPath(o.LinkTarget))
	case o.Err != nil:
		line += MutedStyle.Render(": " + r.errorText(o.Err))
	}
	return line
}

func (r *TerminalRenderer) renderTotals(report *types.RunReport) string {
	changes, conflicts, configErrors := report.Changes(), report.Conflicts(), report.ConfigErrors()
	parts := []string{
		fmt.Sprintf("%d %s", changes, plural(changes, "change", "changes")),
		fmt.Sprintf("%d %s", conflicts, plural(conflicts, "conflict", "conflicts")),
		fmt.Sprintf("%d %s", configErrors, plural(configErrors, "configuration error", "configuration errors")),
	}
	totals := strings.Join(parts, ", ")
	if report.HasErrors() {
		return WarningStyle.Render(totals)
	}
	return SuccessStyle.Render(totals)
}

// RenderError renders an error for the user
func (r *TerminalRenderer) RenderError(err error) string {
	return ErrorIndicator() + " " + ErrorStyle.Render(r.errorText(err))
}

// errorCode matches the [CODE] markers coded errors carry at every level
// of wrapping.
var errorCode = regexp.MustCompile(`\[[A-Z_]+\] `)

func (r *TerminalRenderer) errorText(err error) string {
	return errorCode.ReplaceAllString(err.Error(), "")
}

// problemIndicator marks configuration errors, which the user can fix in a
// descriptor or config file, apart from everything else.
func problemIndicator(err error) string {
	if errors.IsConfigError(err) {
		return WarningIndicator()
	}
	return ErrorIndicator()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
