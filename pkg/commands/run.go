package commands

import (
	"github.com/arthur-debert/dotlink/pkg/linker"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// RunOptions defines the options for install, remove and status.
type RunOptions struct {
	Options

	// DryRun computes outcomes without changing the filesystem
	DryRun bool
}

// InstallComponents links every installable selected component. Components
// that are not installed still appear in the report, marked skipped, so their
// configuration errors are counted.
func InstallComponents(opts RunOptions) (*types.RunReport, error) {
	return runLinker("InstallComponents", opts, func(l *linker.Linker, c *types.Component) ([]types.Outcome, bool) {
		if !c.CanInstall() {
			return nil, false
		}
		return l.Install(c), true
	})
}

// RemoveComponents takes away the links of every selected component whose
// location resolves, including components no longer installed.
func RemoveComponents(opts RunOptions) (*types.RunReport, error) {
	return runLinker("RemoveComponents", opts, func(l *linker.Linker, c *types.Component) ([]types.Outcome, bool) {
		if c.RemovePath == "" {
			return nil, false
		}
		return l.Remove(c), true
	})
}

// StatusComponents reports what InstallComponents would do.
func StatusComponents(opts RunOptions) (*types.RunReport, error) {
	opts.DryRun = true
	return InstallComponents(opts)
}

type linkFunc func(l *linker.Linker, c *types.Component) ([]types.Outcome, bool)

func runLinker(command string, opts RunOptions, fn linkFunc) (*types.RunReport, error) {
	log := logging.GetLogger("commands.run")
	log.Debug().
		Str("command", command).
		Strs("components", opts.ComponentNames).
		Bool("dryRun", opts.DryRun).
		Msg("Executing command")
	defer logging.LogOperationStart(log, command)()

	res, err := resolveComponents(opts.Options)
	if err != nil {
		return nil, err
	}

	l := linker.New(res.fs, opts.DryRun)
	report := &types.RunReport{
		DryRun:     opts.DryRun,
		Components: make([]types.ComponentReport, 0, len(res.components)),
	}

	for _, c := range res.components {
		outcomes, handled := fn(l, c)
		report.Components = append(report.Components, types.ComponentReport{
			Component: c,
			Outcomes:  outcomes,
			Skipped:   !handled,
		})
	}

	log.Info().
		Str("command", command).
		Int("componentCount", len(report.Components)).
		Int("changes", report.Changes()).
		Int("conflicts", report.Conflicts()).
		Int("configErrors", report.ConfigErrors()).
		Msg("Command finished")

	return report, nil
}
