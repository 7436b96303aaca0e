package dotlink

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Link dotfiles components into place"
	MsgListShort       = "List components and their classification"
	MsgInstallShort    = "Link installable components"
	MsgRemoveShort     = "Remove the links of components"
	MsgStatusShort     = "Show what install would do"
	MsgExplainShort    = "Show reference documentation"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgVersionFormat = "dotlink %s (commit %s, built %s)\n"

	// Error messages
	MsgErrLoadConfig     = "failed to load configuration: %w"
	MsgErrListComponents = "failed to list components: %w"
	MsgErrInstall        = "failed to install components: %w"
	MsgErrRemove         = "failed to remove components: %w"
	MsgErrStatus         = "failed to get component status: %w"
	MsgErrProblems       = "%d conflicts and %d configuration errors reported"
	MsgErrUnknownFormat  = "unknown output format %q (want text, json or yaml)"
	MsgErrUnknownTopic   = "unknown topic %q (want descriptor or config)"
	MsgErrNoCommand      = "no command specified"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun       = "Preview changes without executing them"
	MsgFlagRoot         = "Dotfiles root directory"
	MsgFlagConfig       = "User configuration file (default $XDG_CONFIG_HOME/dotlink/config.toml)"
	MsgFlagAutodetect   = "Detect components without a descriptor by name"
	MsgFlagNoAutodetect = "Only use descriptors to detect components"
	MsgFlagSummary      = "Group component names by classification"
	MsgFlagFormat       = "Output format: text, json or yaml"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/list-long.txt
	msgListLongRaw string
	MsgListLong    = strings.TrimSpace(msgListLongRaw)

	//go:embed msgs/list-example.txt
	msgListExampleRaw string
	MsgListExample    = strings.TrimRight(msgListExampleRaw, "\n")

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimRight(msgInstallExampleRaw, "\n")

	//go:embed msgs/remove-long.txt
	msgRemoveLongRaw string
	MsgRemoveLong    = strings.TrimSpace(msgRemoveLongRaw)

	//go:embed msgs/remove-example.txt
	msgRemoveExampleRaw string
	MsgRemoveExample    = strings.TrimRight(msgRemoveExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/status-example.txt
	msgStatusExampleRaw string
	MsgStatusExample    = strings.TrimRight(msgStatusExampleRaw, "\n")

	//go:embed msgs/explain-long.txt
	msgExplainLongRaw string
	MsgExplainLong    = strings.TrimSpace(msgExplainLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw) + "\n"

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/descriptor-reference.md
	MsgDescriptorReference string

	//go:embed msgs/config-reference.md
	MsgConfigReference string
)
