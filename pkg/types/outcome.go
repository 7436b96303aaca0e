package types

// Action is what the linker did, or would do in a dry run, for one node.
type Action string

const (
	ActionLinked        Action = "linked"
	ActionAlreadyLinked Action = "already_linked"
	ActionUnlinked      Action = "unlinked"
	ActionNotLinked     Action = "not_linked"
	ActionConflict      Action = "conflict"
)

// ConflictReason explains why a target node was left alone.
type ConflictReason string

const (
	// ReasonTypeMismatch: a file sits where a directory is expected, or the reverse.
	ReasonTypeMismatch ConflictReason = "type_mismatch"
	// ReasonForeignLink: a symlink exists but resolves somewhere else.
	ReasonForeignLink ConflictReason = "foreign_link"
	// ReasonRealFile: a regular file blocks the link.
	ReasonRealFile ConflictReason = "real_file"
	// ReasonFilesystem: an existence check or link operation failed.
	ReasonFilesystem ConflictReason = "filesystem_error"
)

// Outcome is the result for a single source/target node pair.
type Outcome struct {
	Component string         `json:"component" yaml:"component"`
	Source    string         `json:"source" yaml:"source"`
	Target    string         `json:"target" yaml:"target"`
	Action    Action         `json:"action" yaml:"action"`
	Reason    ConflictReason `json:"reason,omitempty" yaml:"reason,omitempty"`

	// LinkTarget is the resolved destination of a foreign link.
	LinkTarget string `json:"linkTarget,omitempty" yaml:"linkTarget,omitempty"`

	Err error `json:"-" yaml:"-"`
}

// IsConflict reports whether the node was skipped because of its state.
func (o Outcome) IsConflict() bool {
	return o.Action == ActionConflict
}

// Changes reports whether the outcome creates or removes a link.
func (o Outcome) Changes() bool {
	return o.Action == ActionLinked || o.Action == ActionUnlinked
}

// ComponentReport groups the outcomes of one component.
type ComponentReport struct {
	Component *Component `json:"component" yaml:"component"`
	Outcomes  []Outcome  `json:"outcomes" yaml:"outcomes"`

	// Skipped is set when the component was not handed to the linker.
	Skipped bool `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Conflicts returns the conflicting outcomes.
func (r ComponentReport) Conflicts() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.IsConflict() {
			out = append(out, o)
		}
	}
	return out
}

// RunReport collects every component handled by an install or remove run.
type RunReport struct {
	DryRun     bool              `json:"dryRun" yaml:"dryRun"`
	Components []ComponentReport `json:"components" yaml:"components"`
}

// Conflicts counts conflicting nodes across all components.
func (r *RunReport) Conflicts() int {
	n := 0
	for _, c := range r.Components {
		n += len(c.Conflicts())
	}
	return n
}

// Changes counts the links created or removed (or that would be, in a dry run).
func (r *RunReport) Changes() int {
	n := 0
	for _, c := range r.Components {
		for _, o := range c.Outcomes {
			if o.Changes() {
				n++
			}
		}
	}
	return n
}

// ConfigErrors counts configuration errors recorded on components.
func (r *RunReport) ConfigErrors() int {
	n := 0
	for _, c := range r.Components {
		if c.Component != nil {
			n += len(c.Component.Problems)
		}
	}
	return n
}

// HasErrors reports whether the run hit any conflict or configuration error.
func (r *RunReport) HasErrors() bool {
	return r.Conflicts() > 0 || r.ConfigErrors() > 0
}
