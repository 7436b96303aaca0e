// Package linker mirrors a component's directory tree into its install path
// with symbolic links, and takes those links away again.
//
// A target that does not exist gets one link for the whole source subtree.
// A real directory at the target is merged into: each child of the source is
// handled on its own. Anything else in the way is reported as a conflict and
// left untouched. Links are the only installed state, so running Install
// again re-verifies every link instead of recreating it.
package linker

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/rs/zerolog"
)

// Conflict messages for targets occupied by something other than a link.
const (
	msgRealFile   = "a regular file is in the way"
	msgFileForDir = "a file is where a directory belongs"
	msgDirForFile = "a directory is where a file belongs"
)

// Linker installs and removes component link trees.
type Linker struct {
	fs     types.FS
	dryRun bool
	logger zerolog.Logger
}

// New creates a linker. In dry-run mode outcomes are computed but the
// filesystem is never changed.
func New(fs types.FS, dryRun bool) *Linker {
	return &Linker{
		fs:     fs,
		dryRun: dryRun,
		logger: logging.GetLogger("linker"),
	}
}

// DryRun reports whether the linker leaves the filesystem alone.
func (l *Linker) DryRun() bool {
	return l.dryRun
}

// run carries the per-component state of one traversal.
type run struct {
	*Linker
	component string
	outcomes  []types.Outcome
}

func (l *Linker) newRun(c *types.Component) *run {
	return &run{Linker: l, component: c.Name}
}

func (r *run) record(o types.Outcome) {
	o.Component = r.component

	var event *zerolog.Event
	switch {
	case o.IsConflict():
		event = r.logger.Warn().Str("reason", string(o.Reason))
		if o.LinkTarget != "" {
			event = event.Str("linkTarget", o.LinkTarget)
		}
		if o.Err != nil {
			event = event.Err(o.Err)
		}
	case o.Changes():
		event = r.logger.Info()
	default:
		event = r.logger.Debug()
	}
	event.
		Str("component", o.Component).
		Str("source", o.Source).
		Str("target", o.Target).
		Str("action", string(o.Action)).
		Bool("dryRun", r.dryRun).
		Msg("Link outcome")

	r.outcomes = append(r.outcomes, o)
}

func (r *run) conflict(source, target string, reason types.ConflictReason, err error) {
	r.record(types.Outcome{
		Source: source,
		Target: target,
		Action: types.ActionConflict,
		Reason: reason,
		Err:    err,
	})
}

// matchLink records the outcome for a link found at target: match when it
// resolves to source, a foreign link conflict otherwise.
func (r *run) matchLink(source, target string, node filesystem.Node, match types.Action) {
	if filesystem.SamePath(node.LinkTarget, source) {
		r.record(types.Outcome{Source: source, Target: target, Action: match})
		return
	}
	r.foreignLink(source, target, node)
}

func (r *run) foreignLink(source, target string, node filesystem.Node) {
	r.record(types.Outcome{
		Source:     source,
		Target:     target,
		Action:     types.ActionConflict,
		Reason:     types.ReasonForeignLink,
		LinkTarget: node.LinkTarget,
		Err:        conflictError(types.ReasonForeignLink, target, "links to "+node.LinkTarget),
	})
}

// blocked records a conflict caused by what already occupies target.
func (r *run) blocked(source, target string, reason types.ConflictReason, msg string) {
	r.conflict(source, target, reason, conflictError(reason, target, msg))
}

func conflictError(reason types.ConflictReason, target, msg string) error {
	return errors.New(errors.ErrConflict, msg).
		WithDetail("target", target).
		WithDetail("reason", string(reason))
}

// children lists source's entries, following symlinks so a linked directory
// inside a component is treated as a directory.
func (r *run) children(source, target string, visit func(src, dst string, isDir bool)) {
	entries, err := r.fs.ReadDir(source)
	if err != nil {
		r.conflict(source, target, types.ReasonFilesystem,
			errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", source))
		return
	}

	for _, entry := range entries {
		src := filepath.Join(source, entry.Name())
		dst := filepath.Join(target, entry.Name())

		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			info, err := r.fs.Stat(src)
			if err != nil {
				r.conflict(src, dst, types.ReasonFilesystem,
					errors.Wrapf(err, errors.ErrFileAccess, "cannot follow %s", src))
				continue
			}
			isDir = info.IsDir()
		}

		visit(src, dst, isDir)
	}
}
