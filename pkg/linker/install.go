package linker

import (
	"path/filepath"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// Install links the component's source tree into its install path. Only
// components that CanInstall are processed; others yield no outcomes.
func (l *Linker) Install(c *types.Component) []types.Outcome {
	if !c.CanInstall() {
		return nil
	}

	r := l.newRun(c)
	if r.ensureParent(c.SourcePath, c.InstallPath) {
		r.installDir(c.SourcePath, c.InstallPath)
	}
	return r.outcomes
}

// ensureParent creates the directory that will hold the install root.
func (r *run) ensureParent(source, target string) bool {
	parent := filepath.Dir(target)
	node, err := filesystem.Inspect(r.fs, parent)
	if err != nil {
		r.conflict(source, target, types.ReasonFilesystem, err)
		return false
	}
	if node.Kind != filesystem.NodeMissing || r.dryRun {
		return true
	}

	r.logger.Debug().Str("path", parent).Msg("Creating install parent")
	if err := r.fs.MkdirAll(parent, 0755); err != nil {
		r.conflict(source, target, types.ReasonFilesystem,
			errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", parent).WithDetail("path", parent))
		return false
	}
	return true
}

func (r *run) installDir(source, target string) {
	node, err := filesystem.Inspect(r.fs, target)
	if err != nil {
		r.conflict(source, target, types.ReasonFilesystem, err)
		return
	}

	switch node.Kind {
	case filesystem.NodeMissing:
		r.link(source, target)
	case filesystem.NodeLink:
		r.matchLink(source, target, node, types.ActionAlreadyLinked)
	case filesystem.NodeDir:
		r.children(source, target, func(src, dst string, isDir bool) {
			if isDir {
				r.installDir(src, dst)
			} else {
				r.installFile(src, dst)
			}
		})
	default:
		r.blocked(source, target, types.ReasonTypeMismatch, msgFileForDir)
	}
}

func (r *run) installFile(source, target string) {
	node, err := filesystem.Inspect(r.fs, target)
	if err != nil {
		r.conflict(source, target, types.ReasonFilesystem, err)
		return
	}

	switch node.Kind {
	case filesystem.NodeMissing:
		r.link(source, target)
	case filesystem.NodeLink:
		r.matchLink(source, target, node, types.ActionAlreadyLinked)
	case filesystem.NodeDir:
		r.blocked(source, target, types.ReasonTypeMismatch, msgDirForFile)
	default:
		r.blocked(source, target, types.ReasonRealFile, msgRealFile)
	}
}

func (r *run) link(source, target string) {
	if !r.dryRun {
		if err := r.fs.Symlink(source, target); err != nil {
			r.conflict(source, target, types.ReasonFilesystem,
				errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot link %s", target).
					WithDetail("source", source).
					WithDetail("target", target))
			return
		}
	}
	r.record(types.Outcome{Source: source, Target: target, Action: types.ActionLinked})
}
