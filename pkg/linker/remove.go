package linker

import (
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// Remove takes away the links Install would have made for the component,
// under its RemovePath. Only links resolving to the component's own files are
// removed; anything else at a target is a conflict and stays. Directories are
// never deleted.
func (l *Linker) Remove(c *types.Component) []types.Outcome {
	if c.RemovePath == "" {
		return nil
	}

	r := l.newRun(c)
	r.removeDir(c.SourcePath, c.RemovePath)
	return r.outcomes
}

func (r *run) removeDir(source, target string) {
	node, err := filesystem.Inspect(r.fs, target)
	if err != nil {
		r.conflict(source, target, types.ReasonFilesystem, err)
		return
	}

	switch node.Kind {
	case filesystem.NodeMissing:
		r.record(types.Outcome{Source: source, Target: target, Action: types.ActionNotLinked})
	case filesystem.NodeLink:
		r.unlink(source, target, node)
	case filesystem.NodeDir:
		r.children(source, target, func(src, dst string, isDir bool) {
			if isDir {
				r.removeDir(src, dst)
			} else {
				r.removeFile(src, dst)
			}
		})
	default:
		r.blocked(source, target, types.ReasonTypeMismatch, msgFileForDir)
	}
}

func (r *run) removeFile(source, target string) {
	node, err := filesystem.Inspect(r.fs, target)
	if err != nil {
		r.conflict(source, target, types.ReasonFilesystem, err)
		return
	}

	switch node.Kind {
	case filesystem.NodeMissing:
		r.record(types.Outcome{Source: source, Target: target, Action: types.ActionNotLinked})
	case filesystem.NodeLink:
		r.unlink(source, target, node)
	case filesystem.NodeDir:
		r.blocked(source, target, types.ReasonTypeMismatch, msgDirForFile)
	default:
		r.blocked(source, target, types.ReasonRealFile, msgRealFile)
	}
}

func (r *run) unlink(source, target string, node filesystem.Node) {
	if !filesystem.SamePath(node.LinkTarget, source) {
		r.foreignLink(source, target, node)
		return
	}

	if !r.dryRun {
		if err := r.fs.Remove(target); err != nil {
			r.conflict(source, target, types.ReasonFilesystem,
				errors.Wrapf(err, errors.ErrSymlinkRemove, "cannot remove link %s", target).
					WithDetail("target", target))
			return
		}
	}
	r.record(types.Outcome{Source: source, Target: target, Action: types.ActionUnlinked})
}
