package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/types"
)

// AssertLinkTo checks that path is a symbolic link resolving to target
func AssertLinkTo(t *testing.T, path, target string) {
	t.Helper()

	info, err := os.Lstat(path)
	if err != nil {
		t.Errorf("Expected link at %s: %v", path, err)
		return
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Errorf("Expected %s to be a symlink, got mode %s", path, info.Mode())
		return
	}

	dest, err := os.Readlink(path)
	if err != nil {
		t.Errorf("Failed to read link %s: %v", path, err)
		return
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(path), dest)
	}
	if filepath.Clean(dest) != filepath.Clean(target) {
		t.Errorf("Link %s points to %s, expected %s", path, dest, target)
	}
}

// AssertRealDir checks that path is a directory and not a link
func AssertRealDir(t *testing.T, path string) {
	t.Helper()

	info, err := os.Lstat(path)
	if err != nil {
		t.Errorf("Expected directory at %s: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("Expected %s to be a real directory, got mode %s", path, info.Mode())
	}
}

// AssertRealFile checks that path is a regular file with content
func AssertRealFile(t *testing.T, path, content string) {
	t.Helper()

	info, err := os.Lstat(path)
	if err != nil {
		t.Errorf("Expected file at %s: %v", path, err)
		return
	}
	if !info.Mode().IsRegular() {
		t.Errorf("Expected %s to be a regular file, got mode %s", path, info.Mode())
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("Failed to read %s: %v", path, err)
		return
	}
	if string(data) != content {
		t.Errorf("File %s content %q, expected %q", path, data, content)
	}
}

// AssertNotExists checks that nothing, not even a dangling link, is at path
func AssertNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Lstat(path); err == nil {
		t.Errorf("Expected %s to not exist", path)
	} else if !os.IsNotExist(err) {
		t.Errorf("Failed to check %s: %v", path, err)
	}
}

// CountActions tallies outcomes by action
func CountActions(outcomes []types.Outcome) map[types.Action]int {
	counts := make(map[types.Action]int)
	for _, o := range outcomes {
		counts[o.Action]++
	}
	return counts
}

// FindOutcome returns the outcome for target, if any
func FindOutcome(outcomes []types.Outcome, target string) (types.Outcome, bool) {
	for _, o := range outcomes {
		if o.Target == target {
			return o, true
		}
	}
	return types.Outcome{}, false
}
