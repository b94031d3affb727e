package preprocessor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolver maps raw include paths to canonical absolute paths confined to a
// base directory. Canonical means absolute, symlink-resolved, and free of
// "." and ".." segments, so two spellings of the same file share one
// identity for cycle detection.
type Resolver struct {
	base string // canonical sandbox root
}

// NewResolver canonicalizes baseDir and returns a resolver rooted there.
func NewResolver(baseDir string) (*Resolver, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory %s: %w", baseDir, err)
	}

	canon, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, classifyPathError(baseDir, err)
	}

	info, err := os.Stat(canon)
	if err != nil {
		return nil, classifyPathError(baseDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("base path is not a directory: %s", baseDir)
	}

	return &Resolver{base: canon}, nil
}

// Base returns the canonical sandbox root.
func (r *Resolver) Base() string {
	return r.base
}

// Resolve turns the raw path from a directive into a canonical absolute
// path. Absolute raw paths are re-rooted under the base directory rather
// than the filesystem root; relative paths resolve against the directory of
// the including file, so nested includes chain correctly no matter where the
// top-level input lives. A path that lands outside the base directory
// reports ErrFileNotFound rather than revealing what exists out there.
func (r *Resolver) Resolve(rawPath, includingFile string) (string, error) {
	var candidate string
	if filepath.IsAbs(rawPath) {
		candidate = filepath.Join(r.base, strings.TrimPrefix(rawPath, string(os.PathSeparator)))
	} else {
		candidate = filepath.Join(filepath.Dir(includingFile), rawPath)
	}

	canon, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		return "", classifyPathError(rawPath, err)
	}
	if !r.contains(canon) {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, rawPath)
	}

	if err := checkReadableFile(canon); err != nil {
		return "", err
	}
	return canon, nil
}

// contains reports whether path sits at or below the sandbox root. Both
// sides are canonical, so a plain prefix check is sufficient.
func (r *Resolver) contains(path string) bool {
	return path == r.base || strings.HasPrefix(path, r.base+string(os.PathSeparator))
}

// CanonicalizeFile resolves path to its canonical form and verifies it is a
// readable regular file. The top-level input goes through this instead of
// Resolve because it defines the sandbox rather than being subject to it.
func CanonicalizeFile(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	canon, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", classifyPathError(path, err)
	}

	if err := checkReadableFile(canon); err != nil {
		return "", err
	}
	return canon, nil
}

// checkReadableFile verifies that path names a regular file the process can
// open for reading. Directories resolve as not-found: a directive can only
// splice file content.
func checkReadableFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return classifyPathError(path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return classifyPathError(path, err)
	}
	return f.Close()
}
