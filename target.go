// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

// Target specifies all functions that are needed to materialize extracted
// archive contents on a filesystem.
type Target interface {
	// CreateFile creates a file at the specified path with src as content.
	// The mode parameter is the file mode that is set on the file. If the
	// file already exists and overwrite is false, an error is returned. The
	// size of the file must not exceed maxSize; if maxSize < 0, the file
	// size is not limited. The number of bytes written is returned along
	// with any error.
	CreateFile(path string, src io.Reader, mode fs.FileMode, overwrite bool, maxSize int64) (int64, error)

	// CreateDir creates a directory at the specified path with the specified
	// mode, along with any necessary parents. If the directory already
	// exists, nothing is done.
	CreateDir(path string, mode fs.FileMode) error

	// Lstat see docs for os.Lstat. Main purpose is destination and
	// entry-path inspection without following symlinks.
	Lstat(path string) (fs.FileInfo, error)

	// Stat see docs for os.Stat.
	Stat(path string) (fs.FileInfo, error)

	// Chmod see docs for os.Chmod.
	Chmod(name string, mode fs.FileMode) error

	// Chtimes see docs for os.Chtimes. Main purpose is to restore entry
	// modification times on extracted files.
	Chtimes(name string, atime, mtime time.Time) error
}

// toPlatformPath converts a slash-separated entry name to a platform
// specific path.
func toPlatformPath(name string) string {
	parts := strings.Split(name, "/")
	return filepath.Join(parts...)
}

// createDir is a wrapper around Target.CreateDir that interprets name
// relative to dst, rejects names escaping dst, and creates missing
// ancestors.
func createDir(t Target, dst string, name string, mode fs.FileMode, cfg *Config) error {
	// no action needed
	if name == "." || name == "" {
		return nil
	}

	if err := securityCheck(dst, name); err != nil {
		return fmt.Errorf("security check path failed: %w", err)
	}

	path := filepath.Join(dst, toPlatformPath(name))
	return t.CreateDir(path, mode)
}

// createFile is a wrapper around Target.CreateFile that interprets name
// relative to dst, rejects names escaping dst, and ensures the parent
// directory exists. A file entry may precede its parent directory's entry in
// the stream, so ancestors are created on demand and never assumed.
func createFile(t Target, dst string, name string, src io.Reader, mode fs.FileMode, maxSize int64, cfg *Config) (int64, error) {
	// check if a name is provided
	if len(name) == 0 {
		return 0, fmt.Errorf("cannot create file without name")
	}

	if err := securityCheck(dst, name); err != nil {
		return 0, fmt.Errorf("security check path failed: %w", err)
	}

	name = toPlatformPath(name)

	// ensure the parent directory exists
	if parent := filepath.Dir(name); parent != "." {
		if err := t.CreateDir(filepath.Join(dst, parent), cfg.DefaultDirPermission()); err != nil {
			return 0, fmt.Errorf("cannot create parent directory: %w", err)
		}
	}

	return t.CreateFile(filepath.Join(dst, name), src, mode, cfg.Overwrite(), maxSize)
}

// securityCheck rejects entry names that resolve outside of dst, e.g. by
// path traversal or an absolute path.
func securityCheck(dst string, name string) error {
	if filepath.IsAbs(name) {
		return fmt.Errorf("absolute path detected")
	}

	path := toPlatformPath(name)
	rel, err := filepath.Rel(dst, filepath.Join(dst, path))
	if err != nil {
		return fmt.Errorf("failed to get relative path: %w", err)
	}
	if !filepath.IsLocal(rel) {
		return fmt.Errorf("path traversal detected")
	}
	return nil
}
