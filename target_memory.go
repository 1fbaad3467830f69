// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sync"
	"time"
)

// TargetMemory is an in-memory [Target] implementation. It is a map of
// slash-separated paths to entries holding file information and data.
// Permissions on entries are stored but not enforced. Useful for tests and
// embedders that post-process extracted content without touching the local
// filesystem.
type TargetMemory struct {
	files sync.Map // map[string]*memoryEntry
}

type memoryEntry struct {
	info memoryFileInfo
	data []byte
}

// NewTargetMemory creates a new in-memory [Target].
func NewTargetMemory() *TargetMemory {
	return &TargetMemory{}
}

// normalizeMemoryPath converts a platform path to the slash-separated form
// used as map key.
func normalizeMemoryPath(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

// CreateFile creates a file at the specified path with src as content. If
// the file already exists and overwrite is false, an error is returned. The
// write fails once maxSize bytes have been written; maxSize < 0 disables the
// limit.
func (m *TargetMemory) CreateFile(p string, src io.Reader, mode fs.FileMode, overwrite bool, maxSize int64) (int64, error) {
	p = normalizeMemoryPath(p)
	if !overwrite {
		if _, ok := m.files.Load(p); ok {
			return 0, fmt.Errorf("%w: %s", fs.ErrExist, p)
		}
	}

	var buf bytes.Buffer
	n, err := io.Copy(limitWriter(&buf, maxSize), src)
	if err != nil {
		return n, err
	}

	m.files.Store(p, &memoryEntry{
		info: memoryFileInfo{name: path.Base(p), size: n, mode: mode.Perm(), modTime: time.Now()},
		data: buf.Bytes(),
	})
	return n, nil
}

// CreateDir creates a directory at the specified path, along with any
// necessary parents. If the directory already exists, nothing is done.
func (m *TargetMemory) CreateDir(p string, mode fs.FileMode) error {
	p = normalizeMemoryPath(p)

	// create missing ancestors first
	if parent := path.Dir(p); parent != "." && parent != p {
		if _, ok := m.files.Load(parent); !ok {
			if err := m.CreateDir(parent, mode); err != nil {
				return err
			}
		}
	}

	if _, ok := m.files.Load(p); ok {
		return nil
	}
	m.files.Store(p, &memoryEntry{
		info: memoryFileInfo{name: path.Base(p), mode: mode.Perm() | fs.ModeDir, modTime: time.Now()},
	})
	return nil
}

// Lstat returns the FileInfo structure describing the named entry.
func (m *TargetMemory) Lstat(p string) (fs.FileInfo, error) {
	return m.Stat(p)
}

// Stat returns the FileInfo structure describing the named entry.
func (m *TargetMemory) Stat(p string) (fs.FileInfo, error) {
	p = normalizeMemoryPath(p)
	e, ok := m.files.Load(p)
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
	}
	info := e.(*memoryEntry).info
	return &info, nil
}

// Chmod changes the mode of the named entry to mode.
func (m *TargetMemory) Chmod(p string, mode fs.FileMode) error {
	p = normalizeMemoryPath(p)
	e, ok := m.files.Load(p)
	if !ok {
		return &fs.PathError{Op: "chmod", Path: p, Err: fs.ErrNotExist}
	}
	me := e.(*memoryEntry)
	me.info.mode = mode.Perm() | (me.info.mode & fs.ModeDir)
	return nil
}

// Chtimes changes the modification time of the named entry.
func (m *TargetMemory) Chtimes(p string, _, mtime time.Time) error {
	p = normalizeMemoryPath(p)
	e, ok := m.files.Load(p)
	if !ok {
		return &fs.PathError{Op: "chtimes", Path: p, Err: fs.ErrNotExist}
	}
	e.(*memoryEntry).info.modTime = mtime
	return nil
}

// ReadFile returns the content of the named file.
func (m *TargetMemory) ReadFile(p string) ([]byte, error) {
	p = normalizeMemoryPath(p)
	e, ok := m.files.Load(p)
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: p, Err: fs.ErrNotExist}
	}
	me := e.(*memoryEntry)
	if me.info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: p, Err: fmt.Errorf("is a directory")}
	}
	return append([]byte(nil), me.data...), nil
}

// memoryFileInfo implements fs.FileInfo for in-memory entries.
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

// Name returns the base name of the entry.
func (fi *memoryFileInfo) Name() string {
	return fi.name
}

// Size returns the size of the entry.
func (fi *memoryFileInfo) Size() int64 {
	return fi.size
}

// Mode returns the mode of the entry.
func (fi *memoryFileInfo) Mode() fs.FileMode {
	return fi.mode
}

// ModTime returns the modification time of the entry.
func (fi *memoryFileInfo) ModTime() time.Time {
	return fi.modTime
}

// IsDir returns true if the entry is a directory.
func (fi *memoryFileInfo) IsDir() bool {
	return fi.mode&fs.ModeDir != 0
}

// Sys returns nil.
func (fi *memoryFileInfo) Sys() any {
	return nil
}
