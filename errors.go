// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrNoSuchFormat is returned when an [Archiver] was constructed for a
	// format name the stream factory does not know, or for a format that
	// cannot be written. The check happens when the entry writer is opened,
	// not when the handle is constructed.
	ErrNoSuchFormat = errors.New("no such archive format")

	// ErrUnknownArchive is returned when the header of an archive stream does
	// not match any known container format.
	ErrUnknownArchive = errors.New("unknown archive stream")

	// ErrInvalidDestination is returned when the destination given to Create
	// or Extract does not exist or is not a directory. The check happens
	// before any archive I/O begins.
	ErrInvalidDestination = errors.New("invalid destination")
)

// requireDirectory verifies that path exists on t and is a directory. If
// cfg.CreateDestination() is set, a missing path is created instead of
// reported.
func requireDirectory(t Target, path string, cfg *Config) error {
	stat, err := t.Lstat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if cfg.CreateDestination() {
			if err := t.CreateDir(path, cfg.DefaultDirPermission()); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidDestination, err)
			}
			cfg.Logger().Info("created destination directory", "path", path)
			return nil
		}
		return fmt.Errorf("%w: %s does not exist", ErrInvalidDestination, path)
	case err != nil:
		return fmt.Errorf("%w: %w", ErrInvalidDestination, err)
	case !stat.IsDir():
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidDestination, path)
	}
	return nil
}
