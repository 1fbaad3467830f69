// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/archivekit/go-archive/telemetry"
)

// now is a function pointer that returns time.Now to the caller.
var now = time.Now

// Create builds a new archive at dst/<name><extension> from the given
// sources and returns its path. The extension is appended unless name
// already carries it. dst must be an existing directory, checked before any
// archive I/O begins.
//
// A source that is a regular file is archived under its own base name; a
// source that is a directory contributes its subtree, with entry names
// relative to the directory itself. Entries are written strictly one after
// another, depth-first, in filesystem enumeration order.
//
// The operation runs to completion or to the first failure; a partially
// written archive file is left on disk. The entry writer is flushed and
// closed on every exit path.
func (a *Archiver) Create(ctx context.Context, name string, dst string, sources ...string) (string, error) {
	cfg := a.cfg

	// prepare telemetry data collection and emit
	td := &telemetry.Data{ArchiveType: a.name}
	defer cfg.TelemetryHook()(ctx, td)
	defer captureDuration(td, now())

	// the archive file is written to the local filesystem, so the
	// destination check runs there; cfg.Target() only affects extraction
	if err := requireDirectory(NewTargetDisk(), dst, cfg); err != nil {
		return "", captureError(td, "cannot create archive", err)
	}
	if len(sources) == 0 {
		return "", captureError(td, "cannot create archive", fmt.Errorf("no sources given"))
	}

	archivePath := filepath.Join(dst, a.ensureExtension(name))
	cfg.Logger().Info("creating archive", "path", archivePath, "format", a.name)

	f, err := os.Create(archivePath)
	if err != nil {
		return "", captureError(td, "cannot create archive file", err)
	}

	// format lookup happens here, not at handle construction
	ew, err := cfg.StreamFactory().NewWriter(a.name, f)
	if err != nil {
		f.Close()
		return "", captureError(td, "cannot open archive writer", err)
	}

	// pack, then flush and close the writer on every exit path
	packErr := a.pack(ctx, ew, sources, cfg, td)
	if packErr == nil {
		packErr = ew.Flush()
	}
	if err := errors.Join(packErr, ew.Close(), f.Close()); err != nil {
		return "", captureError(td, "cannot write archive", err)
	}

	cfg.Logger().Info("archive created", "path", archivePath, "files", td.Files, "dirs", td.Dirs)
	return archivePath, nil
}

// pack writes all top-level sources into ew. The relativization root differs
// for a bare-file source (its containing directory) and a directory source
// (the directory itself), so a file source becomes a single entry named
// after its base name, and a directory source contributes its children
// without the directory's own name as prefix.
func (a *Archiver) pack(ctx context.Context, ew EntryWriter, sources []string, cfg *Config, td *telemetry.Data) error {
	for _, src := range sources {
		stat, err := os.Lstat(src)
		if err != nil {
			return captureError(td, "cannot read source", err)
		}

		switch {
		case stat.IsDir():
			children, err := os.ReadDir(src)
			if err != nil {
				return captureError(td, "cannot read source directory", err)
			}
			for _, child := range children {
				if err := a.writeNode(ctx, ew, src, filepath.Join(src, child.Name()), cfg, td); err != nil {
					return err
				}
			}
		default:
			if err := a.writeNode(ctx, ew, filepath.Dir(src), src, cfg, td); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeNode emits one entry for path, named relative to root, and descends
// into directories. Each entry is finalized before the next one starts; the
// entry writer is single-writer by construction.
func (a *Archiver) writeNode(ctx context.Context, ew EntryWriter, root string, path string, cfg *Config, td *telemetry.Data) error {
	// check if context is canceled
	if err := ctx.Err(); err != nil {
		return err
	}

	stat, err := os.Lstat(path)
	if err != nil {
		return captureError(td, "cannot read source", err)
	}

	// symlinks, devices and other irregular files cannot be represented as
	// entries
	if !stat.Mode().IsRegular() && !stat.IsDir() {
		if cfg.ContinueOnUnsupportedFiles() {
			cfg.Logger().Info("skipped unsupported file", "path", path)
			td.UnsupportedFiles++
			td.LastUnsupportedFile = path
			return nil
		}
		return captureError(td, "cannot package file", fmt.Errorf("unsupported filetype (%s)", path))
	}

	if err := cfg.CheckMaxObjects(td.Files + td.Dirs + 1); err != nil {
		return captureError(td, "max objects check failed", err)
	}

	entry := &Entry{
		Name:    relativePath(root, path),
		Size:    stat.Size(),
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		IsDir:   stat.IsDir(),
	}
	cfg.Logger().Debug("package", "name", entry.Name)

	if err := ew.WriteHeader(entry); err != nil {
		return captureError(td, "cannot write entry header", err)
	}

	if !entry.IsDir {
		src, err := os.Open(path)
		if err != nil {
			return captureError(td, "cannot open source file", err)
		}
		n, err := io.Copy(ew, src)
		src.Close()
		td.Bytes += n
		if err != nil {
			return captureError(td, "cannot write entry content", err)
		}
	}

	if err := ew.CloseEntry(); err != nil {
		return captureError(td, "cannot finalize entry", err)
	}

	if entry.IsDir {
		td.Dirs++
		children, err := os.ReadDir(path)
		if err != nil {
			return captureError(td, "cannot read source directory", err)
		}
		for _, child := range children {
			if err := a.writeNode(ctx, ew, root, filepath.Join(path, child.Name()), cfg, td); err != nil {
				return err
			}
		}
		return nil
	}

	td.Files++
	return nil
}

// captureDuration captures the duration of the call.
func captureDuration(td *telemetry.Data, start time.Time) {
	td.Duration = now().Sub(start)
}

// captureError increases the error counter, stores the latest error and
// returns it.
func captureError(td *telemetry.Data, msg string, err error) error {
	td.Errors++
	td.LastError = fmt.Errorf("%s: %w", msg, err)
	return td.LastError
}
