// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/archivekit/go-archive/telemetry"
)

// Extract reads the archive at src entry by entry and materializes files and
// directories below dst. dst must be an existing directory, checked before
// any archive I/O begins.
//
// The container format is detected from the stream header; formats without
// magic bytes (tar.br) fall back to the handle's format name. Entries are
// processed in stream order. A file entry may legally precede its parent
// directory's entry, missing ancestors are created on demand. Existing files
// are overwritten unless configured otherwise.
//
// The operation runs to completion or to the first failure; a partially
// extracted tree is left on disk, pre-existing unrelated content is kept.
func (a *Archiver) Extract(ctx context.Context, src string, dst string) error {
	cfg := a.cfg

	// prepare telemetry data collection and emit
	td := &telemetry.Data{ArchiveType: a.name}
	defer cfg.TelemetryHook()(ctx, td)
	defer captureDuration(td, now())

	if err := requireDirectory(cfg.Target(), dst, cfg); err != nil {
		return captureError(td, "cannot extract archive", err)
	}

	f, err := os.Open(src)
	if err != nil {
		return captureError(td, "cannot open archive", err)
	}
	defer f.Close()

	if stat, err := f.Stat(); err == nil {
		td.InputSize = stat.Size()
	}

	cfg.Logger().Info("extracting archive", "path", src, "destination", dst)

	er, err := cfg.StreamFactory().NewReader(newLimitErrorReader(bufio.NewReader(f), cfg.MaxInputSize()))
	if errors.Is(err, ErrUnknownArchive) && sniffless(a.name) {
		// formats without magic bytes are only reachable by name
		if _, serr := f.Seek(0, io.SeekStart); serr == nil {
			er, err = cfg.StreamFactory().NewReaderFormat(a.name, newLimitErrorReader(bufio.NewReader(f), cfg.MaxInputSize()))
		}
	}
	if err != nil {
		return captureError(td, "cannot open archive reader", err)
	}
	defer er.Close()

	return a.unpack(ctx, er, dst, cfg, td)
}

// unpack checks ctx for cancellation while it materializes all entries from
// er below dst.
func (a *Archiver) unpack(ctx context.Context, er EntryReader, dst string, cfg *Config, td *telemetry.Data) error {
	t := cfg.Target()
	var objectCounter int64
	var extractedBytes int64

	for {
		// check if context is canceled
		if err := ctx.Err(); err != nil {
			return err
		}

		// get next entry
		entry, err := er.Next()

		switch {

		// if no more entries are found, extraction is finished
		case err == io.EOF:
			return nil

		case err != nil:
			return captureError(td, "cannot read entry", err)

		case entry == nil:
			continue
		}

		objectCounter++
		if err := cfg.CheckMaxObjects(objectCounter); err != nil {
			return captureError(td, "max objects check failed", err)
		}

		// check if entry needs to match patterns
		match, err := checkPatterns(cfg.Patterns(), entry.Name)
		if err != nil {
			return captureError(td, "cannot check pattern", err)
		}
		if !match {
			cfg.Logger().Info("skipping entry (pattern mismatch)", "name", entry.Name)
			td.PatternMismatches++
			continue
		}

		cfg.Logger().Debug("extract", "name", entry.Name)
		switch {

		case entry.IsDir:
			if err := createDir(t, dst, entry.Name, entry.Mode.Perm(), cfg); err != nil {
				return captureError(td, "cannot create directory", err)
			}
			td.Dirs++

		case entry.Mode.IsRegular():
			if err := cfg.CheckExtractionSize(extractedBytes + entry.Size); err != nil {
				return captureError(td, "max extraction size exceeded", err)
			}

			n, err := createFile(t, dst, entry.Name, er, entry.Mode.Perm(), cfg.MaxExtractionSize()-extractedBytes, cfg)
			extractedBytes += n
			td.Bytes = extractedBytes
			if err != nil {
				return captureError(td, "cannot create file", err)
			}
			td.Files++

			if cfg.PreserveFileTimes() {
				path := filepath.Join(dst, toPlatformPath(entry.Name))
				if err := t.Chtimes(path, entry.ModTime, entry.ModTime); err != nil {
					return captureError(td, "cannot restore file times", err)
				}
			}

		default:
			// symlinks, devices and other irregular entries cannot be
			// materialized
			if cfg.ContinueOnUnsupportedFiles() {
				cfg.Logger().Info("skipped unsupported entry", "name", entry.Name)
				td.UnsupportedFiles++
				td.LastUnsupportedFile = entry.Name
				continue
			}
			return captureError(td, "cannot extract entry", fmt.Errorf("unsupported entry type in archive (%s)", entry.Mode))
		}
	}
}

// checkPatterns checks if the given path matches any of the given patterns.
// If no patterns are given, the function returns true.
func checkPatterns(patterns []string, path string) (bool, error) {
	// no patterns given
	if len(patterns) == 0 {
		return true, nil
	}

	// check if path matches any pattern
	for _, pattern := range patterns {
		if match, err := filepath.Match(pattern, path); err != nil {
			return false, fmt.Errorf("failed to match pattern: %w", err)
		} else if match {
			return true, nil
		}
	}
	return false, nil
}
