// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// seekerReaderAt combines the io.ReaderAt and io.Seeker interfaces. Codecs
// that need random access (zip, 7z) consume this instead of a plain reader.
type seekerReaderAt interface {
	io.ReaderAt
	io.Seeker
}

// readerToReaderAtSeeker converts an io.Reader to a seekerReaderAt. Files and
// byte buffers pass through; pure streams are cached, in memory or in a
// temporary file depending on cfg.CacheInMemory(). The returned cleanup
// function releases the cache and must be called after use.
func readerToReaderAtSeeker(cfg *Config, r io.Reader) (seekerReaderAt, func(), error) {
	noop := func() {}

	if s, ok := r.(seekerReaderAt); ok {
		return s, noop, nil
	}

	// check if reader is a buffer
	if b, ok := r.(*bytes.Buffer); ok {
		return bytes.NewReader(b.Bytes()), noop, nil
	}

	// limit reader
	ler := newLimitErrorReader(r, cfg.MaxInputSize())

	// check how to cache
	if cfg.CacheInMemory() {
		b, err := io.ReadAll(ler)
		if err != nil {
			return nil, noop, fmt.Errorf("cannot read all from reader: %w", err)
		}
		return bytes.NewReader(b), noop, nil
	}

	// create temp file
	tmpFile, err := os.CreateTemp("", "go-archive-*")
	if err != nil {
		return nil, noop, err
	}
	cleanup := func() {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
	}

	// copy reader to temp file
	if _, err := io.Copy(tmpFile, ler); err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("cannot copy reader to file: %w", err)
	}

	// seek to start
	if _, err := tmpFile.Seek(0, io.SeekStart); err != nil {
		cleanup()
		return nil, noop, err
	}

	return tmpFile, cleanup, nil
}
