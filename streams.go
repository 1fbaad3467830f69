// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"fmt"
	"io"
	"io/fs"
	"time"
)

// Entry describes a single archive entry. Name is a slash-separated path
// relative to the archive root; directory entries carry no content.
type Entry struct {
	Name    string
	Size    int64
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool
}

// EntryWriter is an entry-oriented archive sink. Entries are written
// strictly in sequence: WriteHeader begins an entry, Write appends content
// to the current entry, CloseEntry finalizes it. The writer is single-writer
// by construction, concurrent use is not supported.
type EntryWriter interface {
	// WriteHeader begins a new entry. The previous entry, if any, must have
	// been finalized with CloseEntry.
	WriteHeader(e *Entry) error

	// Write appends content bytes to the current entry.
	io.Writer

	// CloseEntry finalizes the current entry.
	CloseEntry() error

	// Flush forces buffered bytes to the underlying byte destination.
	Flush() error

	// Close finalizes the archive. It does not close the underlying byte
	// destination.
	io.Closer
}

// EntryReader is an entry-oriented archive source. Next advances to the next
// entry and returns io.EOF when the stream is exhausted; Read returns the
// content of the current entry. The reader is not safely shareable across
// concurrent readers.
type EntryReader interface {
	// Next advances to the next entry. It returns io.EOF at the end of the
	// stream.
	Next() (*Entry, error)

	// Read reads the content of the current entry.
	io.Reader

	// Close releases resources held by the reader. It does not close the
	// underlying byte origin.
	io.Closer
}

// StreamFactory produces entry writers and readers for archive streams. It
// holds no mutable session state and is safe to share across independent
// calls, as long as each call uses its own writer/reader instance.
type StreamFactory interface {
	// NewWriter opens an entry writer for the named format over w. It fails
	// with an error wrapping [ErrNoSuchFormat] if the format is unknown or
	// cannot be written.
	NewWriter(format string, w io.Writer) (EntryWriter, error)

	// NewReader opens an entry reader over r, detecting the container format
	// from the stream header. It fails with an error wrapping
	// [ErrUnknownArchive] if the header matches no known format.
	NewReader(r io.Reader) (EntryReader, error)

	// NewReaderFormat opens an entry reader over r for the named format,
	// bypassing header detection. Needed for formats without magic bytes
	// (e.g. tar.br).
	NewReaderFormat(format string, r io.Reader) (EntryReader, error)
}

// DefaultFactory is a [StreamFactory] over the built-in format registry.
type DefaultFactory struct {
	cfg *Config
}

// NewDefaultFactory creates a [DefaultFactory] with default stream handling.
func NewDefaultFactory() *DefaultFactory {
	return &DefaultFactory{}
}

// setConfig wires the config that stream handling (caching, input limits)
// is taken from. Called by the Archiver before use.
func (f *DefaultFactory) setConfig(cfg *Config) {
	f.cfg = cfg
}

// config returns the wired config, or a fresh default one.
func (f *DefaultFactory) config() *Config {
	if f.cfg == nil {
		return NewConfig()
	}
	return f.cfg
}

// NewWriter opens an entry writer for the named format over w.
func (f *DefaultFactory) NewWriter(format string, w io.Writer) (EntryWriter, error) {
	af, ok := availableFormats[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchFormat, format)
	}
	if af.NewWriter == nil {
		return nil, fmt.Errorf("%w: %q is read-only", ErrNoSuchFormat, format)
	}
	return af.NewWriter(w)
}

// NewReader opens an entry reader over r, detecting the container format
// from the stream header.
func (f *DefaultFactory) NewReader(r io.Reader) (EntryReader, error) {
	hr, err := newHeaderReader(r, maxHeaderLength)
	if err != nil {
		return nil, fmt.Errorf("cannot read archive header: %w", err)
	}

	// check formats in sorted name order, so names sharing magic bytes
	// (tar.gz, tgz) detect deterministically
	header := hr.PeekHeader()
	for _, name := range Formats() {
		af := availableFormats[name]
		if af.HeaderCheck == nil || af.NewReader == nil {
			continue
		}
		if af.HeaderCheck(header) {
			f.config().Logger().Debug("detected archive format", "format", name)
			return af.NewReader(f.config(), hr)
		}
	}

	return nil, ErrUnknownArchive
}

// NewReaderFormat opens an entry reader over r for the named format.
func (f *DefaultFactory) NewReaderFormat(format string, r io.Reader) (EntryReader, error) {
	af, ok := availableFormats[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchFormat, format)
	}
	if af.NewReader == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchFormat, format)
	}
	return af.NewReader(f.config(), r)
}
