// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"errors"
	"io"
)

// compressFunc wraps w with a stream compressor.
type compressFunc func(io.Writer) (io.WriteCloser, error)

// decompressFunc wraps r with a stream decompressor.
type decompressFunc func(io.Reader) (io.Reader, error)

// compressedTarEntryWriter is an [EntryWriter] that writes a tar archive
// through a stream compressor.
type compressedTarEntryWriter struct {
	EntryWriter
	cw io.WriteCloser
}

// newCompressedTarEntryWriter opens a tar entry writer whose output runs
// through the compressor built by compress.
func newCompressedTarEntryWriter(w io.Writer, compress compressFunc) (EntryWriter, error) {
	cw, err := compress(w)
	if err != nil {
		return nil, err
	}
	tw, err := newTarEntryWriter(cw)
	if err != nil {
		cw.Close()
		return nil, err
	}
	return &compressedTarEntryWriter{EntryWriter: tw, cw: cw}, nil
}

// Flush flushes the tar layer and, if supported, the compressor.
func (c *compressedTarEntryWriter) Flush() error {
	if err := c.EntryWriter.Flush(); err != nil {
		return err
	}
	if f, ok := c.cw.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close finalizes the tar trailer and the compressor stream. It does not
// close the underlying byte destination.
func (c *compressedTarEntryWriter) Close() error {
	return errors.Join(c.EntryWriter.Close(), c.cw.Close())
}

// compressedTarEntryReader is an [EntryReader] that reads a tar archive
// through a stream decompressor.
type compressedTarEntryReader struct {
	EntryReader
	dr io.Reader
}

// newCompressedTarEntryReader opens a tar entry reader fed by the
// decompressor built by decompress.
func newCompressedTarEntryReader(cfg *Config, r io.Reader, decompress decompressFunc) (EntryReader, error) {
	dr, err := decompress(r)
	if err != nil {
		return nil, err
	}
	tr, err := newTarEntryReader(cfg, dr)
	if err != nil {
		return nil, err
	}
	return &compressedTarEntryReader{EntryReader: tr, dr: dr}, nil
}

// Close releases the decompressor, if it holds resources.
func (c *compressedTarEntryReader) Close() error {
	err := c.EntryReader.Close()
	switch d := c.dr.(type) {
	case io.Closer:
		return errors.Join(err, d.Close())
	case interface{ Close() }:
		d.Close()
	}
	return err
}
