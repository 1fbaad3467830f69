// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"compress/gzip"
	"io"
)

const (
	// fileExtensionTarGZip is the format name for gzip compressed tar
	// archives.
	fileExtensionTarGZip = "tar.gz"

	// fileExtensionTGZ is the short format name for gzip compressed tar
	// archives.
	fileExtensionTGZ = "tgz"
)

// magicBytesGZip are the magic bytes for gzip compressed files.
var magicBytesGZip = [][]byte{
	{0x1f, 0x8b},
}

// isGZip checks if the header matches the magic bytes for gzip compressed
// files.
func isGZip(header []byte) bool {
	return matchesMagicBytes(header, 0, magicBytesGZip)
}

// newTarGZipEntryWriter opens an [EntryWriter] that writes a gzip compressed
// tar archive to w.
func newTarGZipEntryWriter(w io.Writer) (EntryWriter, error) {
	return newCompressedTarEntryWriter(w, func(w io.Writer) (io.WriteCloser, error) {
		return gzip.NewWriter(w), nil
	})
}

// newTarGZipEntryReader opens an [EntryReader] that reads a gzip compressed
// tar archive from r.
func newTarGZipEntryReader(cfg *Config, r io.Reader) (EntryReader, error) {
	return newCompressedTarEntryReader(cfg, r, func(r io.Reader) (io.Reader, error) {
		return gzip.NewReader(r)
	})
}
