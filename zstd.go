// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// fileExtensionTarZstd is the format name for zstandard compressed tar
// archives.
const fileExtensionTarZstd = "tar.zst"

// magicBytesZstd are the magic bytes for zstandard compressed files.
// reference: https://www.rfc-editor.org/rfc/rfc8878.html
var magicBytesZstd = [][]byte{
	{0x28, 0xb5, 0x2f, 0xfd},
}

// isZstd checks if the header matches the zstandard magic bytes.
func isZstd(header []byte) bool {
	return matchesMagicBytes(header, 0, magicBytesZstd)
}

// newTarZstdEntryWriter opens an [EntryWriter] that writes a zstandard
// compressed tar archive to w.
func newTarZstdEntryWriter(w io.Writer) (EntryWriter, error) {
	return newCompressedTarEntryWriter(w, func(w io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(w)
	})
}

// newTarZstdEntryReader opens an [EntryReader] that reads a zstandard
// compressed tar archive from r.
func newTarZstdEntryReader(cfg *Config, r io.Reader) (EntryReader, error) {
	return newCompressedTarEntryReader(cfg, r, func(r io.Reader) (io.Reader, error) {
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	})
}
