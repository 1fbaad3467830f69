// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

// fileExtensionTarLZ4 is the format name for LZ4 compressed tar archives.
const fileExtensionTarLZ4 = "tar.lz4"

// magicBytesLZ4 are the magic bytes for LZ4 compressed files.
var magicBytesLZ4 = [][]byte{
	{0x04, 0x22, 0x4D, 0x18},
}

// isLZ4 checks if the header matches the LZ4 magic bytes.
func isLZ4(header []byte) bool {
	return matchesMagicBytes(header, 0, magicBytesLZ4)
}

// newTarLZ4EntryWriter opens an [EntryWriter] that writes an LZ4 compressed
// tar archive to w.
func newTarLZ4EntryWriter(w io.Writer) (EntryWriter, error) {
	return newCompressedTarEntryWriter(w, func(w io.Writer) (io.WriteCloser, error) {
		return lz4.NewWriter(w), nil
	})
}

// newTarLZ4EntryReader opens an [EntryReader] that reads an LZ4 compressed
// tar archive from r.
func newTarLZ4EntryReader(cfg *Config, r io.Reader) (EntryReader, error) {
	return newCompressedTarEntryReader(cfg, r, func(r io.Reader) (io.Reader, error) {
		return lz4.NewReader(r), nil
	})
}
