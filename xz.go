// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"io"

	"github.com/ulikunitz/xz"
)

// fileExtensionTarXz is the format name for xz compressed tar archives.
const fileExtensionTarXz = "tar.xz"

// magicBytesXz are the magic bytes for xz compressed files.
var magicBytesXz = [][]byte{
	{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00},
}

// isXz checks if the header matches the xz magic bytes.
func isXz(header []byte) bool {
	return matchesMagicBytes(header, 0, magicBytesXz)
}

// newTarXzEntryWriter opens an [EntryWriter] that writes an xz compressed
// tar archive to w.
func newTarXzEntryWriter(w io.Writer) (EntryWriter, error) {
	return newCompressedTarEntryWriter(w, func(w io.Writer) (io.WriteCloser, error) {
		return xz.NewWriter(w)
	})
}

// newTarXzEntryReader opens an [EntryReader] that reads an xz compressed tar
// archive from r.
func newTarXzEntryReader(cfg *Config, r io.Reader) (EntryReader, error) {
	return newCompressedTarEntryReader(cfg, r, func(r io.Reader) (io.Reader, error) {
		return xz.NewReader(r)
	})
}
