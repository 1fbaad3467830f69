// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"io"

	"github.com/golang/snappy"
)

// fileExtensionTarSnappy is the format name for snappy compressed tar
// archives.
const fileExtensionTarSnappy = "tar.sz"

// magicBytesSnappy are the magic bytes of the snappy framing format.
var magicBytesSnappy = [][]byte{
	append([]byte{0xff, 0x06, 0x00, 0x00}, []byte("sNaPpY")...),
}

// isSnappy checks if the header matches the snappy magic bytes.
func isSnappy(header []byte) bool {
	return matchesMagicBytes(header, 0, magicBytesSnappy)
}

// newTarSnappyEntryWriter opens an [EntryWriter] that writes a snappy
// compressed tar archive to w.
func newTarSnappyEntryWriter(w io.Writer) (EntryWriter, error) {
	return newCompressedTarEntryWriter(w, func(w io.Writer) (io.WriteCloser, error) {
		return snappy.NewBufferedWriter(w), nil
	})
}

// newTarSnappyEntryReader opens an [EntryReader] that reads a snappy
// compressed tar archive from r.
func newTarSnappyEntryReader(cfg *Config, r io.Reader) (EntryReader, error) {
	return newCompressedTarEntryReader(cfg, r, func(r io.Reader) (io.Reader, error) {
		return snappy.NewReader(r), nil
	})
}
