// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"io"

	"github.com/dsnet/compress/bzip2"
)

// fileExtensionTarBzip2 is the format name for bzip2 compressed tar archives.
const fileExtensionTarBzip2 = "tar.bz2"

// magicBytesBzip2 are the magic bytes for bzip2 compressed files.
var magicBytesBzip2 = [][]byte{
	[]byte("BZh1"),
	[]byte("BZh2"),
	[]byte("BZh3"),
	[]byte("BZh4"),
	[]byte("BZh5"),
	[]byte("BZh6"),
	[]byte("BZh7"),
	[]byte("BZh8"),
	[]byte("BZh9"),
}

// isBzip2 checks if the header matches the bzip2 magic bytes.
func isBzip2(header []byte) bool {
	return matchesMagicBytes(header, 0, magicBytesBzip2)
}

// newTarBzip2EntryWriter opens an [EntryWriter] that writes a bzip2
// compressed tar archive to w. The standard library only reads bzip2, so the
// dsnet implementation provides the write side.
func newTarBzip2EntryWriter(w io.Writer) (EntryWriter, error) {
	return newCompressedTarEntryWriter(w, func(w io.Writer) (io.WriteCloser, error) {
		return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
	})
}

// newTarBzip2EntryReader opens an [EntryReader] that reads a bzip2
// compressed tar archive from r.
func newTarBzip2EntryReader(cfg *Config, r io.Reader) (EntryReader, error) {
	return newCompressedTarEntryReader(cfg, r, func(r io.Reader) (io.Reader, error) {
		return bzip2.NewReader(r, nil)
	})
}
