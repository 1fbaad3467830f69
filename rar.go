// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"fmt"
	"io"

	"github.com/nwaples/rardecode"
)

// fileExtensionRar is the format name and file extension for rar archives.
// Rar archives are read-only, there is no entry writer for them.
const fileExtensionRar = "rar"

// magicBytesRar are the magic bytes for rar archives.
var magicBytesRar = [][]byte{
	{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x00},       // Rar 1.5
	{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x01, 0x00}, // Rar 5.0
}

// isRar checks if the header matches the magic bytes for rar archives.
func isRar(header []byte) bool {
	return matchesMagicBytes(header, 0, magicBytesRar)
}

// rarEntryReader is an [EntryReader] over a rar stream.
type rarEntryReader struct {
	r *rardecode.Reader
}

// newRarEntryReader opens an [EntryReader] that reads a rar archive from r.
func newRarEntryReader(_ *Config, r io.Reader) (EntryReader, error) {
	rr, err := rardecode.NewReader(r, "")
	if err != nil {
		return nil, fmt.Errorf("cannot create rar decoder: %w", err)
	}
	return &rarEntryReader{r: rr}, nil
}

// Next advances to the next entry. It returns io.EOF at the end of the
// stream.
func (r *rarEntryReader) Next() (*Entry, error) {
	fh, err := r.r.Next()
	if err != nil {
		return nil, err
	}
	return &Entry{
		Name:    fh.Name,
		Size:    fh.UnPackedSize,
		Mode:    fh.Mode(),
		ModTime: fh.ModificationTime,
		IsDir:   fh.IsDir,
	}, nil
}

// Read reads the content of the current entry.
func (r *rarEntryReader) Read(p []byte) (int, error) {
	return r.r.Read(p)
}

// Close releases resources held by the reader.
func (r *rarEntryReader) Close() error {
	return nil
}
