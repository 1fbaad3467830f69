// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"archive/tar"
	"io"
	"io/fs"
	"strings"
)

// fileExtensionTar is the format name and file extension for tar archives.
const fileExtensionTar = "tar"

// offsetTar is the offset of the tar magic bytes in the header.
const offsetTar = 257

// magicBytesTar are the magic bytes for tar archives.
var magicBytesTar = [][]byte{
	{0x75, 0x73, 0x74, 0x61, 0x72, 0x00, 0x30, 0x30},
	{0x75, 0x73, 0x74, 0x61, 0x72, 0x00, 0x20, 0x00},
	{0x75, 0x73, 0x74, 0x61, 0x72, 0x20, 0x20, 0x00},
}

// isTar checks if the header matches the magic bytes for tar archives.
func isTar(header []byte) bool {
	return matchesMagicBytes(header, offsetTar, magicBytesTar)
}

// tarEntryWriter is an [EntryWriter] over a tar stream.
type tarEntryWriter struct {
	tw *tar.Writer
}

// newTarEntryWriter opens an [EntryWriter] that writes a tar archive to w.
func newTarEntryWriter(w io.Writer) (EntryWriter, error) {
	return &tarEntryWriter{tw: tar.NewWriter(w)}, nil
}

// WriteHeader begins a new tar entry. Directory entries are written with a
// trailing slash, following tar convention.
func (t *tarEntryWriter) WriteHeader(e *Entry) error {
	hdr := &tar.Header{
		Name:     e.Name,
		Mode:     int64(e.Mode.Perm()),
		Size:     e.Size,
		ModTime:  e.ModTime,
		Typeflag: tar.TypeReg,
	}
	if e.IsDir {
		if !strings.HasSuffix(hdr.Name, "/") {
			hdr.Name += "/"
		}
		hdr.Typeflag = tar.TypeDir
		hdr.Size = 0
	}
	return t.tw.WriteHeader(hdr)
}

// Write appends content bytes to the current entry.
func (t *tarEntryWriter) Write(p []byte) (int, error) {
	return t.tw.Write(p)
}

// CloseEntry finalizes the current entry by flushing its block padding.
func (t *tarEntryWriter) CloseEntry() error {
	return t.tw.Flush()
}

// Flush forces buffered bytes to the underlying byte destination.
func (t *tarEntryWriter) Flush() error {
	return t.tw.Flush()
}

// Close writes the tar trailer. It does not close the underlying byte
// destination.
func (t *tarEntryWriter) Close() error {
	return t.tw.Close()
}

// tarEntryReader is an [EntryReader] over a tar stream.
type tarEntryReader struct {
	tr *tar.Reader
}

// newTarEntryReader opens an [EntryReader] that reads a tar archive from r.
func newTarEntryReader(_ *Config, r io.Reader) (EntryReader, error) {
	return &tarEntryReader{tr: tar.NewReader(r)}, nil
}

// Next advances to the next entry. It returns io.EOF at the end of the
// stream. Pax global headers are skipped.
func (t *tarEntryReader) Next() (*Entry, error) {
	for {
		hdr, err := t.tr.Next()
		if err != nil {
			return nil, err
		}
		if hdr.Typeflag == tar.TypeXGlobalHeader {
			continue
		}

		// FileInfo reports hard links with a plain regular mode and zero
		// size; tag them so they are not materialized as empty files
		mode := hdr.FileInfo().Mode()
		if hdr.Typeflag == tar.TypeLink {
			mode |= fs.ModeIrregular
		}

		return &Entry{
			Name:    hdr.Name,
			Size:    hdr.Size,
			Mode:    mode,
			ModTime: hdr.ModTime,
			IsDir:   hdr.Typeflag == tar.TypeDir,
		}, nil
	}
}

// Read reads the content of the current entry.
func (t *tarEntryReader) Read(p []byte) (int, error) {
	return t.tr.Read(p)
}

// Close releases resources held by the reader.
func (t *tarEntryReader) Close() error {
	return nil
}
