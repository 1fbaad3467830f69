// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"
)

// fileExtensionZIP is the format name and file extension for zip archives.
const fileExtensionZIP = "zip"

// magicBytesZIP contains the magic bytes for a zip archive.
// reference: https://golang.org/pkg/archive/zip/
var magicBytesZIP = [][]byte{
	{0x50, 0x4B, 0x03, 0x04},
}

// isZip checks if the header matches the magic bytes for zip archives.
func isZip(header []byte) bool {
	return matchesMagicBytes(header, 0, magicBytesZIP)
}

// zipEntryWriter is an [EntryWriter] over a zip stream.
type zipEntryWriter struct {
	zw   *zip.Writer
	curr io.Writer
}

// newZipEntryWriter opens an [EntryWriter] that writes a zip archive to w.
func newZipEntryWriter(w io.Writer) (EntryWriter, error) {
	return &zipEntryWriter{zw: zip.NewWriter(w)}, nil
}

// WriteHeader begins a new zip entry. Directory entries are written with a
// trailing slash, following zip convention.
func (z *zipEntryWriter) WriteHeader(e *Entry) error {
	hdr := &zip.FileHeader{
		Name:     e.Name,
		Method:   zip.Deflate,
		Modified: e.ModTime,
	}
	hdr.SetMode(e.Mode)
	if e.IsDir {
		if !strings.HasSuffix(hdr.Name, "/") {
			hdr.Name += "/"
		}
		hdr.Method = zip.Store
	}

	fw, err := z.zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	z.curr = fw
	return nil
}

// Write appends content bytes to the current entry.
func (z *zipEntryWriter) Write(p []byte) (int, error) {
	if z.curr == nil {
		return 0, fmt.Errorf("no open zip entry")
	}
	return z.curr.Write(p)
}

// CloseEntry finalizes the current entry. The zip writer finalizes an entry
// on the next CreateHeader or Close, so this only drops the content writer.
func (z *zipEntryWriter) CloseEntry() error {
	z.curr = nil
	return nil
}

// Flush forces buffered bytes to the underlying byte destination.
func (z *zipEntryWriter) Flush() error {
	return z.zw.Flush()
}

// Close writes the zip central directory. It does not close the underlying
// byte destination.
func (z *zipEntryWriter) Close() error {
	return z.zw.Close()
}

// zipEntryReader is an [EntryReader] over the central directory of a zip
// archive.
type zipEntryReader struct {
	zr      *zip.Reader
	fp      int
	curr    io.ReadCloser
	cleanup func()
}

// newZipEntryReader opens an [EntryReader] that reads a zip archive from r.
// Pure streams are cached first, since zip needs random access.
func newZipEntryReader(cfg *Config, r io.Reader) (EntryReader, error) {
	sra, cleanup, err := readerToReaderAtSeeker(cfg, r)
	if err != nil {
		return nil, fmt.Errorf("cannot convert reader to readerAt and seeker: %w", err)
	}

	size, err := sra.Seek(0, io.SeekEnd)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("cannot seek to end of reader: %w", err)
	}

	zr, err := zip.NewReader(sra, size)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("cannot create zip reader: %w", err)
	}
	return &zipEntryReader{zr: zr, cleanup: cleanup}, nil
}

// Next advances to the next entry. It returns io.EOF at the end of the
// central directory.
func (z *zipEntryReader) Next() (*Entry, error) {
	if z.curr != nil {
		z.curr.Close()
		z.curr = nil
	}

	if z.fp >= len(z.zr.File) {
		return nil, io.EOF
	}
	zf := z.zr.File[z.fp]
	z.fp++

	isDir := zf.FileHeader.Mode().IsDir() || strings.HasSuffix(zf.Name, "/")
	if !isDir {
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("cannot open zip entry %q: %w", zf.Name, err)
		}
		z.curr = rc
	}

	return &Entry{
		Name:    zf.Name,
		Size:    int64(zf.FileHeader.UncompressedSize64),
		Mode:    zf.FileHeader.Mode(),
		ModTime: zf.FileHeader.Modified,
		IsDir:   isDir,
	}, nil
}

// Read reads the content of the current entry.
func (z *zipEntryReader) Read(p []byte) (int, error) {
	if z.curr == nil {
		return 0, io.EOF
	}
	return z.curr.Read(p)
}

// Close releases the current entry reader and the stream cache.
func (z *zipEntryReader) Close() error {
	if z.curr != nil {
		z.curr.Close()
		z.curr = nil
	}
	if z.cleanup != nil {
		z.cleanup()
	}
	return nil
}
