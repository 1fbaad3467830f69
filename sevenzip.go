// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"fmt"
	"io"

	"github.com/bodgit/sevenzip"
)

// fileExtension7zip is the format name and file extension for 7zip archives.
// 7zip archives are read-only, there is no entry writer for them.
const fileExtension7zip = "7z"

// magicBytes7zip are the magic bytes for 7zip archives.
var magicBytes7zip = [][]byte{
	{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C},
}

// is7zip checks if the header matches the magic bytes for 7zip archives.
func is7zip(header []byte) bool {
	return matchesMagicBytes(header, 0, magicBytes7zip)
}

// sevenZipEntryReader is an [EntryReader] over the file index of a 7zip
// archive.
type sevenZipEntryReader struct {
	r       *sevenzip.Reader
	fp      int
	curr    io.ReadCloser
	cleanup func()
}

// newSevenZipEntryReader opens an [EntryReader] that reads a 7zip archive
// from r. Pure streams are cached first, since 7zip needs random access.
func newSevenZipEntryReader(cfg *Config, r io.Reader) (EntryReader, error) {
	sra, cleanup, err := readerToReaderAtSeeker(cfg, r)
	if err != nil {
		return nil, fmt.Errorf("cannot convert reader to readerAt and seeker: %w", err)
	}

	size, err := sra.Seek(0, io.SeekEnd)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("cannot seek to end of reader: %w", err)
	}

	sz, err := sevenzip.NewReader(sra, size)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("cannot create 7zip reader: %w", err)
	}
	return &sevenZipEntryReader{r: sz, cleanup: cleanup}, nil
}

// Next advances to the next entry. It returns io.EOF at the end of the file
// index.
func (s *sevenZipEntryReader) Next() (*Entry, error) {
	if s.curr != nil {
		s.curr.Close()
		s.curr = nil
	}

	if s.fp >= len(s.r.File) {
		return nil, io.EOF
	}
	f := s.r.File[s.fp]
	s.fp++

	fi := f.FileInfo()
	if !fi.IsDir() {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("cannot open 7zip entry %q: %w", f.Name, err)
		}
		s.curr = rc
	}

	return &Entry{
		Name:    f.Name,
		Size:    fi.Size(),
		Mode:    fi.Mode(),
		ModTime: fi.ModTime(),
		IsDir:   fi.IsDir(),
	}, nil
}

// Read reads the content of the current entry.
func (s *sevenZipEntryReader) Read(p []byte) (int, error) {
	if s.curr == nil {
		return 0, io.EOF
	}
	return s.curr.Read(p)
}

// Close releases the current entry reader and the stream cache.
func (s *sevenZipEntryReader) Close() error {
	if s.curr != nil {
		s.curr.Close()
		s.curr = nil
	}
	if s.cleanup != nil {
		s.cleanup()
	}
	return nil
}
