// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"bytes"
	"io"
	"sort"
)

// newWriterFunc opens an entry writer over the given byte destination.
type newWriterFunc func(io.Writer) (EntryWriter, error)

// newReaderFunc opens an entry reader over the given byte origin.
type newReaderFunc func(*Config, io.Reader) (EntryReader, error)

// headerCheck is a function that checks if the given header matches the
// expected magic bytes.
type headerCheck func([]byte) bool

type availableFormat struct {
	NewWriter   newWriterFunc // nil for read-only formats
	NewReader   newReaderFunc
	HeaderCheck headerCheck // nil for formats without magic bytes
	MagicBytes  [][]byte
	Offset      int
}

// availableFormats is the collection of supported formats with the required
// magic bytes and potential offset. Keys double as the format names an
// [Archiver] can be constructed for; the default file extension of a format
// is "." + name.
var availableFormats = map[string]availableFormat{
	fileExtensionTar: {
		NewWriter:   newTarEntryWriter,
		NewReader:   newTarEntryReader,
		HeaderCheck: isTar,
		MagicBytes:  magicBytesTar,
		Offset:      offsetTar,
	},
	fileExtensionZIP: {
		NewWriter:   newZipEntryWriter,
		NewReader:   newZipEntryReader,
		HeaderCheck: isZip,
		MagicBytes:  magicBytesZIP,
	},
	fileExtensionTarGZip: {
		NewWriter:   newTarGZipEntryWriter,
		NewReader:   newTarGZipEntryReader,
		HeaderCheck: isGZip,
		MagicBytes:  magicBytesGZip,
	},
	fileExtensionTGZ: {
		NewWriter:   newTarGZipEntryWriter,
		NewReader:   newTarGZipEntryReader,
		HeaderCheck: isGZip,
		MagicBytes:  magicBytesGZip,
	},
	fileExtensionTarZstd: {
		NewWriter:   newTarZstdEntryWriter,
		NewReader:   newTarZstdEntryReader,
		HeaderCheck: isZstd,
		MagicBytes:  magicBytesZstd,
	},
	fileExtensionTarLZ4: {
		NewWriter:   newTarLZ4EntryWriter,
		NewReader:   newTarLZ4EntryReader,
		HeaderCheck: isLZ4,
		MagicBytes:  magicBytesLZ4,
	},
	fileExtensionTarXz: {
		NewWriter:   newTarXzEntryWriter,
		NewReader:   newTarXzEntryReader,
		HeaderCheck: isXz,
		MagicBytes:  magicBytesXz,
	},
	fileExtensionTarBzip2: {
		NewWriter:   newTarBzip2EntryWriter,
		NewReader:   newTarBzip2EntryReader,
		HeaderCheck: isBzip2,
		MagicBytes:  magicBytesBzip2,
	},
	fileExtensionTarBrotli: {
		NewWriter: newTarBrotliEntryWriter,
		NewReader: newTarBrotliEntryReader,
		// brotli has no magic bytes, readable via NewReaderFormat only
	},
	fileExtensionTarSnappy: {
		NewWriter:   newTarSnappyEntryWriter,
		NewReader:   newTarSnappyEntryReader,
		HeaderCheck: isSnappy,
		MagicBytes:  magicBytesSnappy,
	},
	fileExtension7zip: {
		NewReader:   newSevenZipEntryReader,
		HeaderCheck: is7zip,
		MagicBytes:  magicBytes7zip,
	},
	fileExtensionRar: {
		NewReader:   newRarEntryReader,
		HeaderCheck: isRar,
		MagicBytes:  magicBytesRar,
	},
}

// maxHeaderLength is the maximum header length over all formats
var maxHeaderLength int

// init calculates the maximum header length
func init() {
	for _, af := range availableFormats {
		needs := af.Offset
		for _, mb := range af.MagicBytes {
			if len(mb)+af.Offset > needs {
				needs = len(mb) + af.Offset
			}
		}
		if needs > maxHeaderLength {
			maxHeaderLength = needs
		}
	}
}

// Formats returns the names of all supported formats in sorted order.
func Formats() []string {
	names := make([]string, 0, len(availableFormats))
	for name := range availableFormats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// sniffless reports whether the named format is readable but carries no
// magic bytes, so header detection can never find it.
func sniffless(name string) bool {
	af, ok := availableFormats[name]
	return ok && af.HeaderCheck == nil && af.NewReader != nil
}

// matchesMagicBytes checks if data contains one of the magicBytes sequences
// at the given offset.
func matchesMagicBytes(data []byte, offset int, magicBytes [][]byte) bool {
	// check all possible magic bytes until match is found
	for _, mb := range magicBytes {
		// check if header is long enough
		if offset+len(mb) > len(data) {
			continue
		}

		// check for byte match
		if bytes.Equal(mb, data[offset:offset+len(mb)]) {
			return true
		}
	}

	// no match found
	return false
}
