// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"io"

	"github.com/andybalholm/brotli"
)

// fileExtensionTarBrotli is the format name for brotli compressed tar
// archives. Brotli has no magic bytes, so these archives cannot be detected
// by header sniffing and are readable through NewReaderFormat only.
const fileExtensionTarBrotli = "tar.br"

// newTarBrotliEntryWriter opens an [EntryWriter] that writes a brotli
// compressed tar archive to w.
func newTarBrotliEntryWriter(w io.Writer) (EntryWriter, error) {
	return newCompressedTarEntryWriter(w, func(w io.Writer) (io.WriteCloser, error) {
		return brotli.NewWriter(w), nil
	})
}

// newTarBrotliEntryReader opens an [EntryReader] that reads a brotli
// compressed tar archive from r.
func newTarBrotliEntryReader(cfg *Config, r io.Reader) (EntryReader, error) {
	return newCompressedTarEntryReader(cfg, r, func(r io.Reader) (io.Reader, error) {
		return brotli.NewReader(r), nil
	})
}
