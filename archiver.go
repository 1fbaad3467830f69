// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import "strings"

// Archiver is a handle for one archive format, addressed by name (e.g.
// "tar", "zip", "tar.gz"). The name and the derived file extension are the
// only state the handle carries, so a single Archiver is safe to reuse
// across independent Create and Extract calls.
//
// The format name is not validated at construction time; an unknown name
// surfaces from Create once the entry writer is opened.
type Archiver struct {
	name      string
	extension string

	cfg *Config
}

// New creates an [Archiver] for the named format. cfg may be nil, in which
// case the default configuration is used.
func New(format string, cfg *Config) *Archiver {
	if cfg == nil {
		cfg = NewConfig()
	}

	// wire the default factory to the config it should take stream handling
	// settings from
	if df, ok := cfg.StreamFactory().(*DefaultFactory); ok {
		df.setConfig(cfg)
	}

	name := strings.ToLower(format)
	return &Archiver{
		name:      name,
		extension: "." + name,
		cfg:       cfg,
	}
}

// Name returns the format name of the archiver.
func (a *Archiver) Name() string {
	return a.name
}

// Extension returns the default file extension, which is equal to
// "." + [Archiver.Name].
func (a *Archiver) Extension() string {
	return a.extension
}

// ensureExtension appends the archiver's file extension to name unless name
// already ends with it. The suffix match is exact and case-sensitive.
func (a *Archiver) ensureExtension(name string) string {
	if !strings.HasSuffix(name, a.extension) {
		name += a.extension
	}
	return name
}
