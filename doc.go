// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

// Package archive provides a uniform facade for creating and extracting
// archive files, independent of the container format in use.
//
// An [Archiver] is addressed by a format name (e.g. "tar", "zip", "tar.gz")
// and is reusable across many Create and Extract calls. Create walks a set of
// source files and directories and streams them into a new archive, preserving
// relative directory structure. Extract reads an archive stream entry by entry
// and materializes files and directories below a destination root.
//
// The byte-level container formats are owned by an [EntryWriter]/[EntryReader]
// pair obtained from a [StreamFactory]; the built-in [DefaultFactory] covers
// tar, zip, compressed tar variants, and read-only 7z and rar support.
//
// Configuration is done using [Config] in an option pattern style. Telemetry
// data is captured during creation and extraction and handed to an optional
// hook, see the telemetry package.
package archive
