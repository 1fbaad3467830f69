// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package telemetry

import (
	"context"
	"encoding/json"
	"time"
)

// Data holds all telemetry data of a single create or extract call.
type Data struct {
	// ArchiveType is the format name of the archive
	ArchiveType string

	// Duration is the time the call took
	Duration time.Duration

	// Errors is the number of errors during the call
	Errors int64

	// Files is the number of packaged or extracted regular files
	Files int64

	// Dirs is the number of packaged or extracted directories
	Dirs int64

	// Bytes is the number of content bytes written
	Bytes int64

	// InputSize is the size of the archive input on extraction
	InputSize int64

	// LastError is the last error during the call
	LastError error

	// PatternMismatches is the number of entries skipped by pattern
	PatternMismatches int64

	// UnsupportedFiles is the number of skipped unsupported entries
	UnsupportedFiles int64

	// LastUnsupportedFile is the last skipped unsupported entry
	LastUnsupportedFile string
}

// String returns a string representation of [Data].
func (d Data) String() string {
	b, _ := json.Marshal(d)
	return string(b)
}

// MarshalJSON implements the [encoding/json.Marshaler] interface.
func (d Data) MarshalJSON() ([]byte, error) {
	var lastError string
	if d.LastError != nil {
		lastError = d.LastError.Error()
	}

	type Alias Data
	return json.Marshal(&struct {
		LastError string
		Alias
	}{
		LastError: lastError,
		Alias:     (Alias)(d),
	})
}

// TelemetryHook is a function pointer that consumes telemetry data after a
// finished call. Implementations must not block.
type TelemetryHook func(context.Context, *Data)
