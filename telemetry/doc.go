// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

// Package telemetry provides a way to capture telemetry data during archive
// creation and extraction.
//
// The package provides a struct type [Data] that holds all telemetry data of
// a single call, and a [TelemetryHook] function type that consumes it once
// the call has finished.
package telemetry
