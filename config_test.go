// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive_test

import (
	"log/slog"
	"testing"

	"github.com/archivekit/go-archive"
)

func TestConfigDefaults(t *testing.T) {
	cfg := archive.NewConfig()

	if !cfg.Overwrite() {
		t.Error("Overwrite() = false, want true")
	}
	if cfg.CreateDestination() {
		t.Error("CreateDestination() = true, want false")
	}
	if cfg.CacheInMemory() {
		t.Error("CacheInMemory() = true, want false")
	}
	if cfg.PreserveFileTimes() {
		t.Error("PreserveFileTimes() = true, want false")
	}
	if got := cfg.MaxObjects(); got != 100000 {
		t.Errorf("MaxObjects() = %d, want 100000", got)
	}
	if got := cfg.MaxExtractionSize(); got != 1<<30 {
		t.Errorf("MaxExtractionSize() = %d, want %d", got, 1<<30)
	}
	if got := cfg.MaxInputSize(); got != 1<<30 {
		t.Errorf("MaxInputSize() = %d, want %d", got, 1<<30)
	}
	if got := cfg.DefaultDirPermission(); got != 0755 {
		t.Errorf("DefaultDirPermission() = %o, want 0755", got)
	}
	if cfg.Logger() == nil {
		t.Error("Logger() = nil, want discarding logger")
	}
	if cfg.StreamFactory() == nil {
		t.Error("StreamFactory() = nil, want default factory")
	}
	if cfg.Target() == nil {
		t.Error("Target() = nil, want disk target")
	}
	if cfg.TelemetryHook() == nil {
		t.Error("TelemetryHook() = nil, want noop hook")
	}
}

func TestConfigOptions(t *testing.T) {
	logger := slog.Default()
	mem := archive.NewTargetMemory()

	cfg := archive.NewConfig(
		archive.WithCacheInMemory(true),
		archive.WithContinueOnUnsupportedFiles(true),
		archive.WithCreateDestination(true),
		archive.WithDefaultDirPermission(0700),
		archive.WithLogger(logger),
		archive.WithMaxExtractionSize(512),
		archive.WithMaxInputSize(1024),
		archive.WithMaxObjects(2),
		archive.WithOverwrite(false),
		archive.WithPatterns("*.txt"),
		archive.WithPreserveFileTimes(true),
		archive.WithTarget(mem),
	)

	if !cfg.CacheInMemory() {
		t.Error("CacheInMemory() = false, want true")
	}
	if !cfg.ContinueOnUnsupportedFiles() {
		t.Error("ContinueOnUnsupportedFiles() = false, want true")
	}
	if !cfg.CreateDestination() {
		t.Error("CreateDestination() = false, want true")
	}
	if got := cfg.DefaultDirPermission(); got != 0700 {
		t.Errorf("DefaultDirPermission() = %o, want 0700", got)
	}
	if cfg.Logger() != logger {
		t.Error("Logger() does not return configured logger")
	}
	if got := cfg.MaxExtractionSize(); got != 512 {
		t.Errorf("MaxExtractionSize() = %d, want 512", got)
	}
	if got := cfg.MaxInputSize(); got != 1024 {
		t.Errorf("MaxInputSize() = %d, want 1024", got)
	}
	if got := cfg.MaxObjects(); got != 2 {
		t.Errorf("MaxObjects() = %d, want 2", got)
	}
	if cfg.Overwrite() {
		t.Error("Overwrite() = true, want false")
	}
	if got := cfg.Patterns(); len(got) != 1 || got[0] != "*.txt" {
		t.Errorf("Patterns() = %v, want [*.txt]", got)
	}
	if !cfg.PreserveFileTimes() {
		t.Error("PreserveFileTimes() = false, want true")
	}
	if cfg.Target() != archive.Target(mem) {
		t.Error("Target() does not return configured target")
	}
}

func TestConfigCheckMaxObjects(t *testing.T) {
	cases := []struct {
		name       string
		maxObjects int64
		counter    int64
		wantErr    bool
	}{
		{
			name:       "below limit",
			maxObjects: 10,
			counter:    5,
			wantErr:    false,
		},
		{
			name:       "at limit",
			maxObjects: 10,
			counter:    10,
			wantErr:    false,
		},
		{
			name:       "above limit",
			maxObjects: 10,
			counter:    11,
			wantErr:    true,
		},
		{
			name:       "unlimited",
			maxObjects: -1,
			counter:    1 << 40,
			wantErr:    false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := archive.NewConfig(archive.WithMaxObjects(tc.maxObjects))
			err := cfg.CheckMaxObjects(tc.counter)
			if tc.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfigCheckExtractionSize(t *testing.T) {
	cases := []struct {
		name    string
		max     int64
		size    int64
		wantErr bool
	}{
		{
			name:    "below limit",
			max:     100,
			size:    50,
			wantErr: false,
		},
		{
			name:    "above limit",
			max:     100,
			size:    101,
			wantErr: true,
		},
		{
			name:    "unlimited",
			max:     -1,
			size:    1 << 40,
			wantErr: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := archive.NewConfig(archive.WithMaxExtractionSize(tc.max))
			err := cfg.CheckExtractionSize(tc.size)
			if tc.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
