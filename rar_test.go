// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive_test

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/archivekit/go-archive"
	"github.com/archivekit/go-archive/telemetry"
)

// testRarArchiveBase64 is a rar archive holding the regular file "file", the
// symlink "link" pointing at it, and the directory "dir".
const testRarArchiveBase64 = "UmFyIRoHAQAzkrXlCgEFBgAFAQGAgACUHbvqIgIDC50ABJ0ApIMCPs+7qoAAAQRmaWxlCgMTxA3XZsR7EA5EaSAgMyBTZXAgMjAyNCAxNToyMzoxNiBDRVNUCpbhsN0pAgMUAAQE7cMCAAAAAIAAAQRsaW5rCgMTyQ3XZizK2TQIBQEABGZpbGVVBY+/GwIDCwABAO2DAYAAAQNkaXIKAxO3DddmazZtHx13VlEDBQQA"

func writeRarFixture(t *testing.T) string {
	t.Helper()
	archiveBytes, err := base64.StdEncoding.DecodeString(testRarArchiveBase64)
	if err != nil {
		t.Fatalf("cannot decode fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "fixture.rar")
	if err := os.WriteFile(path, archiveBytes, 0644); err != nil {
		t.Fatalf("cannot write fixture: %v", err)
	}
	return path
}

func TestExtractRar(t *testing.T) {
	archivePath := writeRarFixture(t)
	out := t.TempDir()

	var td telemetry.Data
	cfg := archive.NewConfig(
		archive.WithContinueOnUnsupportedFiles(true),
		archive.WithTelemetryHook(func(_ context.Context, d *telemetry.Data) { td = *d }),
	)
	if err := archive.New("rar", cfg).Extract(context.Background(), archivePath, out); err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(out, "file"))
	if err != nil {
		t.Fatalf("cannot read extracted file: %v", err)
	}
	if string(content) != "Di  3 Sep 2024 15:23:16 CEST\n" {
		t.Errorf("unexpected content: %q", content)
	}

	if stat, err := os.Stat(filepath.Join(out, "dir")); err != nil || !stat.IsDir() {
		t.Errorf("directory not extracted: %v", err)
	}

	// the symlink entry is skipped, not materialized
	if _, err := os.Lstat(filepath.Join(out, "link")); err == nil {
		t.Error("symlink materialized despite being unsupported")
	}
	if td.UnsupportedFiles != 1 || td.LastUnsupportedFile != "link" {
		t.Errorf("unexpected telemetry: %+v", td)
	}
	if td.Files != 1 || td.Dirs != 1 {
		t.Errorf("unexpected counts: %+v", td)
	}
}

func TestExtractRarSymlinkDefault(t *testing.T) {
	archivePath := writeRarFixture(t)

	// by default the symlink entry fails the extraction
	if err := archive.New("rar", nil).Extract(context.Background(), archivePath, t.TempDir()); err == nil {
		t.Error("symlink entry extracted without error")
	}
}
