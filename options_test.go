// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive_test

import (
	"archive/tar"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/archivekit/go-archive"
	"github.com/archivekit/go-archive/telemetry"
)

func TestExtractPatterns(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	out := t.TempDir()
	mustWriteFile(t, filepath.Join(src, "keep.txt"), "keep")
	mustWriteFile(t, filepath.Join(src, "drop.log"), "drop")

	archivePath, err := archive.New("tar", nil).Create(context.Background(), "patterns", dst, src)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var td telemetry.Data
	cfg := archive.NewConfig(
		archive.WithPatterns("*.txt"),
		archive.WithTelemetryHook(func(_ context.Context, d *telemetry.Data) { td = *d }),
	)
	if err := archive.New("tar", cfg).Extract(context.Background(), archivePath, out); err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(out, "keep.txt")); err != nil {
		t.Errorf("matching file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "drop.log")); err == nil {
		t.Error("non-matching file extracted")
	}
	if td.PatternMismatches != 1 {
		t.Errorf("PatternMismatches = %d, want 1", td.PatternMismatches)
	}
}

func TestExtractMaxObjects(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		mustWriteFile(t, filepath.Join(src, name), name)
	}

	archivePath, err := archive.New("tar", nil).Create(context.Background(), "objects", dst, src)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	cfg := archive.NewConfig(archive.WithMaxObjects(2))
	if err := archive.New("tar", cfg).Extract(context.Background(), archivePath, t.TempDir()); err == nil {
		t.Error("expected max objects error, got nil")
	}
}

func TestCreateMaxObjects(t *testing.T) {
	src := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		mustWriteFile(t, filepath.Join(src, name), name)
	}

	cfg := archive.NewConfig(archive.WithMaxObjects(2))
	if _, err := archive.New("tar", cfg).Create(context.Background(), "objects", t.TempDir(), src); err == nil {
		t.Error("expected max objects error, got nil")
	}
}

func TestExtractMaxExtractionSize(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	mustWriteFile(t, filepath.Join(src, "big.txt"), "0123456789")

	archivePath, err := archive.New("tar", nil).Create(context.Background(), "big", dst, src)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	cfg := archive.NewConfig(archive.WithMaxExtractionSize(4))
	if err := archive.New("tar", cfg).Extract(context.Background(), archivePath, t.TempDir()); err == nil {
		t.Error("expected extraction size error, got nil")
	}
}

func TestExtractPreserveFileTimes(t *testing.T) {
	dst := t.TempDir()
	out := t.TempDir()
	archivePath := filepath.Join(dst, "times.tar")

	mtime := time.Date(2019, 3, 4, 5, 6, 7, 0, time.UTC)
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	if err := tw.WriteHeader(&tar.Header{Name: "a.txt", Typeflag: tar.TypeReg, Mode: 0644, Size: 1, ModTime: mtime}); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write([]byte("a")); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(archivePath, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := archive.NewConfig(archive.WithPreserveFileTimes(true))
	if err := archive.New("tar", cfg).Extract(context.Background(), archivePath, out); err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	stat, err := os.Stat(filepath.Join(out, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !stat.ModTime().Equal(mtime) {
		t.Errorf("mtime = %v, want %v", stat.ModTime(), mtime)
	}
}

func TestExtractUnsupportedEntries(t *testing.T) {
	dst := t.TempDir()
	archivePath := filepath.Join(dst, "links.tar")

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	if err := tw.WriteHeader(&tar.Header{Name: "link", Typeflag: tar.TypeSymlink, Linkname: "target", Mode: 0777}); err != nil {
		t.Fatal(err)
	}
	if err := tw.WriteHeader(&tar.Header{Name: "a.txt", Typeflag: tar.TypeReg, Mode: 0644, Size: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write([]byte("a")); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(archivePath, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	// by default an unsupported entry fails the extraction
	if err := archive.New("tar", nil).Extract(context.Background(), archivePath, t.TempDir()); err == nil {
		t.Error("symlink entry extracted without error")
	}

	// with the option it is skipped and reported through telemetry
	out := t.TempDir()
	var td telemetry.Data
	cfg := archive.NewConfig(
		archive.WithContinueOnUnsupportedFiles(true),
		archive.WithTelemetryHook(func(_ context.Context, d *telemetry.Data) { td = *d }),
	)
	if err := archive.New("tar", cfg).Extract(context.Background(), archivePath, out); err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if _, err := os.Lstat(filepath.Join(out, "link")); err == nil {
		t.Error("symlink materialized despite being unsupported")
	}
	if td.UnsupportedFiles != 1 || td.LastUnsupportedFile != "link" {
		t.Errorf("unexpected telemetry: %+v", td)
	}
	if td.Files != 1 {
		t.Errorf("Files = %d, want 1", td.Files)
	}
}

func TestExtractHardLinkEntries(t *testing.T) {
	dst := t.TempDir()
	archivePath := filepath.Join(dst, "hardlinks.tar")

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	if err := tw.WriteHeader(&tar.Header{Name: "target.txt", Typeflag: tar.TypeReg, Mode: 0644, Size: 7}); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write([]byte("content")); err != nil {
		t.Fatal(err)
	}
	if err := tw.WriteHeader(&tar.Header{Name: "hard.txt", Typeflag: tar.TypeLink, Linkname: "target.txt", Mode: 0644}); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(archivePath, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	// a hard link entry must not surface as an empty regular file
	if err := archive.New("tar", nil).Extract(context.Background(), archivePath, t.TempDir()); err == nil {
		t.Error("hard link entry extracted without error")
	}

	out := t.TempDir()
	var td telemetry.Data
	cfg := archive.NewConfig(
		archive.WithContinueOnUnsupportedFiles(true),
		archive.WithTelemetryHook(func(_ context.Context, d *telemetry.Data) { td = *d }),
	)
	if err := archive.New("tar", cfg).Extract(context.Background(), archivePath, out); err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if _, err := os.Lstat(filepath.Join(out, "hard.txt")); err == nil {
		t.Error("hard link materialized despite being unsupported")
	}
	if td.UnsupportedFiles != 1 || td.LastUnsupportedFile != "hard.txt" {
		t.Errorf("unexpected telemetry: %+v", td)
	}
	content, err := os.ReadFile(filepath.Join(out, "target.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "content" {
		t.Errorf("unexpected content: %q", content)
	}
}

func TestTelemetryData(t *testing.T) {
	src := createTestTree(t)
	dst := t.TempDir()
	out := t.TempDir()

	var createData, extractData telemetry.Data
	createCfg := archive.NewConfig(
		archive.WithTelemetryHook(func(_ context.Context, d *telemetry.Data) { createData = *d }),
	)
	archivePath, err := archive.New("tar.gz", createCfg).Create(context.Background(), "telemetry", dst, src)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if createData.ArchiveType != "tar.gz" {
		t.Errorf("ArchiveType = %s, want tar.gz", createData.ArchiveType)
	}
	if createData.Files != 3 {
		t.Errorf("Files = %d, want 3", createData.Files)
	}
	if createData.Dirs != 3 {
		t.Errorf("Dirs = %d, want 3", createData.Dirs)
	}
	if createData.Bytes == 0 {
		t.Error("Bytes = 0, want > 0")
	}
	if createData.Errors != 0 {
		t.Errorf("Errors = %d, want 0", createData.Errors)
	}

	extractCfg := archive.NewConfig(
		archive.WithTelemetryHook(func(_ context.Context, d *telemetry.Data) { extractData = *d }),
	)
	if err := archive.New("tar.gz", extractCfg).Extract(context.Background(), archivePath, out); err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if extractData.Files != 3 {
		t.Errorf("Files = %d, want 3", extractData.Files)
	}
	if extractData.Dirs != 3 {
		t.Errorf("Dirs = %d, want 3", extractData.Dirs)
	}
	if extractData.InputSize == 0 {
		t.Error("InputSize = 0, want > 0")
	}
}
