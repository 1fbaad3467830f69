// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

// Package cmd implements the goarchive command line interface.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/archivekit/go-archive"
	"github.com/archivekit/go-archive/telemetry"
)

// CLI are the cli parameters for the goarchive binary.
type CLI struct {
	Create  CreateCmd  `cmd:"" help:"Create an archive from files and directories."`
	Extract ExtractCmd `cmd:"" help:"Extract an archive to a directory."`
	Formats FormatsCmd `cmd:"" help:"List supported archive formats."`

	Telemetry bool             `short:"T" optional:"" default:"false" help:"Print telemetry data to log after the operation."`
	Timeout   int64            `optional:"" default:"60" help:"Maximum time the operation may take (in seconds). (disable: -1)"`
	Verbose   bool             `short:"v" optional:"" help:"Verbose logging."`
	Version   kong.VersionFlag `short:"V" optional:"" help:"Print release version information."`
}

// CreateCmd creates an archive from a set of sources.
type CreateCmd struct {
	Name        string   `arg:"" help:"Archive name; the format extension is appended if missing."`
	Sources     []string `arg:"" name:"source" help:"Source files and directories." type:"path"`
	Destination string   `short:"d" default:"." help:"Destination directory for the archive."`
	Format      string   `short:"f" default:"tar.gz" help:"Archive format (see 'goarchive formats')."`
}

// ExtractCmd extracts an archive to a destination directory.
type ExtractCmd struct {
	Archive           string   `arg:"" help:"Path to the archive." type:"existingfile"`
	Destination       string   `arg:"" default:"." help:"Output directory."`
	CreateDestination bool     `short:"c" help:"Create destination directory if it does not exist."`
	Format            string   `short:"f" default:"" help:"Archive format; detected from the stream header if empty."`
	KeepExisting      bool     `short:"k" help:"Do not overwrite existing files."`
	MaxObjects        int64    `optional:"" default:"100000" help:"Maximum entries that are extracted before stop. (disable check: -1)"`
	MaxExtractionSize int64    `optional:"" default:"1073741824" help:"Maximum extraction size in bytes. (disable check: -1)"`
	MaxInputSize      int64    `optional:"" default:"1073741824" help:"Maximum input size in bytes. (disable check: -1)"`
	Patterns          []string `short:"p" optional:"" help:"Limit extraction to entries matching the given patterns."`
	PreserveTimes     bool     `short:"t" help:"Restore entry modification times on extracted files."`
}

// FormatsCmd lists the supported archive formats.
type FormatsCmd struct{}

// Run the entrypoint into goarchive as a cli tool.
func Run(version, commit, date string) {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Description("A uniform archive creation and extraction utility"),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("%s (%s), commit %s, built at %s", filepath.Base(os.Args[0]), version, commit, date),
		},
	)

	// check for verbose output
	logLevel := slog.LevelError
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}

	// setup logger
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// setup telemetry hook
	telemetryToLog := func(ctx context.Context, td *telemetry.Data) {
		if cli.Telemetry {
			logger.Info("operation finished", "telemetry", td)
		}
	}

	ctx := context.Background()
	if cli.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Second*time.Duration(cli.Timeout))
		defer cancel()
	}

	var err error
	switch kctx.Command() {

	case "create <name> <source>":
		cfg := archive.NewConfig(
			archive.WithLogger(logger),
			archive.WithTelemetryHook(telemetryToLog),
		)
		archiver := archive.New(cli.Create.Format, cfg)

		var path string
		if path, err = archiver.Create(ctx, cli.Create.Name, cli.Create.Destination, cli.Create.Sources...); err == nil {
			fmt.Println(path)
		}

	case "extract <archive> <destination>", "extract <archive>":
		cfg := archive.NewConfig(
			archive.WithCreateDestination(cli.Extract.CreateDestination),
			archive.WithLogger(logger),
			archive.WithMaxExtractionSize(cli.Extract.MaxExtractionSize),
			archive.WithMaxInputSize(cli.Extract.MaxInputSize),
			archive.WithMaxObjects(cli.Extract.MaxObjects),
			archive.WithOverwrite(!cli.Extract.KeepExisting),
			archive.WithPatterns(cli.Extract.Patterns...),
			archive.WithPreserveFileTimes(cli.Extract.PreserveTimes),
			archive.WithTelemetryHook(telemetryToLog),
		)

		// fall back to the archive file name when no format is given
		format := cli.Extract.Format
		if format == "" {
			format = formatFromName(cli.Extract.Archive)
		}

		err = archive.New(format, cfg).Extract(ctx, cli.Extract.Archive, cli.Extract.Destination)

	case "formats":
		fmt.Println(strings.Join(archive.Formats(), "\n"))
	}

	if err != nil {
		logger.Error("operation failed", "err", err)
		os.Exit(-1)
	}
}

// formatFromName derives a format name from an archive file name with
// longest suffix match.
func formatFromName(name string) string {
	var format string
	var maxSuffixLength int
	for _, f := range archive.Formats() {
		suffix := "." + f
		if !strings.HasSuffix(strings.ToLower(name), suffix) {
			continue
		}
		if len(suffix) > maxSuffixLength {
			maxSuffixLength = len(suffix)
			format = f
		}
	}
	if format == "" {
		// header detection covers unknown names
		return "tar"
	}
	return format
}
