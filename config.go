// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/archivekit/go-archive/telemetry"
)

// ConfigOption is a function pointer to implement the option pattern.
type ConfigOption func(*Config)

// Config holds all config options for creation and extraction. The zero
// value is not usable, construct with [NewConfig].
type Config struct {
	// cacheInMemory enables in-memory caching when a random-access codec
	// (zip, 7z) is fed from a pure stream. Default is a temporary file.
	cacheInMemory bool

	// continueOnUnsupportedFiles skips entry types that cannot be
	// materialized (e.g. symlinks, devices) instead of failing.
	continueOnUnsupportedFiles bool

	// createDestination creates the destination directory if it does not
	// exist, instead of failing with ErrInvalidDestination.
	createDestination bool

	// defaultDirPermission is the permission for implicitly created
	// directories.
	defaultDirPermission fs.FileMode

	// logger stream for creation and extraction
	logger *slog.Logger

	// maxExtractionSize is the maximum size of the extracted content.
	// Set value to -1 to disable the check.
	maxExtractionSize int64

	// maxInputSize is the maximum size of the archive input.
	// Set value to -1 to disable the check.
	maxInputSize int64

	// maxObjects is the maximum number of entries handled in one call.
	// Set value to -1 to disable the check.
	maxObjects int64

	// overwrite defines if existing files are overwritten during extraction
	overwrite bool

	// patterns is a list of file patterns to limit extraction to
	patterns []string

	// preserveFileTimes restores entry modification times on extracted files
	preserveFileTimes bool

	// streamFactory produces entry writers and readers per format
	streamFactory StreamFactory

	// target is the filesystem the extraction output is written to
	target Target

	// telemetryHook consumes telemetry data after a finished call
	telemetryHook telemetry.TelemetryHook
}

// NewConfig creates a [Config] and applies opts as adjustments of the
// default configuration in an option pattern style.
func NewConfig(opts ...ConfigOption) *Config {
	const (
		cacheInMemory              = false
		continueOnUnsupportedFiles = false
		createDestination          = false
		defaultDirPermission       = 0755
		maxExtractionSize          = 1 << 30 // 1 GiB
		maxInputSize               = 1 << 30 // 1 GiB
		maxObjects                 = 100000
		overwrite                  = true
		preserveFileTimes          = false
	)

	config := &Config{
		cacheInMemory:              cacheInMemory,
		continueOnUnsupportedFiles: continueOnUnsupportedFiles,
		createDestination:          createDestination,
		defaultDirPermission:       defaultDirPermission,
		logger:                     slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxExtractionSize:          maxExtractionSize,
		maxInputSize:               maxInputSize,
		maxObjects:                 maxObjects,
		overwrite:                  overwrite,
		preserveFileTimes:          preserveFileTimes,
		streamFactory:              NewDefaultFactory(),
		target:                     NewTargetDisk(),
	}

	// process options
	for _, opt := range opts {
		opt(config)
	}

	return config
}

// WithCacheInMemory caches streamed input for random-access codecs in memory
// instead of a temporary file.
func WithCacheInMemory(cache bool) ConfigOption {
	return func(c *Config) {
		c.cacheInMemory = cache
	}
}

// WithContinueOnUnsupportedFiles skips unsupported entry types instead of
// failing the whole call.
func WithContinueOnUnsupportedFiles(ctd bool) ConfigOption {
	return func(c *Config) {
		c.continueOnUnsupportedFiles = ctd
	}
}

// WithCreateDestination creates the destination directory if it is missing.
func WithCreateDestination(create bool) ConfigOption {
	return func(c *Config) {
		c.createDestination = create
	}
}

// WithDefaultDirPermission sets the permission for implicitly created
// directories.
func WithDefaultDirPermission(permission fs.FileMode) ConfigOption {
	return func(c *Config) {
		c.defaultDirPermission = permission
	}
}

// WithLogger sets the logger that creation and extraction report to.
func WithLogger(logger *slog.Logger) ConfigOption {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithMaxExtractionSize sets the maximum size of the extracted content.
// Set value to -1 to disable the check.
func WithMaxExtractionSize(maxExtractionSize int64) ConfigOption {
	return func(c *Config) {
		c.maxExtractionSize = maxExtractionSize
	}
}

// WithMaxInputSize sets the maximum size of the archive input.
// Set value to -1 to disable the check.
func WithMaxInputSize(maxInputSize int64) ConfigOption {
	return func(c *Config) {
		c.maxInputSize = maxInputSize
	}
}

// WithMaxObjects sets the maximum number of entries handled in one call.
// Set value to -1 to disable the check.
func WithMaxObjects(maxObjects int64) ConfigOption {
	return func(c *Config) {
		c.maxObjects = maxObjects
	}
}

// WithOverwrite defines if existing files are overwritten during extraction.
func WithOverwrite(enable bool) ConfigOption {
	return func(c *Config) {
		c.overwrite = enable
	}
}

// WithPatterns limits extraction to entries matching any of the given
// filepath.Match patterns.
func WithPatterns(pattern ...string) ConfigOption {
	return func(c *Config) {
		c.patterns = append(c.patterns, pattern...)
	}
}

// WithPreserveFileTimes restores entry modification times on extracted files.
func WithPreserveFileTimes(preserve bool) ConfigOption {
	return func(c *Config) {
		c.preserveFileTimes = preserve
	}
}

// WithStreamFactory injects the factory that produces entry writers and
// readers. Intended for custom or wrapped codecs.
func WithStreamFactory(f StreamFactory) ConfigOption {
	return func(c *Config) {
		if f != nil {
			c.streamFactory = f
		}
	}
}

// WithTarget sets the filesystem the extraction output is written to.
func WithTarget(t Target) ConfigOption {
	return func(c *Config) {
		if t != nil {
			c.target = t
		}
	}
}

// WithTelemetryHook sets the hook that consumes telemetry data after a
// finished call.
func WithTelemetryHook(hook telemetry.TelemetryHook) ConfigOption {
	return func(c *Config) {
		c.telemetryHook = hook
	}
}

// CacheInMemory returns true if streamed input is cached in memory.
func (c *Config) CacheInMemory() bool {
	return c.cacheInMemory
}

// ContinueOnUnsupportedFiles returns true if unsupported entry types are
// skipped.
func (c *Config) ContinueOnUnsupportedFiles() bool {
	return c.continueOnUnsupportedFiles
}

// CreateDestination returns true if a missing destination directory is
// created.
func (c *Config) CreateDestination() bool {
	return c.createDestination
}

// DefaultDirPermission returns the permission for implicitly created
// directories.
func (c *Config) DefaultDirPermission() fs.FileMode {
	return c.defaultDirPermission
}

// Logger returns the logger.
func (c *Config) Logger() *slog.Logger {
	return c.logger
}

// MaxExtractionSize returns the maximum size of the extracted content.
func (c *Config) MaxExtractionSize() int64 {
	return c.maxExtractionSize
}

// MaxInputSize returns the maximum size of the archive input.
func (c *Config) MaxInputSize() int64 {
	return c.maxInputSize
}

// MaxObjects returns the maximum number of entries handled in one call.
func (c *Config) MaxObjects() int64 {
	return c.maxObjects
}

// Overwrite returns true if existing files are overwritten during extraction.
func (c *Config) Overwrite() bool {
	return c.overwrite
}

// Patterns returns the opted-in file patterns.
func (c *Config) Patterns() []string {
	return c.patterns
}

// PreserveFileTimes returns true if modification times are restored.
func (c *Config) PreserveFileTimes() bool {
	return c.preserveFileTimes
}

// StreamFactory returns the factory that produces entry writers and readers.
func (c *Config) StreamFactory() StreamFactory {
	return c.streamFactory
}

// Target returns the filesystem the extraction output is written to.
func (c *Config) Target() Target {
	return c.target
}

// TelemetryHook returns the hook that consumes telemetry data, or a noop
// hook if none is configured.
func (c *Config) TelemetryHook() telemetry.TelemetryHook {
	if c.telemetryHook == nil {
		return func(context.Context, *telemetry.Data) {}
	}
	return c.telemetryHook
}

// CheckMaxObjects checks if counter exceeds the configured maximum number of
// entries.
func (c *Config) CheckMaxObjects(counter int64) error {
	if c.maxObjects == -1 {
		return nil
	}
	if counter > c.maxObjects {
		return fmt.Errorf("entry limit exceeded (%d)", c.maxObjects)
	}
	return nil
}

// CheckExtractionSize checks if fileSize exceeds the configured maximum
// extraction size.
func (c *Config) CheckExtractionSize(fileSize int64) error {
	if c.maxExtractionSize == -1 {
		return nil
	}
	if fileSize > c.maxExtractionSize {
		return fmt.Errorf("extraction size exceeded (%d)", c.maxExtractionSize)
	}
	return nil
}
