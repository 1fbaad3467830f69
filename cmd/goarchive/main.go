// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/archivekit/go-archive/cmd"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main starts the goarchive cli
func main() {
	cmd.Run(version, commit, date)
}
