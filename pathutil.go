// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import "path/filepath"

// relativePath returns target expressed relative to root, with the platform
// path separator normalized to forward slashes for archive portability.
//
// root must be a direct or transitive containing directory of target; the
// traversal in Create guarantees this by construction, behavior for other
// inputs is undefined.
func relativePath(root, target string) string {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}
