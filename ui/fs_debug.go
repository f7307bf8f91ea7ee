//go:build debug

package ui

import (
	"io/fs"
	"os"
)

// AssetsFS returns a live filesystem rooted at ui/ (debug: reads from disk).
// Stylesheet edits show up immediately and template edits on restart,
// without recompiling Go.
func AssetsFS() fs.FS {
	return os.DirFS("ui")
}
