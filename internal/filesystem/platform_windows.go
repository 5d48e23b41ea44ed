//go:build windows
// +build windows

package filesystem

import (
	"os"
)

// Ownership extracts uid, gid and permission bits from FileInfo (Windows).
// There are no numeric owners on Windows, so everything maps to uid 0.
func Ownership(info os.FileInfo) (uid, gid, mode uint32, ok bool) {
	return 0, 0, uint32(info.Mode().Perm()), false
}
