//go:build !windows
// +build !windows

package filesystem

import (
	"os"
	"syscall"
)

// Ownership extracts uid, gid and permission bits from FileInfo (Unix)
func Ownership(info os.FileInfo) (uid, gid, mode uint32, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0, uint32(info.Mode().Perm()), false
	}
	return stat.Uid, stat.Gid, uint32(stat.Mode), true
}
