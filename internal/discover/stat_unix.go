//go:build !windows

package discover

import (
	"io/fs"
	"syscall"
)

// deviceInode extracts the (device, inode) pair from a FileInfo on Unix,
// used by the walker's symlink-loop guard. ok is false if the
// underlying afero filesystem doesn't expose a *syscall.Stat_t (e.g. an
// in-memory afero.Fs in tests), in which case the guard is skipped.
func deviceInode(info fs.FileInfo) (dev, inode uint64, ok bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return 0, 0, false
	}
	return uint64(st.Dev), uint64(st.Ino), true
}
