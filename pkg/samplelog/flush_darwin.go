//go:build darwin

package samplelog

import (
	"os"

	"golang.org/x/sys/unix"
)

// flush forces written data to stable storage. On darwin fsync only
// reaches the drive cache; F_FULLFSYNC pushes it to the medium.
func flush(f *os.File) error {
	_, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0)
	return err
}
