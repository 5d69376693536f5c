//go:build linux

package samplelog

import (
	"os"

	"golang.org/x/sys/unix"
)

// flush forces written data to stable storage.
func flush(f *os.File) error {
	return unix.Fdatasync(int(f.Fd()))
}
