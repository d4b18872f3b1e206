//go:build linux

package local

import (
	"os"
	"syscall"
)

func openFileDirect(name string, flag int, perm os.FileMode) (*os.File, error) {
	// Reading a .mdb file once per handle doesn't benefit from the page
	// cache the way a long-lived server workload would; try to bypass it,
	// but don't fail the open if the filesystem doesn't support it.
	direct := flag | syscall.O_DIRECT

	file, err := os.OpenFile(name, direct, perm)
	if err != nil {
		return os.OpenFile(name, flag, perm)
	}

	return file, nil
}
