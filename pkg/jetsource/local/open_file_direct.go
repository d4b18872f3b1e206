//go:build !linux && !darwin

package local

import "os"

func openFileDirect(name string, flag int, perm os.FileMode) (*os.File, error) {
	// No-op for non-Linux and non-Darwin systems, use standard open file
	return os.OpenFile(name, flag, perm)
}
