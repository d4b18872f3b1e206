//go:build darwin

package local

import "os"

func openFileDirect(name string, flag int, perm os.FileMode) (*os.File, error) {
	// Darwin has no O_DIRECT; F_NOCACHE would need an fcntl after open,
	// which isn't worth it for a file opened once per handle.
	return os.OpenFile(name, flag, perm)
}
