//go:build windows

package fsutil

import "os"

// WriteFileAtomic writes data to path so readers never observe a partial file.
// On Windows, we use a write-rename pattern since renameio doesn't support Windows.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return err
	}
	return nil
}
