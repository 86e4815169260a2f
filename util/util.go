package util

import (
	"os"
	"path/filepath"
	"strings"
)

const BinExt = ".bin"

// ClassFromPath derives the class name from a .bin file path: the
// base name with the extension stripped.
func ClassFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// ListBinFiles walks dir recursively and returns every .bin file.
func ListBinFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), BinExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
