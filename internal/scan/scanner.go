package scan

import (
	"os"
	"path/filepath"
	"strings"
)

type FileInfo struct {
	Path  string
	Mtime int64
	Size  int64
}

// Exports walks root and returns every .txt and .pdf chat export found.
// Unreadable subdirectories are skipped rather than failing the walk.
func Exports(root string) ([]FileInfo, error) {
	var files []FileInfo
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".txt" && ext != ".pdf" {
			return nil
		}
		files = append(files, FileInfo{
			Path:  path,
			Mtime: info.ModTime().Unix(),
			Size:  info.Size(),
		})
		return nil
	})
	return files, err
}
