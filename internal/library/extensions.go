package library

import (
	"path/filepath"
	"strings"
)

// isVideoFile checks if file extension is a video format
func isVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	videoExts := []string{
		".mkv", ".mp4", ".avi", ".mov", ".wmv", ".flv",
		".webm", ".m4v", ".mpg", ".mpeg", ".m2ts", ".ts",
		".rm", ".rmvb", ".ogm",
	}

	for _, videoExt := range videoExts {
		if ext == videoExt {
			return true
		}
	}

	return false
}
