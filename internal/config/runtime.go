package config

import (
	"os"
	"path/filepath"
)

func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("FIN_RUNTIME_PATH"))
}

// resolveRuntimePath anchors relative runtime paths in the user's home.
func resolveRuntimePath(path string) string {
	if path == "" {
		path = ".finadvisor"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
