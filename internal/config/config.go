package config

import (
	"os"
	"path/filepath"
)

// DefaultContentDir is the repository directory that holds posts.
const DefaultContentDir = "source/_posts"

// ContentDir returns the posts directory from SCRIVO_CONTENT_DIR,
// falling back to DefaultContentDir.
func ContentDir() string {
	if env := os.Getenv("SCRIVO_CONTENT_DIR"); env != "" {
		return env
	}
	return DefaultContentDir
}

// DatabasePath returns the path of the local store from SCRIVO_DATA,
// falling back to the XDG data directory.
func DatabasePath() string {
	if env := os.Getenv("SCRIVO_DATA"); env != "" {
		return env
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "scrivo", "scrivo.db")
}
