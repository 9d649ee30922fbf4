package auth

import (
	"os"
	"path/filepath"
)

// TOKEN_FILE_ENV names the environment variable that overrides the default token file.
const TOKEN_FILE_ENV = "GSHEETS_TOKEN_FILE"

const DEFAULT_TOKEN_FILE = ".uhppoted_google_sheets.json"

// ResolveTokenFile returns the token file named by GSHEETS_TOKEN_FILE, falling back to
// DefaultTokenFile.
func ResolveTokenFile(getenv func(string) string) string {
	if path := getenv(TOKEN_FILE_ENV); path != "" {
		return path
	}

	return DefaultTokenFile(getenv)
}

// DefaultTokenFile returns the token file in the user's home directory, or in the
// current working directory if the home directory is not set.
func DefaultTokenFile(getenv func(string) string) string {
	home := getenv(HOME)
	if home == "" {
		if cwd, err := os.Getwd(); err == nil {
			home = cwd
		}
	}

	return filepath.Join(home, DEFAULT_TOKEN_FILE)
}
