// Package samdir names the files kept in the sam state directory.
package samdir

import "path/filepath"

const (
	// Dir is the name of the sam state directory, under the home directory.
	Dir = ".sam"

	// AppName is the directory name used under OS config directories.
	AppName = "sam"

	// TaskFile is the default task file name (inside .sam).
	TaskFile = "tasks.txt"

	// ConfigFile is the config file name (inside .sam or a config directory).
	ConfigFile = "sam.toml"

	// ProjectConfigFile is the hidden config file name in a working directory.
	ProjectConfigFile = "." + ConfigFile

	// CredentialsFile is the default OAuth client file name (inside .sam).
	CredentialsFile = "credentials.json"

	// TokenFile is the default OAuth token file name (inside .sam).
	TokenFile = "token.json"
)

// Path returns file inside the .sam directory under base. An empty base
// yields a "~/.sam/file" path left for later expansion.
func Path(base, file string) string {
	if base == "" {
		base = "~"
	}
	return base + "/" + Dir + "/" + file
}

// DirPath returns the .sam directory under home.
func DirPath(home string) string {
	return filepath.Join(home, Dir)
}
