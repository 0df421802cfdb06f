package osutil

import "os"

// NormalizeLocalPath returns the path unchanged when it already carries a
// drive-letter prefix (`X:\`), otherwise prefixes it with the current working
// directory. Empty input yields an empty result, as does a cwd lookup
// failure. The backslash join matches the workstation's path convention.
func NormalizeLocalPath(path string) string {
	if path == "" {
		return ""
	}

	if len(path) > 3 && path[1] == ':' && path[2] == '\\' {
		return path
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	return cwd + `\` + path
}
