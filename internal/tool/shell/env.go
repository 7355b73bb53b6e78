package shell

import (
	"fmt"
	"strings"
)

// maxEnvFileSize caps how much of an env file is read.
const maxEnvFileSize = 1 << 20

// ParseEnvFile parses a .env file into a map.
// It supports KEY=VALUE lines, an optional "export " prefix, # comments, blank
// lines and single- or double-quoted values. Multi-line values and variable
// expansion are not supported.
func ParseEnvFile(fs envFileReader, path string) (map[string]string, error) {
	content, _, err := fs.ReadFile(path, maxEnvFileSize)
	if err != nil {
		return nil, &EnvFileReadError{Path: path, Cause: err}
	}

	env := make(map[string]string)
	for i, rawLine := range strings.Split(string(content), "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %s:%d: %s", ErrEnvFileParse, path, i+1, line)
		}

		value = strings.TrimSpace(value)
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}
		env[key] = value
	}

	return env, nil
}
