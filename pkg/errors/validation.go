package errors

import (
	"strings"
	"unicode"
)

// maxPathLength bounds every path accepted from reg text or configuration.
const maxPathLength = 4096

// ValidateImportPath validates a path taken from an @import directive.
// The path is used literally (relative to the working directory or absolute),
// so only characters that can never name a file are rejected:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Maximum length of 4096 bytes
func ValidateImportPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "import path cannot be empty")
	}
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "import path too long (max %d characters)", maxPathLength)
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "import path %q contains invalid characters", path)
		}
	}
	return nil
}

// ValidateSuffix validates a watched file suffix such as "vue" or ".html".
// It must be non-empty and must not contain path separators.
func ValidateSuffix(suffix string) error {
	if strings.TrimSpace(suffix) == "" {
		return New(ErrCodeInvalidInput, "file suffix cannot be empty")
	}
	if strings.ContainsAny(suffix, "/\\") {
		return New(ErrCodeInvalidInput, "file suffix %q cannot contain path separators", suffix)
	}
	return nil
}
