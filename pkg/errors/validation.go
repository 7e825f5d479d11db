package errors

import (
	"strings"
	"unicode"
)

// ValidateResourceName validates a render-target name chosen by the user.
// Reserved-name and uniqueness checks belong to the graph; this only rejects
// names the renderer could never look up.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 128 characters
//   - No whitespace or control characters
func ValidateResourceName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "resource name cannot be empty")
	}

	const maxNameLength = 128
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "resource name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "resource name %q contains whitespace or control characters", name)
		}
	}
	return nil
}

// ValidateAssetPath validates a shader or texture path written into a pipeline.
// Paths are resolved by the engine relative to its working directory.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidateAssetPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
