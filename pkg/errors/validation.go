package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// coordinateRegex matches a single groupId or artifactId segment.
var coordinateRegex = regexp.MustCompile(`^[A-Za-z0-9_\-.]+$`)

// ValidateCoordinate validates one half of a groupId:artifactId identity.
// The kind is used in the error message ("groupId", "artifactId").
//
// The validation rules are intentionally conservative:
//   - No empty values
//   - Maximum length of 256 characters
//   - Only letters, digits, '_', '-' and '.'
func ValidateCoordinate(kind, value string) error {
	if value == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", kind)
	}

	if len(value) > 256 {
		return New(ErrCodeInvalidInput, "%s too long (max 256 characters)", kind)
	}

	if !coordinateRegex.MatchString(value) {
		return New(ErrCodeInvalidInput, "invalid %s: %q", kind, value)
	}

	return nil
}

// ValidateManifestFilename validates a manifest filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidateManifestFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidManifest, "manifest filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidManifest, "manifest filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidManifest, "manifest filename cannot be a hidden file")
	}

	return nil
}

// ValidatePath validates a module path declared in a reactor manifest.
// Module paths are informational, but they end up in diagnostics and in
// selectors, so they are held to the same rules as repository paths.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
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
