package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// tagRegex matches node labels and relationship types accepted by every sink.
// The first character must be a letter so tags stay valid identifiers in
// Cypher-like stores; the rest may contain letters, digits and underscores.
var tagRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// maxTagLength bounds labels and relationship types.
const maxTagLength = 128

// ValidateTag validates a node label or relationship type tag.
// The kind argument ("label", "relationship type") only shapes the message.
func ValidateTag(kind, tag string) error {
	if tag == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", kind)
	}
	if len(tag) > maxTagLength {
		return New(ErrCodeInvalidInput, "%s too long (max %d characters)", kind, maxTagLength)
	}
	if !tagRegex.MatchString(tag) {
		return New(ErrCodeInvalidInput, "invalid %s: %q (letters, digits and '_' only, starting with a letter)", kind, tag)
	}
	return nil
}

// ValidateBatchSize validates the commit granularity of a generation run.
func ValidateBatchSize(size int) error {
	if size < 1 {
		return New(ErrCodeInvalidInput, "batch size must be >= 1, got %d", size)
	}
	return nil
}

// ValidatePath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
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

	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}

// ValidateURL validates a connection URL for one of the allowed schemes.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL must use one of the schemes %v", schemes)
}
