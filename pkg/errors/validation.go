package errors

import (
	"strings"
	"unicode"
)

// ValidateExtension validates a source file extension taken from an entry.
// Extensions are used to build lexer file names, so they must be short and
// free of path components. A leading dot is allowed.
func ValidateExtension(ext string) error {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return New(ErrCodeInvalidExtension, "extension cannot be empty")
	}

	const maxExtLength = 32
	if len(ext) > maxExtLength {
		return New(ErrCodeInvalidExtension, "extension too long (max %d characters)", maxExtLength)
	}

	for _, r := range ext {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidExtension, "extension contains invalid characters")
		}
	}

	if strings.ContainsAny(ext, `/\`) || strings.Contains(ext, "..") {
		return New(ErrCodeInvalidExtension, "extension cannot contain path components: %q", ext)
	}

	return nil
}

// ValidateFileName validates an output file name.
// It must be a plain base name: no separators, no traversal and no
// control characters.
func ValidateFileName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "file name cannot be empty")
	}

	const maxNameLength = 255
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidPath, "file name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "file name contains invalid characters")
		}
	}

	if strings.ContainsAny(name, `/\`) {
		return New(ErrCodeInvalidPath, "file name cannot contain path separators")
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidPath, "file name cannot be %q", name)
	}

	return nil
}
