package errors

import (
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// ValidateProgramID rejects ids that cannot name a stored program.
func ValidateProgramID(id int64) error {
	if id <= 0 {
		return New(ErrCodeInvalidProgram, "program id must be positive, got %d", id)
	}
	return nil
}

// ValidateProgramPair checks that two distinct, valid program ids were given.
func ValidateProgramPair(a, b int64) error {
	if err := ValidateProgramID(a); err != nil {
		return err
	}
	if err := ValidateProgramID(b); err != nil {
		return err
	}
	if a == b {
		return New(ErrCodeInvalidInput, "cannot compare program %d with itself", a)
	}
	return nil
}

// ValidateOutputPath validates a file path the CLI is about to write.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not name an existing directory separator only
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
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

	if strings.HasSuffix(path, string(filepath.Separator)) || strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "output path must name a file, not a directory")
	}

	return nil
}

// ValidateFormat checks that an output format is one of the supported formats.
func ValidateFormat(format string, valid map[string]bool) error {
	if !valid[format] {
		names := make([]string, 0, len(valid))
		for k := range valid {
			names = append(names, k)
		}
		slices.Sort(names)
		return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(names, ", "))
	}
	return nil
}
