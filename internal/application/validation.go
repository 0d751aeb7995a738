package application

import (
	"fmt"
	"strings"

	"scrivo/internal/domain"
)

// ValidateFilename normalizes free-form filename input and rejects
// input that yields no usable name.
func ValidateFilename(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", &ValidationError{
			Field:   "filename",
			Message: "filename is required",
		}
	}
	name := domain.NormalizeFilename(input)
	if name == "" {
		return "", &ValidationError{
			Field:   "filename",
			Message: fmt.Sprintf("no usable filename in %q", input),
		}
	}
	return name, nil
}

// ValidateSHA checks that a version token is held before an update or
// delete is attempted against an existing remote file.
func ValidateSHA(path, sha string) error {
	if sha == "" {
		return &ValidationError{
			Field:   "sha",
			Message: fmt.Sprintf("no version token held for %s", path),
		}
	}
	return nil
}
