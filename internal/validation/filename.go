// filename.go sanitizes user-controlled names before they are used in
// filesystem paths or response headers.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SanitizeArchiveName derives a safe archive filename from a model's display
// name: every character outside [A-Za-z0-9_-] becomes an underscore. When the
// name is empty the fallback is a synthetic name from the model ID.
func SanitizeArchiveName(displayName, modelID string) string {
	sanitized := unsafeFilenameChars.ReplaceAllString(displayName, "_")
	if strings.Trim(sanitized, "_") == "" {
		return fmt.Sprintf("model-%s.zip", modelID)
	}
	return sanitized + ".zip"
}

// ValidateUploadFilename rejects file names that could escape the model's
// storage directory. Uploaded names must be bare names, not paths.
func ValidateUploadFilename(name string) error {
	if name == "" {
		return fmt.Errorf("file name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("file name must not contain path separators: %s", name)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid file name: %s", name)
	}
	return nil
}
