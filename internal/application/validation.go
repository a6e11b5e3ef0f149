package application

import (
	"fmt"
	"strings"

	"componentdiff/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "defaultPath" -> "default path")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"componentType": "component type",
		"defaultPath":   "default path",
		"corpusDir":     "corpus directory",
		"targetPath":    "target path",
		"sourcePath":    "source path",
		"defaultsDir":   "defaults directory",
		"runID":         "run ID",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateComponentType checks that a type is present and can name an XML element.
// Unknown but well-formed types are accepted; they use the generic strategies.
func ValidateComponentType(t domain.ComponentType) error {
	if err := ValidateRequired("componentType", string(t)); err != nil {
		return err
	}
	if !t.IsValid() {
		return &ValidationError{
			Field:   "componentType",
			Message: fmt.Sprintf("not a valid element name: %s", t),
		}
	}
	return nil
}

// ValidateThreshold checks that a selection threshold is a percentage
func ValidateThreshold(threshold float64) error {
	if threshold < 0 || threshold > 100 {
		return &ValidationError{
			Field:   "threshold",
			Message: fmt.Sprintf("must be between 0 and 100, got: %g", threshold),
		}
	}
	return nil
}
