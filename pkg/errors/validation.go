package errors

import (
	"regexp"
	"unicode"
)

// ValidateWidgetID validates a widget instance id for safety and correctness.
// Ids arrive from untrusted layout documents, so the rules are conservative:
//   - No empty ids
//   - No control characters
//   - Maximum length of 128 characters
//
// The engine generates UUID ids itself; this validator exists for documents
// produced by other tools.
func ValidateWidgetID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "widget id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "widget id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "widget id contains control characters")
		}
	}

	return nil
}

// widgetTypeRegex matches valid widget type identifiers: lowercase
// alphanumerics with hyphen or underscore separators, starting with a letter.
var widgetTypeRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidateWidgetType validates a widget type identifier.
func ValidateWidgetType(widgetType string) error {
	if widgetType == "" {
		return New(ErrCodeInvalidWidgetType, "widget type cannot be empty")
	}

	if len(widgetType) > 64 {
		return New(ErrCodeInvalidWidgetType, "widget type too long (max 64 characters)")
	}

	if !widgetTypeRegex.MatchString(widgetType) {
		return New(ErrCodeInvalidWidgetType, "invalid widget type: %q", widgetType)
	}

	return nil
}

// breakpointNameRegex matches valid breakpoint names.
var breakpointNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidateBreakpointName validates a breakpoint name.
func ValidateBreakpointName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidGrid, "breakpoint name cannot be empty")
	}

	if !breakpointNameRegex.MatchString(name) {
		return New(ErrCodeInvalidGrid, "invalid breakpoint name: %q", name)
	}

	return nil
}
