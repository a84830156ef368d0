package errors

import (
	"strings"
	"testing"
)

func TestValidateWidgetID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid uuid", "7c9a1f2e-9f2b-4f4a-9a3e-0f2d6c1b8a7d", false},
		{"valid simple", "header", false},
		{"valid with underscore", "hero_banner", false},
		{"valid max length", strings.Repeat("a", 128), false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 129), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"carriage return", "foo\rbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWidgetID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWidgetID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateWidgetType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "heading", false},
		{"valid with dash", "image-gallery", false},
		{"valid with underscore", "hero_banner", false},
		{"valid with digits", "grid2col", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"uppercase", "Heading", true},
		{"leading digit", "2columns", true},
		{"leading dash", "-heading", true},
		{"spaces", "hero banner", true},
		{"path separator", "foo/bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWidgetType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWidgetType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBreakpointName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid mobile", "mobile", false},
		{"valid with dash", "extra-wide", false},
		{"valid with digits", "hd1080", false},

		{"empty", "", true},
		{"uppercase", "Mobile", true},
		{"leading digit", "4k", true},
		{"spaces", "extra wide", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBreakpointName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBreakpointName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidationErrorCodes(t *testing.T) {
	if err := ValidateWidgetID(""); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("ValidateWidgetID code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
	}
	if err := ValidateWidgetType(""); !Is(err, ErrCodeInvalidWidgetType) {
		t.Errorf("ValidateWidgetType code = %v, want %v", GetCode(err), ErrCodeInvalidWidgetType)
	}
	if err := ValidateBreakpointName(""); !Is(err, ErrCodeInvalidGrid) {
		t.Errorf("ValidateBreakpointName code = %v, want %v", GetCode(err), ErrCodeInvalidGrid)
	}
}
