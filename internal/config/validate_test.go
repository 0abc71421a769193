package config

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantPath string
		wantErr  error
	}{
		{
			name:   "valid",
			mutate: func(c *Config) { c.Widgets = []Widget{NewWidget("a")} },
		},
		{
			name:   "negative speed is accepted",
			mutate: func(c *Config) { c.Widgets = []Widget{{TypingSpeed: Ptr(-5)}} },
		},
		{
			name:     "unknown mode",
			mutate:   func(c *Config) { c.Render.Mode = "fancy" },
			wantPath: "render.mode",
			wantErr:  ErrInvalidMode,
		},
		{
			name:     "bad text color",
			mutate:   func(c *Config) { c.Render.TextColor = "#zzz" },
			wantPath: "render.text_color",
			wantErr:  ErrInvalidColor,
		},
		{
			name:     "bad caret color",
			mutate:   func(c *Config) { c.Render.CaretColor = "not-a-color" },
			wantPath: "render.caret_color",
			wantErr:  ErrInvalidColor,
		},
		{
			name:     "bad log level",
			mutate:   func(c *Config) { c.Logging.Level = "loud" },
			wantPath: "logging.level",
			wantErr:  ErrValidationFailed,
		},
		{
			name:     "bad log format",
			mutate:   func(c *Config) { c.Logging.Format = "xml" },
			wantPath: "logging.format",
			wantErr:  ErrValidationFailed,
		},
		{
			name:     "negative row",
			mutate:   func(c *Config) { c.Widgets = []Widget{NewWidget("a"), {Row: -1}} },
			wantPath: "widget[1].row",
			wantErr:  ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error %T has no ValidationError", err)
			}
			if verr.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", verr.Path, tt.wantPath)
			}
		})
	}
}

func TestValidateCollectsAll(t *testing.T) {
	cfg := Default()
	cfg.Render.Mode = "fancy"
	cfg.Render.CaretColor = "nope"
	cfg.Widgets = []Widget{{Col: -1, Width: -1}}

	var verrs ValidationErrors
	if !errors.As(cfg.Validate(), &verrs) {
		t.Fatal("Validate() should return ValidationErrors")
	}
	if len(verrs) != 4 {
		t.Errorf("got %d errors, want 4: %v", len(verrs), verrs)
	}
}

func TestValidationErrorCodeString(t *testing.T) {
	tests := []struct {
		code ValidationErrorCode
		want string
	}{
		{ErrCodeTypeMismatch, "type_mismatch"},
		{ErrCodeOutOfRange, "out_of_range"},
		{ErrCodeInvalidEnum, "invalid_enum"},
		{ErrCodePatternMismatch, "pattern_mismatch"},
		{ValidationErrorCode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}
