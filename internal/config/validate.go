package config

import (
	"fmt"

	"github.com/dshills/autotype/internal/logging"
)

// Validate checks every setting and returns all failures as
// ValidationErrors. Negative speeds are accepted; they are clamped when
// the animation starts.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, &ValidationError{
			Path:    "logging.level",
			Message: "must be one of debug, info, warn, error",
			Value:   c.Logging.Level,
			Code:    ErrCodeInvalidEnum,
		})
	}

	switch logging.Format(c.Logging.Format) {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, &ValidationError{
			Path:    "logging.format",
			Message: "must be text or json",
			Value:   c.Logging.Format,
			Code:    ErrCodeInvalidEnum,
		})
	}

	if _, err := c.RenderMode(); err != nil {
		errs = append(errs, &ValidationError{
			Path:    "render.mode",
			Message: "must be styled or plain",
			Value:   c.Render.Mode,
			Code:    ErrCodeInvalidEnum,
		})
	}

	if _, err := c.TextStyle(); err != nil {
		errs = append(errs, &ValidationError{
			Path:    "render.text_color",
			Message: "must be a color name or hex value",
			Value:   c.Render.TextColor,
			Code:    ErrCodePatternMismatch,
		})
	}
	if _, err := c.CaretStyle(); err != nil {
		errs = append(errs, &ValidationError{
			Path:    "render.caret_color",
			Message: "must be a color name or hex value",
			Value:   c.Render.CaretColor,
			Code:    ErrCodePatternMismatch,
		})
	}

	for i, w := range c.Widgets {
		for _, f := range []struct {
			name  string
			value int
		}{
			{"row", w.Row},
			{"col", w.Col},
			{"width", w.Width},
		} {
			if f.value < 0 {
				errs = append(errs, &ValidationError{
					Path:    fmt.Sprintf("widget[%d].%s", i, f.name),
					Message: "must not be negative",
					Value:   f.value,
					Code:    ErrCodeOutOfRange,
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
