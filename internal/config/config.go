package config

import (
	"time"

	"github.com/dshills/autotype/internal/animator"
	"github.com/dshills/autotype/internal/logging"
	"github.com/dshills/autotype/internal/renderer"
	"github.com/dshills/autotype/internal/renderer/core"
)

// Config is the complete autotype configuration.
type Config struct {
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Render  RenderConfig  `toml:"render" yaml:"render"`
	Widgets []Widget      `toml:"widget" yaml:"widget"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	// Level is the minimum level ("debug", "info", "warn", "error").
	Level string `toml:"level" yaml:"level"`

	// File receives log output. Empty discards logs while the widget owns
	// the terminal.
	File string `toml:"file" yaml:"file"`

	// Format is "text" or "json".
	Format string `toml:"format" yaml:"format"`
}

// RenderConfig controls how widgets are painted.
type RenderConfig struct {
	// Mode is "styled" or "plain".
	Mode string `toml:"mode" yaml:"mode"`

	// TextColor is a color name or hex value. Empty uses the terminal
	// default.
	TextColor string `toml:"text_color" yaml:"text_color"`

	// CaretColor is a color name or hex value. Empty uses the terminal
	// default.
	CaretColor string `toml:"caret_color" yaml:"caret_color"`
}

// Widget is one typewriter animation and where it is drawn.
// Nil fields take the animation defaults.
type Widget struct {
	Strings             []string `toml:"strings" yaml:"strings"`
	Caret               *string  `toml:"caret" yaml:"caret"`
	TypingSpeed         *int     `toml:"typing_speed" yaml:"typing_speed"`
	BackspaceSpeed      *int     `toml:"backspace_speed" yaml:"backspace_speed"`
	PauseAfterTyping    *int     `toml:"pause_after_typing" yaml:"pause_after_typing"`
	PauseAfterBackspace *int     `toml:"pause_after_backspace" yaml:"pause_after_backspace"`
	EnableBlinking      *bool    `toml:"enable_blinking" yaml:"enable_blinking"`

	// Row and Col position the widget on screen. Width limits it; zero
	// extends to the right edge.
	Row   int `toml:"row" yaml:"row"`
	Col   int `toml:"col" yaml:"col"`
	Width int `toml:"width" yaml:"width"`
}

// Default returns the built-in configuration with no widgets.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: string(logging.FormatText),
		},
		Render: RenderConfig{
			Mode: renderer.ModeStyled.String(),
		},
	}
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Widgets = make([]Widget, len(c.Widgets))
	for i, w := range c.Widgets {
		out.Widgets[i] = w.clone()
	}
	return &out
}

// RenderMode returns the parsed render mode.
func (c *Config) RenderMode() (renderer.Mode, error) {
	return renderer.ParseMode(c.Render.Mode)
}

// TextStyle returns the style for widget text.
func (c *Config) TextStyle() (core.Style, error) {
	return colorStyle(c.Render.TextColor)
}

// CaretStyle returns the style for the caret.
func (c *Config) CaretStyle() (core.Style, error) {
	return colorStyle(c.Render.CaretColor)
}

func colorStyle(s string) (core.Style, error) {
	color, err := core.ParseColor(s)
	if err != nil {
		return core.DefaultStyle(), err
	}
	return core.DefaultStyle().WithForeground(color), nil
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() (logging.Level, error) {
	return logging.ParseLevel(c.Logging.Level)
}

// NewWidget returns a widget cycling through strs with default timing.
func NewWidget(strs ...string) Widget {
	return Widget{Strings: append([]string(nil), strs...)}
}

// Animation converts the widget to an animation configuration. Negative
// delays pass through unchanged; the animator clamps them.
func (w Widget) Animation() animator.Config {
	cfg := animator.DefaultConfig().WithStrings(w.Strings...)
	if w.Caret != nil {
		cfg.Caret = *w.Caret
	}
	if w.TypingSpeed != nil {
		cfg.TypingDelay = millis(*w.TypingSpeed)
	}
	if w.BackspaceSpeed != nil {
		cfg.BackspaceDelay = millis(*w.BackspaceSpeed)
	}
	if w.PauseAfterTyping != nil {
		cfg.PauseAfterTyping = millis(*w.PauseAfterTyping)
	}
	if w.PauseAfterBackspace != nil {
		cfg.PauseAfterBackspace = millis(*w.PauseAfterBackspace)
	}
	if w.EnableBlinking != nil {
		cfg.BlinkEnabled = *w.EnableBlinking
	}
	return cfg
}

func millis(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func (w Widget) clone() Widget {
	out := w
	out.Strings = append([]string(nil), w.Strings...)
	out.Caret = clonePtr(w.Caret)
	out.TypingSpeed = clonePtr(w.TypingSpeed)
	out.BackspaceSpeed = clonePtr(w.BackspaceSpeed)
	out.PauseAfterTyping = clonePtr(w.PauseAfterTyping)
	out.PauseAfterBackspace = clonePtr(w.PauseAfterBackspace)
	out.EnableBlinking = clonePtr(w.EnableBlinking)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr returns a pointer to v, for filling optional widget fields.
func Ptr[T any](v T) *T {
	return &v
}
