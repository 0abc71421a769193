package animator

import "time"

// Default timing and caret values.
const (
	DefaultCaret               = "|"
	DefaultTypingDelay         = 100 * time.Millisecond
	DefaultBackspaceDelay      = 50 * time.Millisecond
	DefaultPauseAfterTyping    = 1000 * time.Millisecond
	DefaultPauseAfterBackspace = 500 * time.Millisecond
)

// Config holds the immutable animation configuration.
type Config struct {
	// Strings is the ordered content cycle.
	Strings []string

	// Caret is the glyph painted after the visible text.
	// An empty caret paints nothing.
	Caret string

	// TypingDelay is the delay between typed characters.
	TypingDelay time.Duration

	// BackspaceDelay is the delay between erased characters.
	BackspaceDelay time.Duration

	// PauseAfterTyping is the hold time once a string is fully typed.
	PauseAfterTyping time.Duration

	// PauseAfterBackspace is the hold time once a string is fully erased.
	PauseAfterBackspace time.Duration

	// BlinkEnabled animates the caret in styled mode.
	BlinkEnabled bool
}

// DefaultConfig returns the default configuration with no strings.
func DefaultConfig() Config {
	return Config{
		Caret:               DefaultCaret,
		TypingDelay:         DefaultTypingDelay,
		BackspaceDelay:      DefaultBackspaceDelay,
		PauseAfterTyping:    DefaultPauseAfterTyping,
		PauseAfterBackspace: DefaultPauseAfterBackspace,
		BlinkEnabled:        true,
	}
}

// WithStrings returns a copy of the configuration cycling through strs.
func (c Config) WithStrings(strs ...string) Config {
	c.Strings = append([]string(nil), strs...)
	return c
}

// Normalize clamps negative delays to zero.
// It returns the adjusted configuration and the names of clamped fields.
func (c Config) Normalize() (Config, []string) {
	var clamped []string
	clamp := func(name string, d *time.Duration) {
		if *d < 0 {
			*d = 0
			clamped = append(clamped, name)
		}
	}
	clamp("typing_speed", &c.TypingDelay)
	clamp("backspace_speed", &c.BackspaceDelay)
	clamp("pause_after_typing", &c.PauseAfterTyping)
	clamp("pause_after_backspace", &c.PauseAfterBackspace)
	c.Strings = append([]string(nil), c.Strings...)
	return c, clamped
}
