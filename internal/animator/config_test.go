package animator

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Caret != "|" {
		t.Errorf("Caret = %q, want %q", cfg.Caret, "|")
	}
	if cfg.TypingDelay != 100*time.Millisecond {
		t.Errorf("TypingDelay = %v", cfg.TypingDelay)
	}
	if cfg.BackspaceDelay != 50*time.Millisecond {
		t.Errorf("BackspaceDelay = %v", cfg.BackspaceDelay)
	}
	if cfg.PauseAfterTyping != time.Second {
		t.Errorf("PauseAfterTyping = %v", cfg.PauseAfterTyping)
	}
	if cfg.PauseAfterBackspace != 500*time.Millisecond {
		t.Errorf("PauseAfterBackspace = %v", cfg.PauseAfterBackspace)
	}
	if !cfg.BlinkEnabled {
		t.Error("BlinkEnabled should default to true")
	}
	if len(cfg.Strings) != 0 {
		t.Errorf("Strings = %v, want none", cfg.Strings)
	}
}

func TestWithStringsCopies(t *testing.T) {
	strs := []string{"a", "b"}
	cfg := DefaultConfig().WithStrings(strs...)
	strs[0] = "z"

	if cfg.Strings[0] != "a" {
		t.Error("WithStrings should copy its input")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		wantClamped []string
	}{
		{
			name: "all valid",
			cfg:  DefaultConfig(),
		},
		{
			name: "zero is valid",
			cfg:  Config{},
		},
		{
			name:        "negative typing",
			cfg:         Config{TypingDelay: -1},
			wantClamped: []string{"typing_speed"},
		},
		{
			name: "all negative",
			cfg: Config{
				TypingDelay:         -time.Second,
				BackspaceDelay:      -time.Second,
				PauseAfterTyping:    -time.Second,
				PauseAfterBackspace: -time.Second,
			},
			wantClamped: []string{"typing_speed", "backspace_speed", "pause_after_typing", "pause_after_backspace"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clamped := tt.cfg.Normalize()
			if diff := cmp.Diff(tt.wantClamped, clamped); diff != "" {
				t.Errorf("clamped mismatch (-want +got):\n%s", diff)
			}
			for _, d := range []time.Duration{got.TypingDelay, got.BackspaceDelay, got.PauseAfterTyping, got.PauseAfterBackspace} {
				if d < 0 {
					t.Errorf("delay %v still negative", d)
				}
			}
		})
	}
}

func TestNormalizeKeepsPositive(t *testing.T) {
	cfg := Config{TypingDelay: -5, BackspaceDelay: 7 * time.Millisecond}
	got, _ := cfg.Normalize()

	if got.TypingDelay != 0 {
		t.Errorf("TypingDelay = %v, want 0", got.TypingDelay)
	}
	if got.BackspaceDelay != 7*time.Millisecond {
		t.Errorf("BackspaceDelay = %v, want 7ms", got.BackspaceDelay)
	}
}
