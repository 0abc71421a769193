package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/autotype/internal/config"
)

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	cfg.Widgets = []config.Widget{config.NewWidget("file"), config.NewWidget("second")}

	applyFlags(cfg, cliOptions{
		strings:     []string{"Hello", "World"},
		caret:       "_",
		typingSpeed: 30,
		noBlink:     true,
		mode:        "plain",
		set:         map[string]bool{"caret": true, "typing-speed": true, "mode": true},
	})

	if diff := cmp.Diff([]string{"Hello", "World"}, cfg.Widgets[0].Strings); diff != "" {
		t.Errorf("strings mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.Widgets[1].Strings[0]; got != "second" {
		t.Errorf("second widget strings changed to %q", got)
	}
	for i, w := range cfg.Widgets {
		anim := w.Animation()
		if anim.Caret != "_" || anim.TypingDelay.Milliseconds() != 30 || anim.BlinkEnabled {
			t.Errorf("widget %d: caret %q, typing %v, blink %v", i, anim.Caret, anim.TypingDelay, anim.BlinkEnabled)
		}
	}
	if cfg.Render.Mode != "plain" {
		t.Errorf("Mode = %q, want plain", cfg.Render.Mode)
	}
}

func TestApplyFlagsUnsetLeavesConfig(t *testing.T) {
	cfg := config.Default()
	w := config.NewWidget("x")
	w.TypingSpeed = config.Ptr(80)
	cfg.Widgets = []config.Widget{w}

	applyFlags(cfg, cliOptions{typingSpeed: 5, set: map[string]bool{}})

	if got := *cfg.Widgets[0].TypingSpeed; got != 80 {
		t.Errorf("TypingSpeed = %d, want 80", got)
	}
	if cfg.Render.Mode != "styled" {
		t.Errorf("Mode = %q, want styled", cfg.Render.Mode)
	}
}

func TestApplyFlagsCreatesWidget(t *testing.T) {
	cfg := config.Default()

	applyFlags(cfg, cliOptions{strings: []string{"only"}, set: map[string]bool{}})

	if len(cfg.Widgets) != 1 || cfg.Widgets[0].Strings[0] != "only" {
		t.Errorf("Widgets = %+v, want one widget typing %q", cfg.Widgets, "only")
	}
}
