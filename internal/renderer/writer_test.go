package renderer

import (
	"bytes"
	"errors"
	"testing"
)

func TestWriterSurfaceOverwrite(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterSurface(&buf, false)

	w.SetText("H_")
	w.ReplaceChildren(TextNode("Hi"), CaretNode("_", "autotype-blink"))
	w.Finish()

	want := eraseLine + "H_" + eraseLine + "Hi_" + "\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if w.Last() != "Hi_" {
		t.Errorf("Last() = %q, want %q", w.Last(), "Hi_")
	}
}

func TestWriterSurfaceLineMode(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterSurface(&buf, true)

	w.SetText("a")
	w.SetText("ab")
	w.Finish()

	if got := buf.String(); got != "a\nab\n" {
		t.Errorf("output = %q, want %q", got, "a\nab\n")
	}
}

type failingWriter struct {
	writes int
}

func (f *failingWriter) Write(p []byte) (int, error) {
	f.writes++
	return 0, errors.New("broken pipe")
}

func TestWriterSurfaceStopsAfterError(t *testing.T) {
	fw := &failingWriter{}
	w := NewWriterSurface(fw, true)

	w.SetText("a")
	w.SetText("b")
	w.Finish()

	if w.Err() == nil {
		t.Fatal("Err() should report the write failure")
	}
	if fw.writes != 1 {
		t.Errorf("writes = %d, want 1", fw.writes)
	}
	if w.Last() != "a" {
		t.Errorf("Last() = %q, want %q", w.Last(), "a")
	}
}
