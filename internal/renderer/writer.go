package renderer

import (
	"io"
	"sync"
)

// eraseLine returns the cursor to column 0 and clears the line.
const eraseLine = "\r\x1b[2K"

// WriterSurface paints onto a line of an io.Writer.
//
// In overwrite mode (the default) every update rewrites the current line,
// which animates in place on a terminal. In line mode every update is
// written on its own line, which suits pipes and log files.
type WriterSurface struct {
	mu       sync.Mutex
	w        io.Writer
	lineMode bool
	last     string
	err      error
}

// NewWriterSurface creates a surface writing to w.
func NewWriterSurface(w io.Writer, lineMode bool) *WriterSurface {
	return &WriterSurface{w: w, lineMode: lineMode}
}

// SetText writes text.
func (s *WriterSurface) SetText(text string) {
	s.write(text)
}

// ReplaceChildren writes the flattened nodes. Classes have no effect on a
// plain writer.
func (s *WriterSurface) ReplaceChildren(nodes ...Node) {
	s.write(Flatten(nodes))
}

func (s *WriterSurface) write(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return
	}
	s.last = text

	var out string
	if s.lineMode {
		out = text + "\n"
	} else {
		out = eraseLine + text
	}
	if _, err := io.WriteString(s.w, out); err != nil {
		s.err = err
	}
}

// Last returns the most recently written text.
func (s *WriterSurface) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Err returns the first write error. Once a write fails the surface stops
// writing.
func (s *WriterSurface) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Finish terminates the current line in overwrite mode.
func (s *WriterSurface) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lineMode || s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, "\n")
}
