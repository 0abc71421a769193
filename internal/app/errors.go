package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoWidgets indicates the configuration defines nothing to animate.
	ErrNoWidgets = errors.New("no widgets configured")

	// ErrNoBackend indicates styled mode was requested without a terminal
	// backend.
	ErrNoBackend = errors.New("styled mode requires a terminal backend")

	// ErrModeChange indicates a reload asked a running application to
	// switch between plain and styled mode.
	ErrModeChange = errors.New("render mode cannot change while running")
)

// InitError represents an initialization error.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// WidgetError reports a failure building one widget.
type WidgetError struct {
	Index int
	Err   error
}

func (e *WidgetError) Error() string {
	return fmt.Sprintf("widget %d: %v", e.Index, e.Err)
}

func (e *WidgetError) Unwrap() error {
	return e.Err
}
