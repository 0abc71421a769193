package animator

import "errors"

// ErrAlreadyRunning is returned by Start when the animator is running.
var ErrAlreadyRunning = errors.New("animator already running")
