package ui

type loopError struct {
	msg    string
	status int
}

func (e *loopError) Error() string {
	return e.msg
}

// Ignorable tells the caller not to report the error to the user
func (e *loopError) Ignorable() bool {
	return true
}

func (e *loopError) ExitStatus() int {
	return e.status
}

var (
	// ErrUserQuit is returned by Loop when the user quits
	ErrUserQuit error = &loopError{msg: "user quit", status: 0}

	// ErrInterrupted is returned by Loop when its context is canceled,
	// usually because a signal was received
	ErrInterrupted error = &loopError{msg: "interrupted", status: 130}
)
