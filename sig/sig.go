// Package sig turns termination signals into the cancellation of a
// context.
package sig

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// ReceivedError is returned by Handler.Loop when a signal arrived
type ReceivedError struct {
	Signal os.Signal
}

func (e *ReceivedError) Error() string {
	return fmt.Sprintf("received signal: %s", e.Signal)
}

// Ignorable is true: the user asked for the program to end
func (e *ReceivedError) Ignorable() bool {
	return true
}

// ExitStatus follows the shell convention of 128 plus the signal
// number
func (e *ReceivedError) ExitStatus() int {
	if s, ok := e.Signal.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 1
}

type Handler struct {
	sigCh chan os.Signal
}

// New creates a handler for sigs (default: SIGTERM, SIGINT, SIGHUP).
// Signals are captured from this point on, until Loop returns.
func New(sigs ...os.Signal) *Handler {
	if len(sigs) == 0 {
		sigs = append(sigs, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	return &Handler{sigCh: ch}
}

// Loop waits for a signal or for ctx to be done, and calls cancel
// either way. It returns a *ReceivedError for a signal, and ctx.Err()
// otherwise.
func (h *Handler) Loop(ctx context.Context, cancel func()) error {
	defer cancel()
	defer signal.Stop(h.sigCh)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case s := <-h.sigCh:
		return &ReceivedError{Signal: s}
	}
}
