package hub

import "time"

// Hub acts as the messaging hub between components -- that is,
// it controls how the communication that goes through channels
// are handled.
//
// All channels are buffered. The viewer's event loop is the only
// consumer, and actions running on that loop are the main producers,
// so a send must never wait for the loop to come around.
type Hub struct {
	drawCh      chan *Payload[*DrawOptions]
	statusMsgCh chan *Payload[StatusMsg]
	pagingCh    chan *Payload[PagingRequest]
}

// Payload is a wrapper around the actual request value that needs
// to be passed.
type Payload[T any] struct {
	data T
}

// DrawOptions controls how the screen is drawn.
type DrawOptions struct {
	StatusOnly bool // draw only the status bar
	ForceSync  bool // force a full screen sync
}

// StatusMsg is a request to show a message in the status bar
type StatusMsg interface {
	Message() string
	Delay() time.Duration
	IsError() bool
}

type statusMsgReq struct {
	msg   string
	delay time.Duration
	err   bool
}
