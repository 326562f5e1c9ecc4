package hub

import (
	"context"
	"time"

	pdebug "github.com/lestrrat-go/pdebug"
)

// DefaultBufferSize is the capacity of each channel. The viewer loop is
// both the only reader and the main writer of these channels, so a
// single event handler must never send more than DefaultBufferSize
// messages to one channel: the send would wait for a reader that is
// busy running the handler. Handlers send at most a few today.
const DefaultBufferSize = 32

// NewPayload creates a new Payload with the given data
func NewPayload[T any](data T) *Payload[T] {
	return &Payload[T]{data: data}
}

// Data returns the underlying data.
func (p *Payload[T]) Data() T {
	return p.data
}

// New creates a new Hub struct
func New(bufsiz int) *Hub {
	if bufsiz <= 0 {
		bufsiz = DefaultBufferSize
	}
	return &Hub{
		drawCh:      make(chan *Payload[*DrawOptions], bufsiz),
		statusMsgCh: make(chan *Payload[StatusMsg], bufsiz),
		pagingCh:    make(chan *Payload[PagingRequest], bufsiz),
	}
}

type operationNameKey struct{}

// send is the low-level generic utility for sending typed payloads.
// It gives up when ctx is canceled.
func send[T any](ctx context.Context, ch chan *Payload[T], r *Payload[T]) {
	if pdebug.Enabled {
		g := pdebug.Marker("hub.send (name=%s)", ctx.Value(operationNameKey{}))
		defer g.End()
	}

	select {
	case <-ctx.Done():
	case ch <- r:
	}
}

// DrawCh returns the channel to redraw the terminal display
func (h *Hub) DrawCh() chan *Payload[*DrawOptions] {
	return h.drawCh
}

// SendDraw sends a request to redraw the terminal display
func (h *Hub) SendDraw(ctx context.Context, options *DrawOptions) {
	send(context.WithValue(ctx, operationNameKey{}, "send draw"), h.DrawCh(), NewPayload(options))
}

// SendDrawStatus sends a request to redraw the status bar only
func (h *Hub) SendDrawStatus(ctx context.Context) {
	send(context.WithValue(ctx, operationNameKey{}, "send draw status"), h.DrawCh(), NewPayload(&DrawOptions{StatusOnly: true}))
}

// StatusMsgCh returns the channel to update the status message
func (h *Hub) StatusMsgCh() chan *Payload[StatusMsg] {
	return h.statusMsgCh
}

func (r statusMsgReq) Message() string {
	return r.msg
}

func (r statusMsgReq) Delay() time.Duration {
	return r.delay
}

func (r statusMsgReq) IsError() bool {
	return r.err
}

// SendStatusMsg sends a string to be displayed in the status message
func (h *Hub) SendStatusMsg(ctx context.Context, q string) {
	h.SendStatusMsgAndClear(ctx, q, 0)
}

// SendStatusMsgAndClear sends a string to be displayed in the status message,
// as well as a delay until the message should be cleared
func (h *Hub) SendStatusMsgAndClear(ctx context.Context, q string, clearDelay time.Duration) {
	msg := statusMsgReq{msg: q, delay: clearDelay}
	send(context.WithValue(ctx, operationNameKey{}, "send status"), h.StatusMsgCh(), NewPayload[StatusMsg](msg))
}

// SendErrorMsg sends a string to be displayed in the status message
// as an error. Errors stay until they are replaced.
func (h *Hub) SendErrorMsg(ctx context.Context, q string) {
	msg := statusMsgReq{msg: q, err: true}
	send(context.WithValue(ctx, operationNameKey{}, "send error"), h.StatusMsgCh(), NewPayload[StatusMsg](msg))
}

// PagingCh returns the channel to page through the results
func (h *Hub) PagingCh() chan *Payload[PagingRequest] {
	return h.pagingCh
}

// SendPaging sends a request to move the view around
func (h *Hub) SendPaging(ctx context.Context, x PagingRequest) {
	send(context.WithValue(ctx, operationNameKey{}, "send paging"), h.PagingCh(), NewPayload(x))
}
