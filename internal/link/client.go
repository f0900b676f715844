package link

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"vibebuilder/internal/protocol"
)

// DefaultTimeout bounds one request/reply exchange when the caller does
// not override it.
const DefaultTimeout = 10 * time.Second

type outcome struct {
	resp *protocol.Response
	err  error
}

// Client correlates requests with their asynchronous replies. Each request
// gets a fresh integer id and a single-fire delivery slot; the dispatch
// goroutine matches inbound frames by id. The timeout path and the
// dispatch path race to remove the pending entry, and only the remover
// delivers, so every request sees exactly one outcome.
type Client struct {
	conn    *Conn
	log     *zap.Logger
	timeout time.Duration

	mu      sync.Mutex
	pending map[int64]chan outcome
	nextID  int64
	closed  bool
	reason  error

	done chan struct{}
}

// NewClient starts the dispatch loop over conn. timeout <= 0 selects
// DefaultTimeout.
func NewClient(conn *Conn, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		conn:    conn,
		log:     log,
		timeout: timeout,
		pending: make(map[int64]chan outcome),
		done:    make(chan struct{}),
	}
	go c.dispatch()
	return c
}

// Call submits one request and waits for its outcome under the client's
// default timeout.
func (c *Client) Call(ctx context.Context, req protocol.Request) (*protocol.Response, error) {
	return c.CallTimeout(ctx, req, c.timeout)
}

// CallTimeout submits one request and waits until reply, timeout,
// cancellation, or connection loss, whichever comes first.
func (c *Client) CallTimeout(ctx context.Context, req protocol.Request, timeout time.Duration) (*protocol.Response, error) {
	id, ch, err := c.register()
	if err != nil {
		return nil, err
	}

	frame, err := protocol.EncodeRequest(id, req)
	if err != nil {
		c.take(id)
		return nil, err
	}
	if err := c.conn.Send(frame); err != nil {
		c.take(id)
		return nil, fmt.Errorf("%w: %v", ErrConnectionLost, err)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case out := <-ch:
		return finish(out)

	case <-timer.C:
		if _, ok := c.take(id); ok {
			c.log.Warn("request timed out",
				zap.String("op", req.MessageType()),
				zap.Int64("id", id),
				zap.Duration("timeout", timeout))
			return nil, fmt.Errorf("%s: %w", req.MessageType(), ErrTimeout)
		}
		// Lost the removal race: an outcome is already in the buffered slot.
		return finish(<-ch)

	case <-ctx.Done():
		c.take(id)
		return nil, ctx.Err()
	}
}

// Close tears down the connection and waits for the dispatch loop to fail
// any remaining pending requests.
func (c *Client) Close() error {
	err := c.conn.Close()
	<-c.done
	return err
}

func (c *Client) register() (int64, chan outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, nil, c.reason
	}
	id := c.nextID
	c.nextID++
	ch := make(chan outcome, 1)
	c.pending[id] = ch
	return id, ch, nil
}

// take removes the pending entry for id. The caller that succeeds owns
// outcome delivery for that request.
func (c *Client) take(id int64) (chan outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, ok := c.pending[id]
	if ok {
		delete(c.pending, id)
	}
	return ch, ok
}

func (c *Client) dispatch() {
	defer close(c.done)

	for frame := range c.conn.Messages() {
		resp, err := protocol.DecodeResponse(frame)
		if err != nil {
			c.log.Warn("discarding undecodable frame", zap.Error(err))
			continue
		}
		ch, ok := c.take(resp.ID)
		if !ok {
			// Late reply after timeout, or an id we never issued.
			c.log.Debug("discarding reply with no pending request", zap.Int64("id", resp.ID))
			continue
		}
		ch <- outcome{resp: resp}
	}

	reason := c.conn.Err()
	if reason == nil {
		reason = ErrConnectionLost
	}

	c.mu.Lock()
	c.closed = true
	c.reason = reason
	orphans := c.pending
	c.pending = make(map[int64]chan outcome)
	c.mu.Unlock()

	if len(orphans) > 0 {
		c.log.Warn("failing pending requests", zap.Int("count", len(orphans)), zap.Error(reason))
	}
	for _, ch := range orphans {
		ch <- outcome{err: reason}
	}
}

func finish(out outcome) (*protocol.Response, error) {
	if out.err != nil {
		return nil, out.err
	}
	resp := out.resp
	if !resp.Success {
		return resp, &RemoteError{Code: resp.ErrorCode, Message: resp.ErrorInfo}
	}
	return resp, nil
}
