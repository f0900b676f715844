// Package link maintains the duplex WebSocket connection to a ResoniteLink
// server and correlates asynchronous replies to their requests.
package link

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/websocket"
)

// Conn owns one WebSocket connection. Writes are serialized; a dedicated
// goroutine reads every inbound frame onto Messages for the life of the
// connection. When the connection ends, Messages is closed and Err reports
// why.
type Conn struct {
	ws  *websocket.Conn
	log *zap.Logger

	writeMu sync.Mutex
	msgs    chan []byte

	closeOnce  sync.Once
	deliberate atomic.Bool
	reason     error // valid after msgs is closed
}

// Dial connects to a ResoniteLink endpoint (ws://host:port) within timeout.
func Dial(endpoint string, timeout time.Duration, log *zap.Logger) (*Conn, error) {
	cfg, err := websocket.NewConfig(endpoint, "http://localhost/")
	if err != nil {
		return nil, fmt.Errorf("bad endpoint %q: %w", endpoint, err)
	}
	cfg.Dialer = &net.Dialer{Timeout: timeout}

	ws, err := websocket.DialConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", endpoint, err)
	}
	log.Info("connected", zap.String("endpoint", endpoint))

	c := &Conn{
		ws:   ws,
		log:  log,
		msgs: make(chan []byte, 16),
	}
	go c.readLoop()
	return c, nil
}

// Send writes one frame. At most one write is in flight at a time even
// when multiple logical callers submit concurrently.
func (c *Conn) Send(frame []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := websocket.Message.Send(c.ws, frame); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}

// Messages yields each inbound frame in arrival order. The channel is
// closed when the connection ends; Err then reports the reason.
func (c *Conn) Messages() <-chan []byte {
	return c.msgs
}

// Err returns the close reason. Only meaningful after Messages is closed:
// ErrClosed after a deliberate Close, ErrConnectionLost otherwise.
func (c *Conn) Err() error {
	return c.reason
}

// Close shuts the connection down. Pending reads unblock with ErrClosed.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.deliberate.Store(true)
		err = c.ws.Close()
	})
	return err
}

func (c *Conn) readLoop() {
	for {
		var frame []byte
		if err := websocket.Message.Receive(c.ws, &frame); err != nil {
			if c.deliberate.Load() {
				c.reason = ErrClosed
			} else {
				c.reason = fmt.Errorf("%w: %v", ErrConnectionLost, err)
				c.log.Warn("connection lost", zap.Error(err))
			}
			close(c.msgs)
			return
		}
		c.msgs <- frame
	}
}
