package spectate

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/coder/websocket"
)

const (
	sendBuffer   = 32
	writeTimeout = 5 * time.Second
)

// Conn is one spectator. Frames are queued without blocking the game loop
// and written by WriteLoop.
type Conn struct {
	ws     *websocket.Conn
	sendCh chan []byte
	done   chan struct{}
	once   sync.Once
	ID     string
}

func NewConn(ws *websocket.Conn, id string) *Conn {
	return &Conn{
		ws:     ws,
		sendCh: make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
		ID:     id,
	}
}

// Send queues a frame. Returns false if the buffer is full and the frame was dropped.
func (c *Conn) Send(data []byte) bool {
	select {
	case c.sendCh <- data:
		return true
	default:
		return false
	}
}

// DiscardLoop reads and drops inbound messages until the peer goes away
func (c *Conn) DiscardLoop(ctx context.Context) {
	for {
		if _, _, err := c.ws.Read(ctx); err != nil {
			c.Close()
			return
		}
	}
}

func (c *Conn) WriteLoop(ctx context.Context) {
	for {
		select {
		case data := <-c.sendCh:
			ctx2, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.ws.Write(ctx2, websocket.MessageText, data)
			cancel()
			if err != nil {
				log.Printf("spectator %s: write error: %v", c.ID, err)
				c.Close()
				return
			}
		case <-c.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (c *Conn) Close() {
	c.once.Do(func() {
		close(c.done)
		c.ws.Close(websocket.StatusNormalClosure, "")
	})
}

func (c *Conn) Done() <-chan struct{} {
	return c.done
}
