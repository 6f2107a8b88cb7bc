package ws

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"github.com/tnt-sales/docsync/internal/migrate"
)

const (
	writeTimeout   = 20 * time.Second
	shutdownReason = "shutdown"
)

type feedClient struct {
	id     string
	tx     chan *migrate.Event
	closed chan struct{}

	conn      *websocket.Conn
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func newFeedClient(conn *websocket.Conn) *feedClient {
	return &feedClient{
		id:     uuid.NewString(),
		tx:     make(chan *migrate.Event, 32),
		closed: make(chan struct{}),
		done:   make(chan struct{}),
		conn:   conn,
	}
}

func (c *feedClient) start(ctx context.Context) {
	slog.Debug("feed client start", "id", c.id)
	c.wg.Add(2)
	go c.writeLoop(ctx)
	go c.readLoop(ctx)
}

func (c *feedClient) close() {
	c.closeConnection(websocket.StatusNormalClosure, shutdownReason)
}

func (c *feedClient) closeConnection(status websocket.StatusCode, reason string) {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close(status, reason)

		c.wg.Wait()

		close(c.closed)
		slog.Debug("feed client closed", "id", c.id)
	})
}

// readLoop discards anything the client sends; its job is to notice the
// connection going away.
func (c *feedClient) readLoop(ctx context.Context) {
	defer func() {
		c.wg.Done()
		c.closeConnection(websocket.StatusNormalClosure, shutdownReason)
	}()

	for {
		_, _, err := c.conn.Read(ctx)
		if err != nil {
			if errors.Is(err, net.ErrClosed) || errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				// connection closed by client
			} else if status := websocket.CloseStatus(err); status != websocket.StatusNormalClosure && status != websocket.StatusNoStatusRcvd {
				slog.Warn("feed client reader", "error", err, "id", c.id)
			}
			return
		}

		select {
		case <-c.done:
			return
		default:
		}
	}
}

func (c *feedClient) writeLoop(ctx context.Context) {
	defer func() {
		c.wg.Done()
		c.closeConnection(websocket.StatusNormalClosure, shutdownReason)
	}()

	for {
		select {
		case event := <-c.tx:
			ctxWrite, cancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(ctxWrite, c.conn, event)
			cancel()

			if err != nil {
				slog.Error("feed client writer", "error", err, "id", c.id)
				return
			}

		case <-c.done:
			return

		case <-ctx.Done():
			return
		}
	}
}
