// Package ws streams pipeline progress events to connected browsers.
// The feed is broadcast-only: clients never send anything meaningful,
// the read side exists to notice disconnects.
package ws

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"

	"github.com/tnt-sales/docsync/internal/migrate"
)

const maxMessageSize = 32 * 1024

type ProgressFeed struct {
	clients  map[string]*feedClient
	register chan *feedClient

	wg sync.WaitGroup
	mu sync.RWMutex
}

func NewProgressFeed() *ProgressFeed {
	return &ProgressFeed{
		clients:  make(map[string]*feedClient),
		register: make(chan *feedClient),
	}
}

func (f *ProgressFeed) Run(ctx context.Context) {
	slog.Info("progress feed started")
	defer slog.Info("progress feed stopped")

	for {
		select {
		case client := <-f.register:
			f.mu.Lock()
			f.clients[client.id] = client
			slog.Debug("progress feed registered", "id", client.id, "total", len(f.clients))
			f.mu.Unlock()

			f.wg.Add(1)
			go client.start(context.Background())
			go func() {
				<-client.closed

				f.mu.Lock()
				defer f.mu.Unlock()

				delete(f.clients, client.id)
				slog.Debug("progress feed removed", "id", client.id, "total", len(f.clients))
				f.wg.Done()
			}()
		case <-ctx.Done():
			return
		}
	}
}

func (f *ProgressFeed) Shutdown(ctx context.Context) {
	f.mu.Lock()
	clients := make([]*feedClient, 0, len(f.clients))
	for _, client := range f.clients {
		clients = append(clients, client)
	}
	f.mu.Unlock()

	for _, client := range clients {
		go client.close()
	}

	f.wg.Wait()
	slog.Info("progress feed shutdown")
}

// Publish implements migrate.EventSink. Slow clients drop events rather
// than stall the pipeline.
func (f *ProgressFeed) Publish(event *migrate.Event) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, client := range f.clients {
		select {
		case client.tx <- event:
		default:
			slog.Warn("progress feed send buffer full", "id", client.id)
		}
	}
}

// Clients returns the number of connected listeners.
func (f *ProgressFeed) Clients() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.clients)
}

func (f *ProgressFeed) WebsocketHandler(ctx *gin.Context) {
	conn, err := websocket.Accept(ctx.Writer, ctx.Request, nil)
	if err != nil {
		ctx.PureJSON(http.StatusBadRequest, gin.H{
			"error": "websocket accept failed: " + err.Error(),
		})
		return
	}
	conn.SetReadLimit(maxMessageSize)

	f.register <- newFeedClient(conn)
}
