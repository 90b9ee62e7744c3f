package events

import (
	"context"
	"encoding/json"

	"github.com/AlibekovAA/movie-watchlist/internal/common/constants"
	"github.com/AlibekovAA/movie-watchlist/internal/common/logger"
	"github.com/AlibekovAA/movie-watchlist/internal/movie/domain"
	"github.com/AlibekovAA/movie-watchlist/internal/observability/metrics"
)

// Hub fans watchlist events out to connected subscribers. The client set
// is owned by the Run goroutine; everything else talks to it over
// channels.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan domain.Event
	done       chan struct{}
	log        *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan domain.Event, constants.WebSocketSendBufSize),
		done:       make(chan struct{}),
		log:        log,
	}
}

func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish queues event for broadcast. It never blocks once the hub has
// stopped.
func (h *Hub) Publish(event domain.Event) {
	select {
	case h.broadcast <- event:
	case <-h.done:
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.clients[client] = struct{}{}
			metrics.WatchlistSubscribersActive.Inc()
			h.log.WithFields(client.ctx, logger.Fields{
				"user_id": client.userID,
				"total":   len(h.clients),
				"action":  "ws_register",
			}).Info("websocket client registered")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.remove(client)
				h.log.WithFields(client.ctx, logger.Fields{
					"user_id": client.userID,
					"total":   len(h.clients),
					"action":  "ws_unregister",
				}).Info("websocket client unregistered")
			}

		case event := <-h.broadcast:
			h.fanOut(event)
		}
	}
}

func (h *Hub) fanOut(event domain.Event) {
	payload, err := encodeEvent(event)
	if err != nil {
		h.log.WithFields(context.Background(), logger.Fields{
			"type":   string(event.Type),
			"action": "ws_event_marshal_failed",
		}).Errorf("websocket failed to marshal event: %v", err)
		return
	}

	metrics.WatchlistEventsBroadcast.WithLabelValues(string(event.Type)).Inc()

	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			h.remove(client)
			metrics.WatchlistSubscribersDropped.Inc()
			h.log.WithFields(client.ctx, logger.Fields{
				"user_id": client.userID,
				"action":  "ws_client_dropped",
			}).Warn("websocket client dropped: send buffer full")
		}
	}
}

func (h *Hub) remove(client *Client) {
	delete(h.clients, client)
	close(client.send)
	metrics.WatchlistSubscribersActive.Dec()
}

func (h *Hub) shutdown() {
	shutdownMsg, err := json.Marshal(WSMessage{Type: "shutdown"})
	if err != nil {
		shutdownMsg = nil
	}

	count := len(h.clients)
	for client := range h.clients {
		if shutdownMsg != nil {
			select {
			case client.send <- shutdownMsg:
			default:
			}
		}
		h.remove(client)
	}

	h.log.WithFields(context.Background(), logger.Fields{
		"clients": count,
		"action":  "ws_hub_shutdown",
	}).Info("websocket hub shutdown completed")
}
