package events

import (
	"context"
	"time"

	gorillaWS "github.com/gorilla/websocket"

	"github.com/AlibekovAA/movie-watchlist/internal/common/constants"
	"github.com/AlibekovAA/movie-watchlist/internal/common/logger"
)

type Client struct {
	hub    *Hub
	conn   *gorillaWS.Conn
	userID int64
	send   chan []byte
	ctx    context.Context
	log    *logger.Logger
}

func NewClient(ctx context.Context, hub *Hub, conn *gorillaWS.Conn, userID int64, log *logger.Logger) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, constants.WebSocketSendBufSize),
		ctx:    ctx,
		log:    log,
	}
}

func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

// readPump only services control frames; subscribers never send data.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(constants.WebSocketMaxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(constants.WebSocketPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(constants.WebSocketPongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if gorillaWS.IsUnexpectedCloseError(err, gorillaWS.CloseGoingAway, gorillaWS.CloseAbnormalClosure) {
				c.log.WithFields(c.ctx, logger.Fields{
					"user_id": c.userID,
					"action":  "ws_read_error",
				}).Warnf("websocket read error: %v", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(constants.WebSocketPingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(constants.WebSocketWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(gorillaWS.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(gorillaWS.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(constants.WebSocketWriteWait))
			if err := c.conn.WriteMessage(gorillaWS.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
