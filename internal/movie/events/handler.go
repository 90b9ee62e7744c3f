package events

import (
	"context"
	"net/http"

	gorillaWS "github.com/gorilla/websocket"

	"github.com/AlibekovAA/movie-watchlist/internal/common/constants"
	commonhttp "github.com/AlibekovAA/movie-watchlist/internal/common/http"
	"github.com/AlibekovAA/movie-watchlist/internal/common/jwtverify"
	"github.com/AlibekovAA/movie-watchlist/internal/common/logger"
)

type Handler struct {
	hub      *Hub
	verifier *jwtverify.Verifier
	upgrader gorillaWS.Upgrader
	log      *logger.Logger
}

// NewHandler serves the subscription endpoint. Handshakes must come from
// allowedOrigin (or carry no Origin) and present a token in the
// Authorization header or the "token" query parameter.
func NewHandler(hub *Hub, verifier *jwtverify.Verifier, allowedOrigin string, log *logger.Logger) *Handler {
	return &Handler{
		hub:      hub,
		verifier: verifier,
		log:      log,
		upgrader: gorillaWS.Upgrader{
			ReadBufferSize:  constants.WebSocketReadBufferSize,
			WriteBufferSize: constants.WebSocketWriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowedOrigin || origin == "http://"+r.Host
			},
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx := r.Context()

	claims, err := jwtverify.Authenticate(r, h.verifier, h.log, true)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithFields(ctx, logger.Fields{
			"user_id": claims.ID,
			"action":  "ws_upgrade_failed",
		}).Warnf("websocket upgrade failed: %v", err)
		return
	}

	// The request context ends with this handler; the client outlives it.
	client := NewClient(context.WithoutCancel(ctx), h.hub, conn, claims.ID, h.log)
	if !h.hub.Register(client) {
		_ = conn.WriteMessage(gorillaWS.CloseMessage,
			gorillaWS.FormatCloseMessage(gorillaWS.CloseGoingAway, "shutting down"))
		_ = conn.Close()
		return
	}
	client.Start()
}
