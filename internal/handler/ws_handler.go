package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/config"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/middleware"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	ws "github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams request lifecycle events to admin views.
type WSHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// RequestFeed godoc
// WS /ws/v1/admin/requests?token=...
// Relays every created, approved and declined request event until the
// client disconnects.
func (h *WSHandler) RequestFeed(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok || !actor.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access only"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("admin_id", actor.UserID.String()).Logger()

	ctx := c.Request.Context()
	channel := config.CacheKey.RequestEventsChannel()
	sub := h.rdb.Subscribe(ctx, channel)
	defer sub.Close()

	// Receive blocks until the subscription is confirmed so no event published
	// after "ready" is missed.
	if _, err := sub.Receive(ctx); err != nil {
		wsLog.Error().Err(err).Msg("Subscribe failed")
		ws.WriteError(conn, "live feed unavailable")
		return
	}
	if err := ws.WriteTyped(conn, ws.ReadyResponse{Event: ws.EventReady, Channel: channel}); err != nil {
		return
	}

	wsLog.Info().Msg("Admin feed connected")

	// gorilla/websocket allows one concurrent writer, so the reader goroutine
	// hands pings back to this loop instead of answering them itself.
	pings := make(chan struct{}, 1)
	closed := make(chan struct{})
	ws.KeepAlive(conn)
	go h.readLoop(conn, wsLog, pings, closed)

	heartbeat := time.NewTicker(ws.PingPeriod)
	defer heartbeat.Stop()

	messages := sub.Channel()
	for {
		select {
		case <-closed:
			wsLog.Debug().Msg("Connection closed")
			return
		case <-heartbeat.C:
			if err := ws.WritePing(conn); err != nil {
				return
			}
		case <-pings:
			if err := ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong}); err != nil {
				return
			}
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var event model.RequestEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				wsLog.Warn().Err(err).Msg("Dropping malformed request event")
				continue
			}
			if err := ws.WriteTyped(conn, ws.RequestResponse{Event: ws.EventRequest, Payload: event}); err != nil {
				wsLog.Debug().Err(err).Msg("Write failed")
				return
			}
		}
	}
}

func (h *WSHandler) readLoop(conn *websocket.Conn, wsLog zerolog.Logger, pings chan<- struct{}, closed chan<- struct{}) {
	defer close(closed)
	for {
		var msg ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			}
			return
		}

		switch msg.Action {
		case ws.ActionPing:
			select {
			case pings <- struct{}{}:
			default:
			}
		default:
			wsLog.Debug().Str("action", string(msg.Action)).Msg("Ignoring unknown action")
		}
	}
}
