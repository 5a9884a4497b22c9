package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Momin-Abdurrehman/HandCricket/internal/auth"
	"github.com/Momin-Abdurrehman/HandCricket/internal/service"
	"github.com/Momin-Abdurrehman/HandCricket/pkg/game"
)

const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = 54 * time.Second // Must be less than pongWait
	maxMsgSize  = 1024
	sendBufSize = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS handled by middleware; tighten in production
	},
}

// WSHandler serves a per-match WebSocket: each connection drives exactly
// one match, one turn per client message.
type WSHandler struct {
	matchSvc *service.MatchService
	jwtMgr   *auth.JWTManager
}

// NewWSHandler creates a WSHandler.
func NewWSHandler(matchSvc *service.MatchService, jwtMgr *auth.JWTManager) *WSHandler {
	return &WSHandler{matchSvc: matchSvc, jwtMgr: jwtMgr}
}

// wsConn is one live match connection.
type wsConn struct {
	conn    *websocket.Conn
	guestID string
	matchID string
	send    chan []byte
}

// wsClientMessage is what the client sends: one move per message.
type wsClientMessage struct {
	Move int `json:"move"`
}

// wsServerMessage is the envelope for every server-to-client message.
type wsServerMessage struct {
	Type  string              `json:"type"` // connected, turn, error
	State *game.State         `json:"state,omitempty"`
	Turn  *service.TurnOutput `json:"turn,omitempty"`
	Error string              `json:"error,omitempty"`
}

// ServeWS handles GET /api/v1/ws?match={id}&token={jwt} and upgrades to
// WebSocket. Auth via query parameter (WebSocket can't send headers).
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, `{"error":"missing token parameter"}`, http.StatusUnauthorized)
		return
	}
	claims, err := h.jwtMgr.ValidateToken(tokenStr)
	if err != nil {
		http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
		return
	}

	matchID := r.URL.Query().Get("match")
	view, err := h.matchSvc.GetMatch(r.Context(), matchID)
	if err != nil {
		http.Error(w, `{"error":"match not found"}`, http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	c := &wsConn{
		conn:    conn,
		guestID: claims.GuestID,
		matchID: matchID,
		send:    make(chan []byte, sendBufSize),
	}
	c.enqueue(wsServerMessage{Type: "connected", State: &view.State})
	log.Info().Str("guestId", c.guestID).Str("matchId", matchID).Msg("WebSocket client connected")

	go h.writePump(c)
	h.readPump(c)
}

// readPump reads client moves and plays them through the match service.
func (h *WSHandler) readPump(c *wsConn) {
	defer func() {
		close(c.send)
		log.Info().Str("guestId", c.guestID).Str("matchId", c.matchID).Msg("WebSocket client disconnected")
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("guestId", c.guestID).Msg("WebSocket unexpected close")
			}
			return
		}

		var msg wsClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.enqueue(wsServerMessage{Type: "error", Error: "invalid message"})
			continue
		}

		out, err := h.matchSvc.PlayTurn(context.Background(), c.matchID, msg.Move)
		if err != nil {
			switch {
			case errors.Is(err, game.ErrInvalidMove):
				c.enqueue(wsServerMessage{Type: "error", Error: err.Error()})
			case errors.Is(err, game.ErrMatchOver):
				c.enqueue(wsServerMessage{Type: "error", Error: "match is already over"})
			default:
				c.enqueue(wsServerMessage{Type: "error", Error: "internal error"})
				log.Error().Err(err).Str("matchId", c.matchID).Msg("WebSocket turn failed")
			}
			continue
		}
		c.enqueue(wsServerMessage{Type: "turn", Turn: out, State: &out.State})
	}
}

// writePump is the single writer on the connection: it drains the send
// queue and keeps the connection alive with pings.
func (h *WSHandler) writePump(c *wsConn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *wsConn) enqueue(msg wsServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Msg("marshal ws message")
		return
	}
	select {
	case c.send <- data:
	default:
		log.Warn().Str("matchId", c.matchID).Msg("WebSocket send buffer full, dropping message")
	}
}
