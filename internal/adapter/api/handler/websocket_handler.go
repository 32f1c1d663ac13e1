package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"creacakes/internal/adapter/api/middleware"
	ws "creacakes/internal/infrastructure/websocket"
	"creacakes/internal/usecase"
	"creacakes/pkg/errors"
	"creacakes/pkg/logger"
	"creacakes/pkg/response"
)

type WebSocketHandler struct {
	wsManager      *ws.Manager
	quoteUseCase   *usecase.QuoteUseCase
	authMiddleware *middleware.AuthMiddleware
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, quoteUseCase *usecase.QuoteUseCase, authMiddleware *middleware.AuthMiddleware) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:      wsManager,
		quoteUseCase:   quoteUseCase,
		authMiddleware: authMiddleware,
	}
}

// SubscribeThread upgrades the connection and joins the quote's thread room.
// The token comes in as ?token= because browsers cannot set headers on
// WebSocket upgrades. Messages after the ?after= cursor are replayed before
// live delivery starts, so a reconnecting client never misses one.
func (h *WebSocketHandler) SubscribeThread(c echo.Context) error {
	quoteID := c.Param("id")

	token := c.QueryParam("token")
	if token == "" {
		return response.Error(c, errors.Unauthorized("Token query parameter is required", nil))
	}

	caller, err := h.authMiddleware.VerifyQueryToken(c, token)
	if err != nil {
		return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
	}

	if err := h.quoteUseCase.AuthorizeThread(c.Request().Context(), quoteID, caller, caller.IsAdmin()); err != nil {
		return response.Error(c, err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		UserID:  caller.ID,
		QuoteID: quoteID,
		Conn:    conn,
		Send:    make(chan ws.Frame, 256),
	}

	// Register before fetching the backlog: a message committed while we
	// read is then either in the backlog or queued live, and Replay's seq
	// watermark discards the overlap.
	h.wsManager.Register <- client

	afterSeq, _ := strconv.ParseInt(c.QueryParam("after"), 10, 64)
	backlog, err := h.quoteUseCase.Messages(c.Request().Context(), quoteID, caller, caller.IsAdmin(), afterSeq, 0)
	if err != nil {
		logger.Warn("Failed to load backlog for thread %s: %v", quoteID, err)
		h.wsManager.Unregister <- client
		conn.Close()
		return nil
	}

	frames := make([]ws.Frame, 0, len(backlog))
	for _, message := range backlog {
		payload, err := json.Marshal(message)
		if err != nil {
			logger.Warn("Failed to marshal backlog message %s: %v", message.ID, err)
			continue
		}
		frames = append(frames, ws.Frame{Seq: message.Seq, Data: payload})
	}

	// Backlog frames go straight to the connection; the Send buffer is
	// reserved for live traffic, so the replay length is unbounded.
	if err := client.Replay(frames); err != nil {
		h.wsManager.Unregister <- client
		conn.Close()
		return nil
	}

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
