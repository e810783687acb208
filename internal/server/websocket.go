// ============================================================================
// llrec - LL(1) Recognizer
// ============================================================================
//
// Package:     server
// Description: WebSocket endpoint streaming derivation steps live
// Author:      msto63
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	llerror "github.com/msto63/llrec/foundation/core/error"
	"github.com/msto63/llrec/foundation/ll1/parser"
	"github.com/msto63/llrec/internal/history/store"
	"github.com/msto63/llrec/pkg/core/logging"
)

// WebSocket upgrader with permissive settings for local use
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const wsIdleTimeout = 120 * time.Second

// WebSocketHandler streams trace events of parse requests
type WebSocketHandler struct {
	api    *Handler
	logger *logging.Logger
}

// NewWebSocketHandler creates a new WebSocket handler parsing through api
func NewWebSocketHandler(api *Handler, logger *logging.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		api:    api,
		logger: logger,
	}
}

// WSMessage represents a client message
type WSMessage struct {
	Type    string          `json:"type"`    // "parse", "ping"
	Payload json.RawMessage `json:"payload"` // Message-specific payload
}

// WSResponse represents a server message
type WSResponse struct {
	Type    string      `json:"type"`    // "event", "result", "error", "pong"
	Payload interface{} `json:"payload"` // Response-specific payload
}

// WSErrorPayload represents an error payload
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ServeHTTP handles the WebSocket upgrade
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	h.handleConnection(conn)
}

// handleConnection serves one connection. Requests are handled in order,
// so all writes happen on this goroutine.
func (h *WebSocketHandler) handleConnection(conn *websocket.Conn) {
	defer conn.Close()

	h.logger.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	conn.SetReadLimit(h.api.maxBodyBytes)
	conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))
		return nil
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read error", "error", err)
			} else {
				h.logger.Debug("WebSocket connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))

		switch msg.Type {
		case "ping":
			h.sendResponse(conn, WSResponse{Type: "pong"})

		case "parse":
			var req ParseRequest
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				h.sendError(conn, "invalid_payload", "Invalid parse payload")
				continue
			}
			h.handleParse(conn, req)

		default:
			h.sendError(conn, "unknown_type", "Unknown message type: "+msg.Type)
		}
	}
}

// handleParse streams every trace event followed by the result
func (h *WebSocketHandler) handleParse(conn *websocket.Conn, req ParseRequest) {
	tracer := parser.TracerFunc(func(ev parser.TraceEvent) {
		h.sendResponse(conn, WSResponse{Type: "event", Payload: ev})
	})

	resp, _, err := h.api.parse(req.Source, false, tracer, store.OriginWS)
	if err != nil {
		h.sendError(conn, strings.ToLower(string(llerror.GetCode(err))), err.Error())
		return
	}
	h.sendResponse(conn, WSResponse{Type: "result", Payload: resp})
}

// sendResponse sends a message via WebSocket
func (h *WebSocketHandler) sendResponse(conn *websocket.Conn, resp WSResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		h.logger.Error("WebSocket send error", "error", err)
	}
}

// sendError sends an error message via WebSocket
func (h *WebSocketHandler) sendError(conn *websocket.Conn, code, message string) {
	h.sendResponse(conn, WSResponse{
		Type: "error",
		Payload: WSErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}
