package rpc

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WsCommand is one websocket request.
// Format: {"command": "method_name", "id": 1, ...params}
type WsCommand struct {
	Command string `json:"command"`
	ID      any    `json:"id,omitempty"`
}

// WsSession is one websocket connection. Writes are serialized so the
// event pump and command responses do not interleave frames.
type WsSession struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	mu          sync.Mutex
	unsubscribe func()
}

func (s *WsSession) writeJSON(v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(v)
}

// subscribeTransactions starts streaming transaction events to the
// session until the subscription or the connection is torn down.
func (s *WsSession) subscribeTransactions(publisher *service.EventPublisher) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsubscribe != nil {
		return false
	}
	events, cancel := publisher.Subscribe()
	s.unsubscribe = cancel
	go func() {
		for event := range events {
			message := map[string]any{
				"type":          "transaction",
				"tx_hash":       event.Hash,
				"tx_type":       event.TxType,
				"account":       event.Account,
				"engine_result": event.Result,
				"applied":       event.Applied,
			}
			if event.Meta != nil {
				message["meta"] = event.Meta
			}
			if err := s.writeJSON(message); err != nil {
				return
			}
		}
	}()
	return true
}

func (s *WsSession) unsubscribeTransactions() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsubscribe == nil {
		return false
	}
	s.unsubscribe()
	s.unsubscribe = nil
	return true
}

func (s *WsSession) close() {
	s.unsubscribeTransactions()
	s.conn.Close()
}

func isWebsocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}

// serveWebsocket upgrades the connection and serves commands until the
// peer goes away. The same method registry backs both transports.
func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	session := &WsSession{conn: conn}
	defer session.close()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var command WsCommand
		if err := json.Unmarshal(message, &command); err != nil || command.Command == "" {
			session.writeJSON(map[string]any{
				"type":          "response",
				"status":        "error",
				"error":         "jsonInvalid",
				"error_message": "Invalid websocket command",
			})
			continue
		}

		ctx := &RpcContext{
			Context:     r.Context(),
			ClientIP:    clientIP(r),
			IsWebsocket: true,
			Session:     session,
		}
		result, rpcErr := s.executeMethod(command.Command, message, ctx)

		response := map[string]any{"type": "response"}
		if command.ID != nil {
			response["id"] = command.ID
		}
		if rpcErr != nil {
			response["status"] = "error"
			response["error"] = rpcErr.Code
			response["error_message"] = rpcErr.Message
		} else {
			response["status"] = "success"
			response["result"] = result
		}
		session.writeJSON(response)
	}
}

// SubscribeMethod starts the transaction event stream on a websocket
// session.
type SubscribeMethod struct {
	services *Services
}

func (m *SubscribeMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	if !ctx.IsWebsocket || ctx.Session == nil {
		return nil, NewRpcError("notSupported", "subscribe is only available over websocket")
	}
	if !ctx.Session.subscribeTransactions(m.services.Ledger.Events()) {
		return nil, NewRpcError("alreadySubscribed", "session is already subscribed")
	}
	return map[string]any{"subscribed": true}, nil
}

// UnsubscribeMethod stops the transaction event stream.
type UnsubscribeMethod struct{}

func (m *UnsubscribeMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	if !ctx.IsWebsocket || ctx.Session == nil {
		return nil, NewRpcError("notSupported", "unsubscribe is only available over websocket")
	}
	if !ctx.Session.unsubscribeTransactions() {
		return nil, NewRpcError("notSubscribed", "session has no subscription")
	}
	return map[string]any{"subscribed": false}, nil
}
