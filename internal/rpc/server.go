// Package rpc serves the node's JSON-RPC surface over HTTP and a
// websocket event feed. Methods are registered by name in the
// MethodRegistry so handlers stay independent small units.
package rpc

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger/service"
)

// Services gives handlers access to the node's core services.
type Services struct {
	Ledger *service.Service
}

// Server handles HTTP JSON-RPC requests.
type Server struct {
	registry *MethodRegistry
	services *Services
	timeout  time.Duration
	logger   zerolog.Logger
}

func NewServer(services *Services, timeout time.Duration, logger zerolog.Logger) *Server {
	server := &Server{
		registry: NewMethodRegistry(),
		services: services,
		timeout:  timeout,
		logger:   logger.With().Str("component", "rpc").Logger(),
	}
	server.registerAllMethods()
	return server
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		if isWebsocketUpgrade(r) {
			s.serveWebsocket(w, r)
			return
		}
		s.handleGet(w, r)
	case http.MethodPost:
		s.handlePost(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleGet serves simple parameterless queries like
// GET /?command=server_info.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Query().Get("command")
	if method == "" {
		method = "server_info"
	}
	result, rpcErr := s.executeMethod(method, nil, s.newContext(r))
	s.writeResponse(w, result, rpcErr)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeResponse(w, nil, RpcErrorInternal("failed to read request body"))
		return
	}
	defer r.Body.Close()

	var request Request
	if err := json.Unmarshal(body, &request); err != nil {
		s.writeResponse(w, nil, NewRpcError("jsonInvalid", "Invalid JSON: "+err.Error()))
		return
	}
	if request.Method == "" {
		s.writeResponse(w, nil, NewRpcError("missingCommand", "Missing method field"))
		return
	}

	var params json.RawMessage
	if len(request.Params) > 0 {
		params = request.Params[0]
	}
	result, rpcErr := s.executeMethod(request.Method, params, s.newContext(r))
	s.writeResponse(w, result, rpcErr)
}

func (s *Server) newContext(r *http.Request) *RpcContext {
	return &RpcContext{
		Context:  r.Context(),
		ClientIP: clientIP(r),
	}
}

func (s *Server) executeMethod(method string, params json.RawMessage, ctx *RpcContext) (any, *RpcError) {
	handler, exists := s.registry.Get(method)
	if !exists {
		return nil, RpcErrorMethodNotFound(method)
	}
	start := time.Now()
	result, rpcErr := handler.Handle(ctx, params)
	event := s.logger.Debug().Str("method", method).Dur("elapsed", time.Since(start))
	if rpcErr != nil {
		event.Str("error", rpcErr.Code)
	}
	event.Msg("rpc call")
	return result, rpcErr
}

// writeResponse wraps the result the way clients expect: the payload
// plus a status field, or the error fields with status "error".
func (s *Server) writeResponse(w http.ResponseWriter, result any, rpcErr *RpcError) {
	w.Header().Set("Content-Type", "application/json")

	var body map[string]any
	if rpcErr != nil {
		body = map[string]any{
			"status":        "error",
			"error":         rpcErr.Code,
			"error_message": rpcErr.Message,
		}
	} else {
		body = map[string]any{"status": "success"}
		if result != nil {
			raw, err := json.Marshal(result)
			if err != nil {
				s.writeResponse(w, nil, RpcErrorInternal("failed to encode result"))
				return
			}
			var fields map[string]any
			if err := json.Unmarshal(raw, &fields); err == nil {
				for k, v := range fields {
					body[k] = v
				}
			} else {
				body["result"] = result
			}
		}
	}
	json.NewEncoder(w).Encode(Response{Result: body})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
