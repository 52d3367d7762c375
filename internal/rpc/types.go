package rpc

import (
	"context"
	"encoding/json"
)

// Request is the envelope for HTTP JSON-RPC calls.
// Format: {"method": "method_name", "params": [{...}]}
type Request struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params,omitempty"`
}

// Response is the envelope written back. Result carries the method
// output plus a "status" field, matching the websocket stream shape.
type Response struct {
	Result any `json:"result"`
}

// RpcError is a structured method error.
type RpcError struct {
	Code    string `json:"error"`
	Message string `json:"error_message"`
}

func NewRpcError(code, message string) *RpcError {
	return &RpcError{Code: code, Message: message}
}

func (e *RpcError) Error() string {
	return e.Code + ": " + e.Message
}

func RpcErrorMethodNotFound(method string) *RpcError {
	return NewRpcError("unknownCmd", "Unknown method: "+method)
}

func RpcErrorInvalidParams(message string) *RpcError {
	return NewRpcError("invalidParams", message)
}

func RpcErrorInternal(message string) *RpcError {
	return NewRpcError("internal", message)
}

// RpcContext carries request-scoped information into handlers.
type RpcContext struct {
	Context  context.Context
	ClientIP string

	// IsWebsocket marks requests arriving over the websocket feed,
	// where subscription methods are available.
	IsWebsocket bool

	// Session is non-nil for websocket requests.
	Session *WsSession
}

// MethodHandler is implemented by every RPC method.
type MethodHandler interface {
	Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError)
}

// MethodRegistry maps method names to handlers.
type MethodRegistry struct {
	methods map[string]MethodHandler
}

func NewMethodRegistry() *MethodRegistry {
	return &MethodRegistry{methods: make(map[string]MethodHandler)}
}

func (r *MethodRegistry) Register(name string, handler MethodHandler) {
	r.methods[name] = handler
}

func (r *MethodRegistry) Get(name string) (MethodHandler, bool) {
	handler, exists := r.methods[name]
	return handler, exists
}

func (r *MethodRegistry) List() []string {
	methods := make([]string, 0, len(r.methods))
	for name := range r.methods {
		methods = append(methods, name)
	}
	return methods
}
