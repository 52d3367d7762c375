// Package grpc exposes the ledger query surface over gRPC for
// programmatic clients that want typed requests instead of JSON-RPC.
package grpc

import (
	"fmt"
	"net"
)

// ServerConfig holds configuration for the gRPC server.
type ServerConfig struct {
	// Address is the listen address, e.g. "127.0.0.1:50051".
	Address string

	// MaxRecvMsgSize caps inbound message size in bytes.
	MaxRecvMsgSize int

	// MaxSendMsgSize caps outbound message size in bytes.
	MaxSendMsgSize int
}

// DefaultServerConfig returns a ServerConfig with default values.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:        "127.0.0.1:50051",
		MaxRecvMsgSize: 4 * 1024 * 1024,
		MaxSendMsgSize: 4 * 1024 * 1024,
	}
}

// Validate checks the configuration for obvious mistakes.
func (c *ServerConfig) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("address is required")
	}
	host, port, err := net.SplitHostPort(c.Address)
	if err != nil {
		return fmt.Errorf("invalid address format: %w", err)
	}
	if host == "" {
		return fmt.Errorf("host cannot be empty")
	}
	if port == "" {
		return fmt.Errorf("port cannot be empty")
	}
	if c.MaxRecvMsgSize <= 0 {
		return fmt.Errorf("max_recv_msg_size must be positive")
	}
	if c.MaxSendMsgSize <= 0 {
		return fmt.Errorf("max_send_msg_size must be positive")
	}
	return nil
}
