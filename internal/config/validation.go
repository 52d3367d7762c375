package config

import (
	"fmt"
	"net"

	"github.com/Manifold-MEV/friendtech-presale/internal/storage"
)

// Validate checks a loaded configuration for mistakes that would only
// surface later as confusing runtime failures.
func Validate(c *Config) error {
	if c.Server.RPCAddress == "" {
		return fmt.Errorf("server.rpc_address is required")
	}
	if _, _, err := net.SplitHostPort(c.Server.RPCAddress); err != nil {
		return fmt.Errorf("invalid server.rpc_address: %w", err)
	}
	if c.Server.GRPCAddress != "" {
		if _, _, err := net.SplitHostPort(c.Server.GRPCAddress); err != nil {
			return fmt.Errorf("invalid server.grpc_address: %w", err)
		}
	}
	if c.Server.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("server.request_timeout_seconds must be positive")
	}
	if c.Server.MaxGRPCMsgSize <= 0 {
		return fmt.Errorf("server.max_grpc_msg_size must be positive")
	}

	if _, err := c.ProxyAddress(); err != nil {
		return fmt.Errorf("invalid ledger.proxy_address: %w", err)
	}
	if c.Ledger.Standalone {
		if _, err := c.ProtocolFeeAddress(); err != nil {
			return fmt.Errorf("invalid ledger.protocol_fee_address: %w", err)
		}
	}

	switch c.Storage.Backend {
	case storage.BackendPebble, storage.BackendLevelDB, storage.BackendMemory:
	default:
		return fmt.Errorf("unknown storage.backend: %q", c.Storage.Backend)
	}
	if c.Storage.Backend != storage.BackendMemory && c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required for backend %q", c.Storage.Backend)
	}

	switch c.History.Driver {
	case "", "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown history.driver: %q", c.History.Driver)
	}
	if c.History.Driver == "postgres" && c.History.DSN == "" {
		return fmt.Errorf("history.dsn is required for the postgres driver")
	}
	if c.History.CacheSize < 0 {
		return fmt.Errorf("history.cache_size cannot be negative")
	}

	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log.level: %q", c.Log.Level)
	}
	return nil
}
