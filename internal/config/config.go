// Package config loads the daemon configuration from a TOML file,
// environment variables and built-in defaults, in that priority order.
package config

import (
	"path/filepath"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
)

// Config is the complete daemon configuration. It mirrors the layout
// of friendtechd.toml.
type Config struct {
	Server   ServerConfig   `toml:"server" mapstructure:"server"`
	Ledger   LedgerConfig   `toml:"ledger" mapstructure:"ledger"`
	Storage  StorageConfig  `toml:"storage" mapstructure:"storage"`
	History  HistoryConfig  `toml:"history" mapstructure:"history"`
	Snapshot SnapshotConfig `toml:"snapshot" mapstructure:"snapshot"`
	Log      LogConfig      `toml:"log" mapstructure:"log"`

	configPath string `toml:"-" mapstructure:"-"`
}

// ServerConfig holds the listen addresses for the client-facing
// surfaces.
type ServerConfig struct {
	// RPCAddress serves JSON-RPC over HTTP and the websocket feed.
	RPCAddress string `toml:"rpc_address" mapstructure:"rpc_address"`

	// GRPCAddress serves the gRPC query surface. Empty disables it.
	GRPCAddress string `toml:"grpc_address" mapstructure:"grpc_address"`

	// RequestTimeoutSeconds bounds a single RPC call.
	RequestTimeoutSeconds int `toml:"request_timeout_seconds" mapstructure:"request_timeout_seconds"`

	// MaxGRPCMsgSize caps gRPC message size in bytes, both directions.
	MaxGRPCMsgSize int `toml:"max_grpc_msg_size" mapstructure:"max_grpc_msg_size"`
}

// LedgerConfig holds the engine parameters.
type LedgerConfig struct {
	// Standalone runs against the built-in venue instead of an
	// external market.
	Standalone bool `toml:"standalone" mapstructure:"standalone"`

	// ProxyAddress is the custody proxy account, hex encoded.
	ProxyAddress string `toml:"proxy_address" mapstructure:"proxy_address"`

	// SkipSignatureVerification accepts unsigned submissions. Only
	// meaningful in standalone mode.
	SkipSignatureVerification bool `toml:"skip_signature_verification" mapstructure:"skip_signature_verification"`

	// ProtocolFeeAddress receives venue protocol fees in standalone
	// mode, hex encoded.
	ProtocolFeeAddress string `toml:"protocol_fee_address" mapstructure:"protocol_fee_address"`
}

// StorageConfig selects the ledger state backend.
type StorageConfig struct {
	// Backend is one of "pebble", "goleveldb" or "memory".
	Backend string `toml:"backend" mapstructure:"backend"`

	// Path is the root directory for backend databases.
	Path string `toml:"path" mapstructure:"path"`
}

// HistoryConfig selects the transaction history store.
type HistoryConfig struct {
	// Driver is "sqlite" or "postgres". Empty disables history.
	Driver string `toml:"driver" mapstructure:"driver"`

	// DSN is the driver connection string. For sqlite it defaults to
	// a file under storage.path.
	DSN string `toml:"dsn" mapstructure:"dsn"`

	// CacheSize is the in-memory record cache size. Zero disables it.
	CacheSize int `toml:"cache_size" mapstructure:"cache_size"`
}

// SnapshotConfig controls state snapshots.
type SnapshotConfig struct {
	// Path is the snapshot file. Empty disables snapshots.
	Path string `toml:"path" mapstructure:"path"`
}

// LogConfig controls log output.
type LogConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `toml:"level" mapstructure:"level"`

	// Pretty switches from JSON to console output.
	Pretty bool `toml:"pretty" mapstructure:"pretty"`
}

// ConfigPath returns the path this configuration was loaded from, or
// empty when built from defaults alone.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// ProxyAddress parses the configured custody proxy address.
func (c *Config) ProxyAddress() (types.Address, error) {
	return types.ParseAddress(c.Ledger.ProxyAddress)
}

// ProtocolFeeAddress parses the configured protocol fee address.
func (c *Config) ProtocolFeeAddress() (types.Address, error) {
	return types.ParseAddress(c.Ledger.ProtocolFeeAddress)
}

// HistoryDSN returns the configured DSN, defaulting sqlite to a file
// under the storage root.
func (c *Config) HistoryDSN() string {
	if c.History.DSN != "" {
		return c.History.DSN
	}
	if c.History.Driver == "sqlite" {
		return filepath.Join(c.Storage.Path, "history.db")
	}
	return ""
}
