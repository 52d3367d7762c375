package config

import "github.com/spf13/viper"

// setDefaults registers the built-in defaults. They describe a
// standalone development node that keeps everything under ./data.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.rpc_address", "127.0.0.1:5005")
	v.SetDefault("server.grpc_address", "")
	v.SetDefault("server.request_timeout_seconds", 30)
	v.SetDefault("server.max_grpc_msg_size", 4*1024*1024)

	v.SetDefault("ledger.standalone", true)
	v.SetDefault("ledger.proxy_address", "0xaa00000000000000000000000000000000000000")
	v.SetDefault("ledger.skip_signature_verification", false)
	v.SetDefault("ledger.protocol_fee_address", "0xfe00000000000000000000000000000000000000")

	v.SetDefault("storage.backend", "pebble")
	v.SetDefault("storage.path", "data")

	v.SetDefault("history.driver", "sqlite")
	v.SetDefault("history.dsn", "")
	v.SetDefault("history.cache_size", 1024)

	v.SetDefault("snapshot.path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
}
