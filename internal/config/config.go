package config

import "time"

// Config holds server and client configuration values.
type Config struct {
	// Addr is the TCP listen address for the line-protocol chat server.
	Addr string `mapstructure:"addr" yaml:"addr"`
	// HTTPAddr enables the websocket transport when non-empty.
	HTTPAddr string `mapstructure:"http_addr" yaml:"http_addr"`
	// MaxLineBytes caps a single command or response frame.
	MaxLineBytes int `mapstructure:"max_line_bytes" yaml:"max_line_bytes"`
	// DialTimeout is used by the interactive client when connecting.
	DialTimeout     time.Duration `mapstructure:"dial_timeout" yaml:"dial_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel        string        `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:            ":31415",
		HTTPAddr:        "",
		MaxLineBytes:    102400,
		DialTimeout:     6 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		LogLevel:        "info",
	}
}
