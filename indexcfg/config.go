// Package indexcfg is the indexer's structured configuration: flag
// defaults and validation, following node/config.go's Config/
// DefaultConfig/ValidateConfig shape byte-for-byte so the CLI wiring
// in cmd/ord-indexer reads exactly like cmd/rubin-node/main.go.
package indexcfg

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
)

// Config is the full set of knobs cmd/ord-indexer exposes as flags.
type Config struct {
	Network    string `json:"network"`
	DataDir    string `json:"data_dir"`
	LogLevel   string `json:"log_level"`
	RPCHost    string `json:"rpc_host"`
	RPCUser    string `json:"rpc_user"`
	RPCPass    string `json:"rpc_pass"`
	FromHeight int64  `json:"from_height"`
}

var allowedLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// DefaultDataDir mirrors node/config.go's home-directory fallback.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".ord-indexer"
	}
	return filepath.Join(home, ".ord-indexer")
}

// DefaultConfig returns the indexer's zero-argument defaults.
func DefaultConfig() Config {
	return Config{
		Network:    "mainnet",
		DataDir:    DefaultDataDir(),
		LogLevel:   "info",
		RPCHost:    "127.0.0.1:8332",
		FromHeight: -1,
	}
}

// Validate checks cfg the way node.ValidateConfig checks its Config,
// returning the first violation found.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Network) == "" {
		return errors.New("network is required")
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		return errors.New("data_dir is required")
	}
	logLevel := strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if _, ok := allowedLogLevels[logLevel]; !ok {
		return fmt.Errorf("invalid log_level %q", cfg.LogLevel)
	}
	if strings.TrimSpace(cfg.RPCHost) == "" {
		return errors.New("rpc_host is required")
	}
	if _, _, err := net.SplitHostPort(cfg.RPCHost); err != nil {
		return fmt.Errorf("invalid rpc_host: %w", err)
	}
	if cfg.FromHeight < -1 {
		return errors.New("from_height must be >= -1")
	}
	return nil
}
