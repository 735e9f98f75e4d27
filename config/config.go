// Package config resolves endpoints, netuid defaults and the signing key for
// the superburn CLI.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	superburn "github.com/bittensor-church/superburn"
)

// PrivateKeyEnv is the environment variable holding the EVM private key (or
// sr25519 seed for set-weights) when no flag is passed.
const PrivateKeyEnv = "PRIVATE_KEY"

// Config are the file-configurable defaults. Flags override every field.
type Config struct {
	// Network name: finney, test or local
	Network string `toml:"network"`
	// EVM JSON-RPC endpoint override
	EvmRpc string `toml:"evm_rpc"`
	// Substrate RPC endpoint override
	SubstrateRpc string `toml:"substrate_rpc"`
	// Default subnet netuid
	Netuid uint16 `toml:"netuid"`
	// Default Sink contract address
	Contract string `toml:"contract"`
}

// DefaultConfig targets the test network with no contract pinned.
func DefaultConfig() Config {
	return Config{
		Network: string(superburn.Test),
	}
}

// Load reads a TOML config file. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %v", path, err)
	}
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %v", path, err)
	}
	if cfg.Network == "" {
		cfg.Network = string(superburn.Test)
	}
	return cfg, nil
}

// Endpoints resolves the configured endpoints, applying per-layer overrides
// on top of the named network.
func (cfg Config) Endpoints() (superburn.Endpoints, error) {
	endpoints, err := superburn.NetworkEndpoints(superburn.Network(cfg.Network))
	if err != nil {
		if cfg.EvmRpc == "" && cfg.SubstrateRpc == "" {
			return superburn.Endpoints{}, err
		}
		// unknown network name is fine when both endpoints are explicit
		endpoints = superburn.Endpoints{}
	}
	if cfg.EvmRpc != "" {
		endpoints.EvmRpc = cfg.EvmRpc
	}
	if cfg.SubstrateRpc != "" {
		endpoints.SubstrateRpc = cfg.SubstrateRpc
	}
	if endpoints.EvmRpc == "" {
		return superburn.Endpoints{}, fmt.Errorf("no EVM RPC endpoint for network %q, set evm_rpc or --evm-rpc", cfg.Network)
	}
	if endpoints.SubstrateRpc == "" {
		return superburn.Endpoints{}, fmt.Errorf("no substrate RPC endpoint for network %q, set substrate_rpc or --substrate-rpc", cfg.Network)
	}
	return endpoints, nil
}

// ResolvePrivateKey returns the key from the flag value or the PRIVATE_KEY
// environment variable, normalized to carry a 0x prefix.
func ResolvePrivateKey(flagValue string) (string, error) {
	key := flagValue
	if key == "" {
		key = os.Getenv(PrivateKeyEnv)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("set %s env var or pass --private-key", PrivateKeyEnv)
	}
	if !strings.HasPrefix(key, "0x") {
		key = "0x" + key
	}
	return key, nil
}
