package superburn

import "fmt"

// Address is an SS58 address on the subtensor chain, either a coldkey or a hotkey.
type Address string

// EvmAddress is a 0x-prefixed H160 address on the subtensor EVM layer.
type EvmAddress string

// TxHash is a transaction hash on either layer.
type TxHash string

// Hotkey is a validator hotkey public key as the Sink contract expects it.
type Hotkey [32]byte

func (h Hotkey) String() string {
	return fmt.Sprintf("0x%x", h[:])
}

// Network is a named subtensor deployment.
type Network string

const (
	Finney Network = "finney"
	Test   Network = "test"
	Local  Network = "local"
)

// SS58 format used by all subtensor networks.
const SS58Format = 42

// Endpoints are the RPC entrypoints for a network, one for each layer.
type Endpoints struct {
	// EVM JSON-RPC endpoint (http or ws)
	EvmRpc string
	// Substrate RPC endpoint (ws)
	SubstrateRpc string
}

var networkEndpoints = map[Network]Endpoints{
	Finney: {
		EvmRpc:       "https://lite.chain.opentensor.ai",
		SubstrateRpc: "wss://entrypoint-finney.opentensor.ai:443",
	},
	Test: {
		EvmRpc:       "https://test.chain.opentensor.ai",
		SubstrateRpc: "wss://test.finney.opentensor.ai:443",
	},
	Local: {
		EvmRpc:       "http://127.0.0.1:9944",
		SubstrateRpc: "ws://127.0.0.1:9944",
	},
}

// NetworkEndpoints resolves a network name to its well-known endpoints.
func NetworkEndpoints(network Network) (Endpoints, error) {
	endpoints, ok := networkEndpoints[network]
	if !ok {
		return Endpoints{}, fmt.Errorf("unknown network: %s (options: %s, %s, %s)", network, Finney, Test, Local)
	}
	return endpoints, nil
}
