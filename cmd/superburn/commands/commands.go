package commands

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	superburn "github.com/bittensor-church/superburn"
	"github.com/bittensor-church/superburn/address"
	"github.com/bittensor-church/superburn/client/evm"
	"github.com/bittensor-church/superburn/client/substrate"
	"github.com/bittensor-church/superburn/cmd/superburn/setup"
	"github.com/bittensor-church/superburn/config"
)

func evmClient(ctx context.Context) (*evm.Client, error) {
	runtime := setup.UnwrapRuntime(ctx)
	endpoints, err := runtime.Config.Endpoints()
	if err != nil {
		return nil, err
	}
	return evm.NewClient(ctx, endpoints.EvmRpc)
}

func substrateClient(ctx context.Context) (*substrate.Client, error) {
	runtime := setup.UnwrapRuntime(ctx)
	endpoints, err := runtime.Config.Endpoints()
	if err != nil {
		return nil, err
	}
	return substrate.NewClient(endpoints.SubstrateRpc)
}

// contractAddress resolves the Sink contract from the positional argument,
// falling back to the configured default.
func contractAddress(cmd *cobra.Command, args []string) (common.Address, error) {
	raw := ""
	if len(args) > 0 {
		raw = args[0]
	} else {
		raw = setup.UnwrapRuntime(cmd.Context()).Config.Contract
	}
	if raw == "" {
		return common.Address{}, fmt.Errorf("pass the Sink contract address or set it in the config file")
	}
	decoded, err := address.DecodeHex(raw)
	if err != nil || len(decoded) != address.EvmAddressLen {
		return common.Address{}, fmt.Errorf("invalid contract address %q", raw)
	}
	return common.BytesToAddress(decoded), nil
}

func requireNetuid(cmd *cobra.Command) (uint16, error) {
	netuid := setup.UnwrapRuntime(cmd.Context()).Config.Netuid
	if netuid == 0 {
		return 0, fmt.Errorf("pass --netuid or set it in the config file")
	}
	return netuid, nil
}

// loadEvmKey resolves the signing key from --private-key or PRIVATE_KEY.
func loadEvmKey(cmd *cobra.Command) (*ecdsa.PrivateKey, error) {
	runtime := setup.UnwrapRuntime(cmd.Context())
	keyHex, err := config.ResolvePrivateKey(runtime.Args.PrivateKey)
	if err != nil {
		return nil, err
	}
	key, err := crypto.HexToECDSA(address.TrimPrefixes(keyHex))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %v", err)
	}
	return key, nil
}

func parseHotkeyHex(raw string) (superburn.Hotkey, error) {
	var hotkey superburn.Hotkey
	decoded, err := address.DecodeHex(raw)
	if err != nil {
		return hotkey, fmt.Errorf("invalid hotkey format: %v", err)
	}
	if len(decoded) != len(hotkey) {
		return hotkey, fmt.Errorf("hotkey must be exactly %d bytes, got %d", len(hotkey), len(decoded))
	}
	copy(hotkey[:], decoded)
	return hotkey, nil
}

// reportReceipt prints the mined receipt and replays the call for a revert
// reason when the transaction failed.
func reportReceipt(ctx context.Context, client *evm.Client, txHash superburn.TxHash, receipt *types.Receipt) error {
	success := receipt.Status == types.ReceiptStatusSuccessful
	status := "FAILED"
	if success {
		status = "SUCCESS"
	}
	fmt.Printf("Status: %s\n", status)
	fmt.Printf("Gas used: %d\n", receipt.GasUsed)
	fmt.Printf("Block: %d\n", receipt.BlockNumber)

	if !success {
		fmt.Printf("Revert reason: %s\n", client.ExplainRevert(ctx, txHash, receipt))
		return fmt.Errorf("transaction %s reverted", txHash)
	}
	bz, _ := json.MarshalIndent(receipt, "", "  ")
	fmt.Println(string(bz))
	return nil
}
