package commands

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	superburn "github.com/bittensor-church/superburn"
	"github.com/bittensor-church/superburn/address"
	"github.com/bittensor-church/superburn/client/evm"
	"github.com/bittensor-church/superburn/sink"
)

func CmdRegisterNeuron() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register-neuron [contract]",
		Short: "Register a hotkey as a neuron on a subnet via Sink.registerNeuron.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contract, err := contractAddress(cmd, args)
			if err != nil {
				return err
			}
			netuid, err := requireNetuid(cmd)
			if err != nil {
				return err
			}

			hotkeySs58, _ := cmd.Flags().GetString("hotkey-ss58")
			_, pubkey, err := address.Decode(hotkeySs58)
			if err != nil {
				return fmt.Errorf("invalid hotkey %q: %w", hotkeySs58, err)
			}
			hotkey := superburn.Hotkey(pubkey)
			fmt.Printf("SS58 hotkey decoded to bytes32: %s\n", hotkey)

			value, err := resolveBurnValue(cmd)
			if err != nil {
				return err
			}
			key, err := loadEvmKey(cmd)
			if err != nil {
				return err
			}

			client, err := evmClient(cmd.Context())
			if err != nil {
				return err
			}
			data, err := sink.PackRegisterNeuron(netuid, hotkey)
			if err != nil {
				return err
			}

			from := crypto.PubkeyToAddress(key.PublicKey)
			gasLimit, _ := cmd.Flags().GetUint64("gas-limit")
			if gasLimit == 0 {
				gasLimit = client.EstimateGasWithBuffer(cmd.Context(), ethereum.CallMsg{
					From:  from,
					To:    &contract,
					Value: value,
					Data:  data,
				}, 1.1, evm.FallbackGasLimit)
			}
			gasPriceWei, _ := cmd.Flags().GetUint64("gas-price")
			gasPrice := new(big.Int).SetUint64(gasPriceWei)
			if gasPriceWei == 0 {
				gasPrice, err = client.GasPrice(cmd.Context(), 0)
				if err != nil {
					return err
				}
			}

			txHash, err := client.SubmitCall(cmd.Context(), key, contract, data, value, gasLimit, gasPrice)
			if err != nil {
				return err
			}
			fmt.Printf("Sent registerNeuron tx: %s\n", txHash)

			noWait, _ := cmd.Flags().GetBool("no-wait")
			if noWait {
				return nil
			}
			receipt, err := client.WaitForReceipt(cmd.Context(), txHash)
			if err != nil {
				return err
			}
			return reportReceipt(cmd.Context(), client, txHash, receipt)
		},
	}
	cmd.Flags().String("hotkey-ss58", "", "SS58-formatted hotkey, converted to bytes32 automatically.")
	cmd.Flags().String("value-tao", "", "Amount of TAO to burn.")
	cmd.Flags().String("value-wei", "", "Amount to burn in raw transaction-value units.")
	cmd.Flags().Uint64("gas-limit", 0, "Explicit gas limit (default: estimate).")
	cmd.Flags().Uint64("gas-price", 0, "Gas price in wei (default: ask the node).")
	cmd.Flags().Bool("no-wait", false, "Do not wait for the transaction receipt.")
	_ = cmd.MarkFlagRequired("hotkey-ss58")
	cmd.MarkFlagsMutuallyExclusive("value-tao", "value-wei")
	cmd.MarkFlagsOneRequired("value-tao", "value-wei")
	return cmd
}

// resolveBurnValue reads the transaction value. The rao-scaled --value-tao
// conversion matches what the contract's precompile expects.
func resolveBurnValue(cmd *cobra.Command) (*big.Int, error) {
	if valueWei, _ := cmd.Flags().GetString("value-wei"); valueWei != "" {
		value, ok := new(big.Int).SetString(valueWei, 10)
		if !ok {
			return nil, fmt.Errorf("invalid --value-wei %q", valueWei)
		}
		return value, nil
	}
	valueTao, _ := cmd.Flags().GetString("value-tao")
	amount, err := superburn.NewAmountTaoFromStr(valueTao)
	if err != nil {
		return nil, err
	}
	rao := amount.ToRao()
	return rao.Int(), nil
}
