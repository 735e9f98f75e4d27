package commands

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	superburn "github.com/bittensor-church/superburn"
	"github.com/bittensor-church/superburn/client/evm"
	"github.com/bittensor-church/superburn/sink"
)

func CmdStake() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stake [contract]",
		Short: "Stake TAO to a validator hotkey via the Sink contract.",
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
			hotkeyHex, _ := cmd.Flags().GetString("hotkey-bytes32")
			hotkey, err := parseHotkeyHex(hotkeyHex)
			if err != nil {
				return err
			}
			amountStr, _ := cmd.Flags().GetString("amount-tao")
			amountTao, err := superburn.NewAmountTaoFromStr(amountStr)
			if err != nil {
				return err
			}
			amount := amountTao.ToRao()
			key, err := loadEvmKey(cmd)
			if err != nil {
				return err
			}

			client, err := evmClient(cmd.Context())
			if err != nil {
				return err
			}
			data, err := sink.PackStake(hotkey, netuid, amount)
			if err != nil {
				return err
			}

			fmt.Printf("Staking %s TAO to hotkey %s...\n", amountTao, hotkey)
			from := crypto.PubkeyToAddress(key.PublicKey)
			gasLimit := client.EstimateGasWithBuffer(cmd.Context(), ethereum.CallMsg{
				From: from,
				To:   &contract,
				Data: data,
			}, 1.1, evm.FallbackGasLimit)
			gasPrice, err := client.GasPrice(cmd.Context(), 0)
			if err != nil {
				return err
			}

			txHash, err := client.SubmitCall(cmd.Context(), key, contract, data, big.NewInt(0), gasLimit, gasPrice)
			if err != nil {
				return err
			}
			fmt.Printf("Sent tx: %s\n", txHash)

			receipt, err := client.WaitForReceipt(cmd.Context(), txHash)
			if err != nil {
				return err
			}
			return reportReceipt(cmd.Context(), client, txHash, receipt)
		},
	}
	cmd.Flags().String("hotkey-bytes32", "", "Hotkey as a 32-byte hex string (0x...).")
	cmd.Flags().String("amount-tao", "", "Amount of TAO to stake, e.g. 0.05.")
	_ = cmd.MarkFlagRequired("hotkey-bytes32")
	_ = cmd.MarkFlagRequired("amount-tao")
	return cmd
}
