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
	"github.com/bittensor-church/superburn/client/substrate"
	"github.com/bittensor-church/superburn/sink"
)

func CmdUnstakeAndBurn() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unstake-and-burn [contract]",
		Short: "Unstake everything the Sink contract's coldkey has on a subnet and burn it.",
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
			forceGasGwei, _ := cmd.Flags().GetFloat64("force-gas-price-gwei")
			key, err := loadEvmKey(cmd)
			if err != nil {
				return err
			}

			client, err := evmClient(cmd.Context())
			if err != nil {
				return err
			}
			from := crypto.PubkeyToAddress(key.PublicKey)
			balance, err := client.FetchNativeBalance(cmd.Context(), from)
			if err != nil {
				return err
			}
			fmt.Printf("Wallet:  %s\n", from.Hex())
			fmt.Printf("Balance: %s TAO\n", superburn.NewAmountTaoFromWei(balance))
			if balance.Sign() == 0 {
				return fmt.Errorf("wallet %s has zero balance, cannot pay for gas", from.Hex())
			}

			// The contract holds the stake under its own derived coldkey.
			coldkey, err := address.EncodeHex(contract.Hex(), superburn.SS58Format)
			if err != nil {
				return fmt.Errorf("invalid contract address: %w", err)
			}
			fmt.Printf("Derived SS58 coldkey from contract: %s\n", coldkey)

			chain, err := substrateClient(cmd.Context())
			if err != nil {
				return err
			}
			stakes, err := chain.FetchValidatorStakes(cmd.Context(), superburn.Address(coldkey), netuid)
			if err != nil {
				return err
			}
			if len(stakes) == 0 {
				fmt.Printf("No stake found for %s on netuid %d.\n", coldkey, netuid)
				return nil
			}
			total := substrate.TotalStake(stakes)
			fmt.Printf("Found %d validators, %s TAO staked in total.\n", len(stakes), total.ToTao())

			hotkeys := make([]superburn.Hotkey, len(stakes))
			amounts := make([]superburn.AmountRao, len(stakes))
			for i, stake := range stakes {
				hotkeys[i] = stake.Hotkey
				amounts[i] = stake.Amount
			}
			data, err := sink.PackUnstakeAndBurn(hotkeys, netuid, amounts)
			if err != nil {
				return err
			}

			gasLimit := client.EstimateGasWithBuffer(cmd.Context(), ethereum.CallMsg{
				From: from,
				To:   &contract,
				Data: data,
			}, 1.2, evm.FallbackBatchGasLimit)
			gasPrice, err := client.GasPrice(cmd.Context(), forceGasGwei)
			if err != nil {
				return err
			}

			// refuse to submit when the worst-case fee exceeds the balance
			maxCost := new(big.Int).Mul(new(big.Int).SetUint64(gasLimit), gasPrice)
			fmt.Printf("Max fee: %s TAO\n", superburn.NewAmountTaoFromWei(maxCost))
			if balance.Cmp(maxCost) < 0 {
				return fmt.Errorf("insufficient funds for gas: balance %s < max fee %s (try --force-gas-price-gwei)",
					superburn.NewAmountTaoFromWei(balance), superburn.NewAmountTaoFromWei(maxCost))
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
	cmd.Flags().Float64("force-gas-price-gwei", 0, "Force a specific gas price in gwei instead of asking the node.")
	return cmd
}
