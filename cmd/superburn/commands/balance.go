package commands

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	superburn "github.com/bittensor-church/superburn"
	"github.com/bittensor-church/superburn/address"
)

func CmdBalance() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance <address>",
		Short: "Check the native TAO balance of an EVM address.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decoded, err := address.DecodeHex(args[0])
			if err != nil || len(decoded) != address.EvmAddressLen {
				return fmt.Errorf("invalid address %q", args[0])
			}
			client, err := evmClient(cmd.Context())
			if err != nil {
				return err
			}
			balance, err := client.FetchNativeBalance(cmd.Context(), common.BytesToAddress(decoded))
			if err != nil {
				return err
			}
			fmt.Printf("Balance: %s TAO\n", superburn.NewAmountTaoFromWei(balance))
			fmt.Printf("Balance (wei): %s\n", balance)
			return nil
		},
	}
	return cmd
}

func CmdSinkBalance() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sink-balance [contract]",
		Short: "Read Sink.getBalance() from a deployed contract.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contract, err := contractAddress(cmd, args)
			if err != nil {
				return err
			}
			client, err := evmClient(cmd.Context())
			if err != nil {
				return err
			}
			balance, err := client.FetchSinkBalance(cmd.Context(), contract)
			if err != nil {
				return err
			}
			fmt.Printf("Sink balance: %s TAO\n", superburn.NewAmountTaoFromWei(balance))
			fmt.Printf("Sink balance (wei): %s\n", balance)
			return nil
		},
	}
	return cmd
}
