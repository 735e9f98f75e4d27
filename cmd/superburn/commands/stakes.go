package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	superburn "github.com/bittensor-church/superburn"
	"github.com/bittensor-church/superburn/address"
	"github.com/bittensor-church/superburn/client/substrate"
)

func CmdStakes() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stakes",
		Short: "List validator stakes for a coldkey on a subnet.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			netuid, err := requireNetuid(cmd)
			if err != nil {
				return err
			}
			coldkey, err := resolveColdkey(cmd)
			if err != nil {
				return err
			}

			client, err := substrateClient(cmd.Context())
			if err != nil {
				return err
			}
			stakes, err := client.FetchValidatorStakes(cmd.Context(), coldkey, netuid)
			if err != nil {
				return err
			}
			if len(stakes) == 0 {
				fmt.Printf("No stake found for %s on netuid %d.\n", coldkey, netuid)
				return nil
			}

			for i, stake := range stakes {
				fmt.Printf("Validator %d:\n", i+1)
				fmt.Printf("  Hotkey:      %s\n", stake.Hotkey)
				fmt.Printf("  Stake (TAO): %s\n", stake.Amount.ToTao())
			}
			total := substrate.TotalStake(stakes)
			fmt.Printf("Total validators: %d\n", len(stakes))
			fmt.Printf("Total stake:      %s TAO\n", total.ToTao())
			return nil
		},
	}
	cmd.Flags().String("coldkey", "", "Coldkey SS58 address to inspect.")
	return cmd
}

// resolveColdkey takes --coldkey directly, or derives it from the configured
// Sink contract address.
func resolveColdkey(cmd *cobra.Command) (superburn.Address, error) {
	coldkey, _ := cmd.Flags().GetString("coldkey")
	if coldkey != "" {
		return superburn.Address(coldkey), nil
	}
	contract, err := contractAddress(cmd, nil)
	if err != nil {
		return "", fmt.Errorf("pass --coldkey or a contract to derive it from: %v", err)
	}
	derived, err := address.EncodeHex(contract.Hex(), superburn.SS58Format)
	if err != nil {
		return "", err
	}
	fmt.Printf("Derived SS58 coldkey from contract: %s\n", derived)
	return superburn.Address(derived), nil
}
