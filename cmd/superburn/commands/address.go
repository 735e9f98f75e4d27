package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	superburn "github.com/bittensor-church/superburn"
	"github.com/bittensor-church/superburn/address"
)

func CmdConvertAddress() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "convert-address <h160>",
		Aliases: []string{"h160-to-ss58"},
		Short:   "Convert an EVM (H160) address to its SS58 coldkey.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetUint16("ss58-format")
			ss58, err := address.EncodeHex(args[0], format)
			if err != nil {
				return err
			}
			fmt.Println(ss58)
			return nil
		},
	}
	cmd.Flags().Uint16("ss58-format", superburn.SS58Format, "SS58 format of the target network.")
	return cmd
}

func CmdDecodeAddress() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode-address <ss58>",
		Short: "Decode and validate an SS58 address, printing its public key.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, pubkey, err := address.Decode(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("format: %d\n", format)
			fmt.Printf("pubkey: 0x%x\n", pubkey[:])
			return nil
		},
	}
	return cmd
}
