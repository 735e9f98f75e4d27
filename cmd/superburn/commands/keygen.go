package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	superburn "github.com/bittensor-church/superburn"
	"github.com/bittensor-church/superburn/address"
)

// Keypair is a fresh EVM account with its SS58 mirror.
type Keypair struct {
	PrivateKey string `json:"private_key"`
	PublicKey  string `json:"public_key"`
	Address    string `json:"address"`
	Ss58       string `json:"ss58"`
}

// GenerateKeypair creates a random secp256k1 key, its checksummed H160
// address and the SS58 coldkey the chain maps it to.
func GenerateKeypair(format uint16) (*Keypair, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generating key: %v", err)
	}
	evmAddress := crypto.PubkeyToAddress(key.PublicKey)
	ss58, err := address.EncodeHex(evmAddress.Hex(), format)
	if err != nil {
		return nil, err
	}
	return &Keypair{
		PrivateKey: hexutil.Encode(crypto.FromECDSA(key)),
		PublicKey:  hexutil.Encode(crypto.FromECDSAPub(&key.PublicKey)),
		Address:    evmAddress.Hex(),
		Ss58:       ss58,
	}, nil
}

func CmdKeygen() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new H160 keypair and its SS58 equivalent.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetUint16("ss58-format")
			output, _ := cmd.Flags().GetString("output")
			force, _ := cmd.Flags().GetBool("force")

			keypair, err := GenerateKeypair(format)
			if err != nil {
				return err
			}
			bz, _ := json.MarshalIndent(keypair, "", "  ")

			if output == "" {
				fmt.Println(string(bz))
				return nil
			}
			if _, err := os.Stat(output); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", output)
			}
			if err := os.WriteFile(output, bz, 0o600); err != nil {
				return fmt.Errorf("writing %s: %v", output, err)
			}
			fmt.Printf("wrote keypair to %s\n", output)
			return nil
		},
	}
	cmd.Flags().Uint16("ss58-format", superburn.SS58Format, "SS58 format of the target network.")
	cmd.Flags().String("output", "", "Write the keypair JSON to a file instead of stdout.")
	cmd.Flags().Bool("force", false, "Overwrite the output file if it already exists.")
	return cmd
}
