package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bittensor-church/superburn/client/substrate"
	"github.com/bittensor-church/superburn/cmd/superburn/setup"
	"github.com/bittensor-church/superburn/config"
)

func CmdSetWeights() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-weights",
		Short: "Set validator weights for a subnet with an sr25519-signed extrinsic.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			netuid, err := requireNetuid(cmd)
			if err != nil {
				return err
			}
			uidsStr, _ := cmd.Flags().GetString("uids")
			weightsStr, _ := cmd.Flags().GetString("weights")
			uids, err := parseUids(uidsStr)
			if err != nil {
				return err
			}
			weights, err := parseWeights(weightsStr)
			if err != nil {
				return err
			}
			if len(uids) != len(weights) {
				return fmt.Errorf("have %d uids but %d weights", len(uids), len(weights))
			}

			if normalize, _ := cmd.Flags().GetBool("normalize"); normalize {
				weights, err = substrate.NormalizeWeights(weights)
				if err != nil {
					return err
				}
			}
			fixed, err := substrate.WeightsToFixed(weights)
			if err != nil {
				return err
			}
			versionKey, _ := cmd.Flags().GetUint64("version-key")

			fmt.Printf("netuid:  %d\n", netuid)
			for i := range uids {
				fmt.Printf("  uid %d -> %d\n", uids[i], fixed[i])
			}
			if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
				fmt.Println("dry run, not submitting")
				return nil
			}

			runtime := setup.UnwrapRuntime(cmd.Context())
			seed, err := config.ResolvePrivateKey(runtime.Args.PrivateKey)
			if err != nil {
				return err
			}
			signer, err := substrate.NewSignerFromSeed(seed)
			if err != nil {
				return err
			}

			client, err := substrateClient(cmd.Context())
			if err != nil {
				return err
			}
			waitFinalized, _ := cmd.Flags().GetBool("wait-finalized")
			return client.SetWeights(cmd.Context(), signer, substrate.SetWeightsArgs{
				Netuid:     netuid,
				Uids:       uids,
				Weights:    fixed,
				VersionKey: versionKey,
			}, waitFinalized)
		},
	}
	cmd.Flags().String("uids", "", "Comma-separated target UIDs, e.g. 0,1,2.")
	cmd.Flags().String("weights", "", "Comma-separated weights corresponding to the UIDs.")
	cmd.Flags().Bool("normalize", true, "Normalize weights to sum to 1.0 before conversion.")
	cmd.Flags().Uint64("version-key", 0, "Weights version key of the subnet.")
	cmd.Flags().Bool("dry-run", false, "Print the planned uids/weights without submitting.")
	cmd.Flags().Bool("wait-finalized", true, "Wait until the extrinsic is finalized.")
	_ = cmd.MarkFlagRequired("uids")
	_ = cmd.MarkFlagRequired("weights")
	return cmd
}

func parseUids(raw string) ([]uint16, error) {
	parts := strings.Split(raw, ",")
	uids := make([]uint16, 0, len(parts))
	for _, part := range parts {
		uid, err := strconv.ParseUint(strings.TrimSpace(part), 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid uid %q", part)
		}
		uids = append(uids, uint16(uid))
	}
	return uids, nil
}

func parseWeights(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	weights := make([]float64, 0, len(parts))
	for _, part := range parts {
		weight, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q", part)
		}
		weights = append(weights, weight)
	}
	return weights, nil
}
