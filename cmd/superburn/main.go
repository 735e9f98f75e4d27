package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bittensor-church/superburn/cmd/superburn/commands"
	"github.com/bittensor-church/superburn/cmd/superburn/setup"
)

func CmdSuperburn() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "superburn",
		Short:        "Operate the SuperBurn sink contract on the subtensor EVM.",
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			args, err := setup.ArgsFromCmd(cmd)
			if err != nil {
				return err
			}
			setup.ConfigureLogger(args)

			cfg, err := setup.LoadConfig(args)
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"network": cfg.Network,
				"netuid":  cfg.Netuid,
			}).Info("configured")

			ctx := setup.WrapRuntime(cmd.Context(), &setup.Runtime{Config: cfg, Args: args})
			cmd.SetContext(ctx)
			return nil
		},
	}
	setup.AddArgs(cmd)

	cmd.AddCommand(commands.CmdConvertAddress())
	cmd.AddCommand(commands.CmdDecodeAddress())
	cmd.AddCommand(commands.CmdKeygen())
	cmd.AddCommand(commands.CmdBalance())
	cmd.AddCommand(commands.CmdSinkBalance())
	cmd.AddCommand(commands.CmdStakes())
	cmd.AddCommand(commands.CmdStake())
	cmd.AddCommand(commands.CmdUnstakeAndBurn())
	cmd.AddCommand(commands.CmdRegisterNeuron())
	cmd.AddCommand(commands.CmdSetWeights())

	return cmd
}

func main() {
	rootCmd := CmdSuperburn()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
