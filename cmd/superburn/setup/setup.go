package setup

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bittensor-church/superburn/config"
)

type ContextKey string

const ContextConfig ContextKey = "config"

// Args are the persistent flags shared by every command.
type Args struct {
	ConfigPath     string
	Network        string
	EvmRpc         string
	SubstrateRpc   string
	Netuid         uint16
	Contract       string
	PrivateKey     string
	VerbosityCount int
}

func AddArgs(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "Path to a TOML config file with defaults.")
	cmd.PersistentFlags().String("network", "", "Network name: finney, test or local (default: test).")
	cmd.PersistentFlags().String("evm-rpc", "", "Override the EVM JSON-RPC endpoint.")
	cmd.PersistentFlags().String("substrate-rpc", "", "Override the substrate RPC endpoint.")
	cmd.PersistentFlags().Uint16("netuid", 0, "Subnet netuid.")
	cmd.PersistentFlags().String("contract", "", "Sink contract address (0x...).")
	cmd.PersistentFlags().String("private-key", "", "Signing key (defaults to the "+config.PrivateKeyEnv+" env var).")
	cmd.PersistentFlags().CountP("verbose", "v", "Set verbosity (-v info, -vv debug, -vvv trace).")
}

func ArgsFromCmd(cmd *cobra.Command) (*Args, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	network, _ := cmd.Flags().GetString("network")
	evmRpc, _ := cmd.Flags().GetString("evm-rpc")
	substrateRpc, _ := cmd.Flags().GetString("substrate-rpc")
	netuid, _ := cmd.Flags().GetUint16("netuid")
	contract, _ := cmd.Flags().GetString("contract")
	privateKey, _ := cmd.Flags().GetString("private-key")
	verbosity, _ := cmd.Flags().GetCount("verbose")
	return &Args{
		ConfigPath:     configPath,
		Network:        network,
		EvmRpc:         evmRpc,
		SubstrateRpc:   substrateRpc,
		Netuid:         netuid,
		Contract:       contract,
		PrivateKey:     privateKey,
		VerbosityCount: verbosity,
	}, nil
}

func ConfigureLogger(args *Args) {
	if args.VerbosityCount == 0 {
		logrus.SetLevel(logrus.WarnLevel)
	}
	if args.VerbosityCount == 1 {
		logrus.SetLevel(logrus.InfoLevel)
	}
	if args.VerbosityCount == 2 {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if args.VerbosityCount >= 3 {
		logrus.SetLevel(logrus.TraceLevel)
	}
}

// LoadConfig reads the config file and applies flag overrides on top.
func LoadConfig(args *Args) (*config.Config, error) {
	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		return nil, err
	}
	if args.Network != "" {
		cfg.Network = args.Network
	}
	if args.EvmRpc != "" {
		cfg.EvmRpc = args.EvmRpc
	}
	if args.SubstrateRpc != "" {
		cfg.SubstrateRpc = args.SubstrateRpc
	}
	if args.Netuid != 0 {
		cfg.Netuid = args.Netuid
	}
	if args.Contract != "" {
		cfg.Contract = args.Contract
	}
	return &cfg, nil
}

// Runtime is what commands unwrap from the cobra context.
type Runtime struct {
	Config *config.Config
	Args   *Args
}

func WrapRuntime(ctx context.Context, runtime *Runtime) context.Context {
	return context.WithValue(ctx, ContextConfig, runtime)
}

func UnwrapRuntime(ctx context.Context) *Runtime {
	return ctx.Value(ContextConfig).(*Runtime)
}
