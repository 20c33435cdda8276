package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/georgeji/change-bridge/internal/config"
	applogger "github.com/georgeji/change-bridge/internal/logger"
)

// rootOptions global flags and the state loaded from them
type rootOptions struct {
	ConfigPath string

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCommand creates the change-bridge command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "change-bridge",
		Short: "Change ledger and webhook bridge for shop entity changes",
		Long: `change-bridge records entity changes raised by a shop platform in an ordered
ledger, notifies a consumer by webhook, and serves the ledger over HTTP and gRPC.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "config.yaml", "config file path")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newResetCommand(opts))
	cmd.AddCommand(newNotifyStatusCommand(opts))
	cmd.AddCommand(newUninstallCommand(opts))
	cmd.AddCommand(newStatusCommand(opts))
	cmd.AddCommand(newTailCommand(opts))

	return cmd
}

func (o *rootOptions) load() error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := applogger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	o.cfg = cfg
	o.logger = logger
	return nil
}
