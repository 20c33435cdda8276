package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/georgeji/change-bridge/internal/notifier"
	"github.com/georgeji/change-bridge/internal/repository"
)

var lifecycleStatuses = []string{
	notifier.StatusInstalled,
	notifier.StatusActivated,
	notifier.StatusDeactivated,
	notifier.StatusUninstalled,
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	var notifyInstalled bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the ledger and settings tables and seed default flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := repository.Migrate(ctx, a.db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			if err := a.flags.SeedDefaults(ctx); err != nil {
				return fmt.Errorf("seed flags: %w", err)
			}
			opts.logger.Info("Database migrated")

			if notifyInstalled {
				a.notifier.NotifyLifecycleStatus(ctx, notifier.StatusInstalled)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "migrated")
			return nil
		},
	}

	cmd.Flags().BoolVar(&notifyInstalled, "notify-installed", false, "send the installed lifecycle notification afterwards")
	return cmd
}

func newResetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete every ledger record and restart numbering at 1",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.queue.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ledger reset")
			return nil
		},
	}
}

func newNotifyStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "notify-status <status>",
		Short:     "Send a lifecycle status notification to the consumer",
		ValidArgs: lifecycleStatuses,
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := strings.ToLower(args[0])
			if !slices.Contains(lifecycleStatuses, status) {
				return fmt.Errorf("unknown status %q, expected one of %s", args[0], strings.Join(lifecycleStatuses, ", "))
			}

			ctx := cmd.Context()
			a, err := newApp(ctx, opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			outcome := a.notifier.NotifyLifecycleStatus(ctx, status)
			if !outcome.Success {
				return fmt.Errorf("notify %s failed (http %d): %w", status, outcome.HTTPStatus, outcome.Err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "notified %s (http %d)\n", status, outcome.HTTPStatus)
			return nil
		},
	}
}

func newUninstallCommand(opts *rootOptions) *cobra.Command {
	var keepData bool

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Notify the consumer and drop the bridge tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			a.notifier.NotifyLifecycleStatus(ctx, notifier.StatusUninstalled)

			if keepData {
				opts.logger.Info("Keeping bridge tables")
				fmt.Fprintln(cmd.OutOrStdout(), "uninstalled, data kept")
				return nil
			}
			if err := repository.Drop(ctx, a.db); err != nil {
				return fmt.Errorf("drop tables: %w", err)
			}
			opts.logger.Info("Bridge tables dropped", zap.Bool("keep_data", keepData))
			fmt.Fprintln(cmd.OutOrStdout(), "uninstalled")
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepData, "keep-data", false, "leave the ledger and settings tables in place")
	return cmd
}
