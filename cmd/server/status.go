package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the ledger high-water mark and the effective capture flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.flags.Refresh(ctx); err != nil {
				return err
			}

			out := map[string]interface{}{
				"version":     opts.cfg.App.Version,
				"maxSequence": a.queue.MaxSequence(ctx),
				"webhookUrl":  a.notifier.WebhookURL(),
				"flags":       a.flags.GetStatus()["flags"],
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}
