package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protojson"

	pb "github.com/georgeji/change-bridge/proto"
)

type tailOptions struct {
	Addr        string
	From        uint64
	EntityTypes []string
}

func newTailCommand(opts *rootOptions) *cobra.Command {
	to := &tailOptions{}

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Follow the gRPC change feed and print one JSON line per notification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			addr := to.Addr
			if addr == "" {
				addr = fmt.Sprintf("127.0.0.1:%d", opts.cfg.GRPC.Port)
			}

			client, err := pb.Dial(ctx, addr, "tail-"+uuid.NewString())
			if err != nil {
				return err
			}
			defer client.Close()

			opts.logger.Info("Following change feed",
				zap.String("addr", addr),
				zap.Uint64("from", to.From),
				zap.Strings("entity_types", to.EntityTypes))

			out := cmd.OutOrStdout()
			return client.Follow(ctx, to.From, to.EntityTypes, func(n *pb.ChangeNotification) error {
				line, err := protojson.Marshal(n)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(line))
				return err
			})
		},
	}

	cmd.Flags().StringVar(&to.Addr, "addr", "", "feed address (default 127.0.0.1:<grpc.port>)")
	cmd.Flags().Uint64Var(&to.From, "from", 0, "replay records after this sequence; 0 follows live changes only")
	cmd.Flags().StringSliceVar(&to.EntityTypes, "entity", nil, "only these entity types (repeatable)")
	return cmd
}
