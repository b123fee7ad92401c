package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dschema/internal/logging"
	"dschema/internal/metrics"
	"dschema/internal/mockserver"
)

func newMockServerCmd(opts *options) *cobra.Command {
	var (
		listen   string
		feedBase string
	)

	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Run a local calendar link service for development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if err := logging.Console(cfg.Log, cmd.ErrOrStderr()); err != nil {
				return err
			}

			if !cmd.Flags().Changed("listen") {
				listen = cfg.Mock.Listen
			}
			if !cmd.Flags().Changed("feed-base") {
				feedBase = cfg.Mock.FeedBase
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return mockserver.New(feedBase, metrics.New()).Serve(ctx, listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Address to listen on (default from config)")
	cmd.Flags().StringVar(&feedBase, "feed-base", "", "Prefix of the generated feed URLs (default from config)")
	return cmd
}
