package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/crudadmin/internal/devserver"
	"github.com/idilsaglam/crudadmin/internal/store/jsonstore"
	"github.com/idilsaglam/crudadmin/internal/ui"
)

func (a *app) serveCmd() *cobra.Command {
	var addr, data string
	cmd := &cobra.Command{
		Use:         "serve",
		Short:       "Run a development backend for posts and tags",
		Args:        usageArgs(cobra.NoArgs),
		Annotations: map[string]string{logToStderr: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = a.cfg.Server.Addr
			}
			if !cmd.Flags().Changed("data") {
				data = a.cfg.Server.DataFile
			}
			store, err := jsonstore.Open(data)
			if err != nil {
				return fmt.Errorf("open %s: %w", data, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("serving posts and tags on %s (data: %s)", addr, data))
			a.logger.Info("serve", zap.String("addr", addr), zap.String("data", data))
			return devserver.New(store, a.logger).Run(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":3000", "listen address")
	cmd.Flags().StringVar(&data, "data", "records.json", "JSON data file")
	return cmd
}
