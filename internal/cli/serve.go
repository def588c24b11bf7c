package cli

import (
	"os/signal"
	"syscall"

	"catalogo/internal/server"

	"github.com/spf13/cobra"
)

func newServeCommand(e *entorno) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Sirve la API HTTP del catalogo",
		Args:  cobra.NoArgs,
		RunE: e.run(func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx, e.cfg, e.app)
		}),
	}
}
