// Package cli implements the catalogo command line tool.
package cli

import (
	"fmt"
	"os"

	"catalogo/internal/app"
	"catalogo/internal/config"
	"catalogo/internal/logging"

	"github.com/spf13/cobra"
)

// entorno carries the state shared by every subcommand. cfg is loaded in
// PersistentPreRunE and app is opened by run.
type entorno struct {
	configFile string
	dbDriver   string

	cfg *config.Config
	app *app.App
}

// NewRootCommand builds the catalogo command tree.
func NewRootCommand() *cobra.Command {
	e := &entorno{}
	root := &cobra.Command{
		Use:           "catalogo",
		Short:         "Catalogo de productos y codigos de barras",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.cargarConfig(cmd)
		},
	}

	root.PersistentFlags().StringVar(&e.configFile, "config", "", "archivo .env de configuracion")
	root.PersistentFlags().StringVar(&e.dbDriver, "db-driver", "", "backend de datos (sqlite | postgres)")

	root.AddCommand(
		newCrearCommand(e),
		newActualizarCommand(e),
		newEliminarCommand(e),
		newListarCommand(e),
		newBuscarCommand(e),
		newServeCommand(e),
	)
	return root
}

func (e *entorno) cargarConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(e.configFile)
	if err != nil {
		return err
	}
	if e.dbDriver != "" {
		cfg.DBDriver = e.dbDriver
	}
	logging.Setup(cmd.ErrOrStderr(), cfg.Env, cfg.LogLevel)
	e.cfg = cfg
	return nil
}

// run adapts fn into a RunE that opens the backend after cobra has checked
// args and required flags, and always releases it.
func (e *entorno) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := app.New(cmd.Context(), e.cfg)
		if err != nil {
			return err
		}
		e.app = a
		defer a.Close()
		return fn(cmd, args)
	}
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
		os.Exit(1)
	}
}
