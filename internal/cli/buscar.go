package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"catalogo/internal/apperr"
	"catalogo/internal/model"

	"github.com/spf13/cobra"
)

func newBuscarCommand(e *entorno) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buscar",
		Short: "Busca codigos de barras activos",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "valor <valor>",
			Short: "Busca un codigo por su valor",
			Args:  cobra.ExactArgs(1),
			RunE: e.run(func(cmd *cobra.Command, args []string) error {
				c, encontrado, err := e.app.Codigos.BuscarPorValor(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !encontrado {
					fmt.Fprintf(cmd.OutOrStdout(), "Codigo no encontrado: %s\n", args[0])
					return nil
				}
				return imprimirCodigos(cmd.OutOrStdout(), []model.CodigoBarras{*c})
			}),
		},
		&cobra.Command{
			Use:   "producto <producto-id>",
			Short: "Busca los codigos asignados a un producto",
			Args:  cobra.ExactArgs(1),
			RunE: e.run(func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return e.listar(cmd, func(ctx context.Context) ([]model.CodigoBarras, error) {
					return e.app.Codigos.BuscarPorProducto(ctx, id)
				})
			}),
		},
		&cobra.Command{
			Use:   "tipo <tipo>",
			Short: "Busca los codigos de un tipo",
			Args:  cobra.ExactArgs(1),
			RunE: e.run(func(cmd *cobra.Command, args []string) error {
				t := model.TipoCodigo(args[0])
				if !t.Valido() {
					return apperr.NewValidation(apperr.ReglaFormato, "tipo", "tipo de codigo desconocido: "+args[0])
				}
				return e.listar(cmd, func(ctx context.Context) ([]model.CodigoBarras, error) {
					return e.app.Codigos.BuscarPorTipo(ctx, t)
				})
			}),
		},
	)
	return cmd
}

func (e *entorno) listar(cmd *cobra.Command, buscar func(context.Context) ([]model.CodigoBarras, error)) error {
	codigos, err := buscar(cmd.Context())
	if err != nil {
		return err
	}
	if len(codigos) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Sin resultados")
		return nil
	}
	return imprimirCodigos(cmd.OutOrStdout(), codigos)
}

func imprimirCodigos(out io.Writer, codigos []model.CodigoBarras) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIPO\tVALOR\tFECHA\tPRODUCTO")
	for _, c := range codigos {
		fecha, producto := "-", "-"
		if c.FechaAsignacion != nil {
			fecha = c.FechaAsignacion.String()
		}
		if c.ProductoID != nil {
			producto = c.ProductoID.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Tipo, c.Valor, fecha, producto)
	}
	return w.Flush()
}
