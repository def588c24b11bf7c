package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"catalogo/internal/apperr"
	"catalogo/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type productoFlags struct {
	nombre, marca, categoria string
	precio, peso             string
	tipo, valor, fecha       string
	observaciones            string
}

func (f *productoFlags) registrar(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.nombre, "nombre", "", "nombre del producto")
	cmd.Flags().StringVar(&f.marca, "marca", "", "marca")
	cmd.Flags().StringVar(&f.categoria, "categoria", "", "categoria")
	cmd.Flags().StringVar(&f.precio, "precio", "", "precio")
	cmd.Flags().StringVar(&f.peso, "peso", "", "peso (opcional)")
	cmd.Flags().StringVar(&f.tipo, "tipo", string(model.TipoEAN13), "tipo de codigo (EAN13, EAN8, UPCA, CODE128)")
	cmd.Flags().StringVar(&f.valor, "valor", "", "valor del codigo de barras")
	cmd.Flags().StringVar(&f.fecha, "fecha", "", "fecha de asignacion YYYY-MM-DD (por defecto hoy)")
	cmd.Flags().StringVar(&f.observaciones, "observaciones", "", "observaciones del codigo")
}

// aplicar copies onto p and c only the flags set on the command line, so an
// update keeps every field the user left out. On create every flag applies.
func (f *productoFlags) aplicar(cmd *cobra.Command, p *model.Producto, c *model.CodigoBarras, todos bool) error {
	set := func(name string) bool { return todos || cmd.Flags().Changed(name) }

	if set("nombre") {
		p.Nombre = f.nombre
	}
	if set("marca") {
		p.Marca = f.marca
	}
	if set("categoria") {
		p.Categoria = f.categoria
	}
	if set("precio") {
		d, err := decimal.NewFromString(f.precio)
		if err != nil {
			return apperr.NewValidation(apperr.ReglaFormato, "precio", "no es un numero: "+f.precio)
		}
		p.Precio = d
	}
	if cmd.Flags().Changed("peso") {
		d, err := decimal.NewFromString(f.peso)
		if err != nil {
			return apperr.NewValidation(apperr.ReglaFormato, "peso", "no es un numero: "+f.peso)
		}
		p.Peso = &d
	}
	if set("tipo") {
		c.Tipo = model.TipoCodigo(f.tipo)
	}
	if set("valor") {
		c.Valor = f.valor
	}
	if cmd.Flags().Changed("fecha") {
		fe, err := model.ParseFecha(f.fecha)
		if err != nil {
			return apperr.NewValidation(apperr.ReglaFormato, "fecha_asignacion", "se espera YYYY-MM-DD")
		}
		c.FechaAsignacion = &fe
	}
	if cmd.Flags().Changed("observaciones") {
		obs := f.observaciones
		c.Observaciones = &obs
	}
	return nil
}

func newCrearCommand(e *entorno) *cobra.Command {
	f := &productoFlags{}
	cmd := &cobra.Command{
		Use:   "crear",
		Short: "Crea un producto junto con su codigo de barras",
		Args:  cobra.NoArgs,
	}
	f.registrar(cmd)
	_ = cmd.MarkFlagRequired("precio")
	cmd.RunE = e.run(func(cmd *cobra.Command, _ []string) error {
		p := &model.Producto{}
		c := &model.CodigoBarras{}
		if err := f.aplicar(cmd, p, c, true); err != nil {
			return err
		}
		if err := e.app.Catalogo.CrearProductoConCodigo(cmd.Context(), p, c); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Producto creado: %s (codigo %s)\n", p.ID, c.ID)
		return nil
	})
	return cmd
}

func newActualizarCommand(e *entorno) *cobra.Command {
	f := &productoFlags{}
	cmd := &cobra.Command{
		Use:   "actualizar <producto-id>",
		Short: "Actualiza un producto y su codigo de barras; solo cambian los campos indicados",
		Args:  cobra.ExactArgs(1),
	}
	f.registrar(cmd)
	cmd.RunE = e.run(func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		p, err := e.app.Productos.ObtenerPorID(ctx, id)
		if err != nil {
			return err
		}
		c, err := codigoActivo(ctx, e, id)
		if err != nil {
			return err
		}
		if err := f.aplicar(cmd, p, c, false); err != nil {
			return err
		}
		if err := e.app.Catalogo.ActualizarProductoConCodigo(ctx, p, c); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Producto actualizado: %s\n", p.ID)
		return nil
	})
	return cmd
}

func newEliminarCommand(e *entorno) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eliminar <producto-id>",
		Short: "Elimina logicamente un producto y su codigo de barras",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = e.run(func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		c, err := codigoActivo(cmd.Context(), e, id)
		if err != nil {
			return err
		}
		if err := e.app.Catalogo.EliminarProductoConCodigo(cmd.Context(), id, c.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Producto eliminado: %s\n", id)
		return nil
	})
	return cmd
}

func newListarCommand(e *entorno) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listar",
		Short: "Lista los productos activos con su codigo de barras",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = e.run(func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		productos, err := e.app.Productos.Listar(ctx)
		if err != nil {
			return err
		}
		codigos, err := e.app.Codigos.Listar(ctx)
		if err != nil {
			return err
		}
		porProducto := make(map[uuid.UUID]model.CodigoBarras, len(codigos))
		for _, c := range codigos {
			if c.ProductoID != nil {
				porProducto[*c.ProductoID] = c
			}
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNOMBRE\tMARCA\tCATEGORIA\tPRECIO\tPESO\tCODIGO\tTIPO")
		for _, p := range productos {
			peso := "-"
			if p.Peso != nil {
				peso = p.Peso.String()
			}
			valor, tipo := "N/A", "N/A"
			if c, ok := porProducto[p.ID]; ok {
				valor, tipo = c.Valor, string(c.Tipo)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				p.ID, p.Nombre, p.Marca, p.Categoria, p.Precio.StringFixed(2), peso, valor, tipo)
		}
		return w.Flush()
	})
	return cmd
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, apperr.NewValidation(apperr.ReglaFormato, "id", "no es un uuid valido: "+s)
	}
	return id, nil
}

// codigoActivo resolves the barcode currently assigned to the product.
func codigoActivo(ctx context.Context, e *entorno, productoID uuid.UUID) (*model.CodigoBarras, error) {
	codigos, err := e.app.Codigos.BuscarPorProducto(ctx, productoID)
	if err != nil {
		return nil, err
	}
	if len(codigos) == 0 {
		return nil, apperr.NewNotFound("codigo de barras del producto", productoID)
	}
	return &codigos[0], nil
}
