// Package validacion checks candidate Productos and CodigosBarras before they
// are written. Every check reports only the first violation found, as an
// *apperr.ValidationError, in this order: required fields, numeric ranges,
// barcode format, product reference, one-barcode-per-product. The only
// mutation performed is defaulting FechaAsignacion once every check passed.
package validacion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalogo/internal/apperr"
	"catalogo/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Consultas is the read-only view of the stores the cross-entity rules need.
// Implementations may be bound to an open transaction or run standalone.
type Consultas interface {
	// ObtenerProducto returns the product regardless of its Eliminado flag,
	// or an *apperr.NotFoundError.
	ObtenerProducto(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	// CodigosActivosDeProducto returns the non-deleted barcodes linked to productoID.
	CodigosActivosDeProducto(ctx context.Context, productoID uuid.UUID) ([]model.CodigoBarras, error)
}

var validate = validator.New()

// Format tags per symbology, evaluated with validator.Var.
var formatos = map[model.TipoCodigo]struct{ tag, desc string }{
	model.TipoEAN13:   {"len=13,number", "exactamente 13 digitos"},
	model.TipoEAN8:    {"len=8,number", "exactamente 8 digitos"},
	model.TipoUPCA:    {"len=12,number", "exactamente 12 digitos"},
	model.TipoCODE128: {"min=1,max=80,printascii", "entre 1 y 80 caracteres ASCII imprimibles"},
}

// ValidarProducto checks required fields and numeric bounds of p.
func ValidarProducto(p *model.Producto) error {
	if p == nil {
		return apperr.NewValidation(apperr.ReglaObligatorio, "producto", "el producto es obligatorio")
	}
	for _, f := range []struct{ campo, valor string }{
		{"nombre", p.Nombre},
		{"marca", p.Marca},
		{"categoria", p.Categoria},
	} {
		if blank(f.valor) {
			return apperr.NewValidation(apperr.ReglaObligatorio, f.campo, "no puede estar vacio")
		}
	}

	if p.Precio.IsNegative() {
		return apperr.NewValidation(apperr.ReglaRango, "precio", "debe ser mayor o igual a 0")
	}
	if p.Peso != nil && p.Peso.IsNegative() {
		return apperr.NewValidation(apperr.ReglaRango, "peso", "debe ser mayor o igual a 0")
	}
	return nil
}

// ValidarCodigoBasico checks the fields of c that need no store access:
// tipo and valor present, tipo known and valor well-formed for it.
func ValidarCodigoBasico(c *model.CodigoBarras) error {
	if c == nil {
		return apperr.NewValidation(apperr.ReglaObligatorio, "codigo", "el codigo de barras es obligatorio")
	}
	if err := obligatoriosCodigo(c); err != nil {
		return err
	}
	return formatoCodigo(c)
}

func obligatoriosCodigo(c *model.CodigoBarras) error {
	if blank(string(c.Tipo)) {
		return apperr.NewValidation(apperr.ReglaObligatorio, "tipo", "no puede estar vacio")
	}
	if blank(c.Valor) {
		return apperr.NewValidation(apperr.ReglaObligatorio, "valor", "no puede estar vacio")
	}
	return nil
}

func formatoCodigo(c *model.CodigoBarras) error {
	f, ok := formatos[c.Tipo]
	if !ok {
		return apperr.NewValidation(apperr.ReglaFormato, "tipo",
			fmt.Sprintf("tipo %q no soportado", c.Tipo))
	}
	if err := validate.Var(c.Valor, f.tag); err != nil {
		return &apperr.ValidationError{
			Regla:   apperr.ReglaFormato,
			Campo:   "valor",
			Mensaje: fmt.Sprintf("un codigo %s debe tener %s", c.Tipo, f.desc),
			Err:     err,
		}
	}
	return nil
}

// Validador runs the full barcode validation, including the rules that read
// current store state.
type Validador struct {
	ahora func() time.Time
}

// NewValidador returns a Validador using ahora as the clock for the
// FechaAsignacion default. A nil ahora means time.Now.
func NewValidador(ahora func() time.Time) *Validador {
	if ahora == nil {
		ahora = time.Now
	}
	return &Validador{ahora: ahora}
}

// ValidarCodigo validates c for insertion (esNuevo) or update. On success,
// a nil FechaAsignacion is set to today.
func (v *Validador) ValidarCodigo(ctx context.Context, q Consultas, c *model.CodigoBarras, esNuevo bool) error {
	if c == nil {
		return apperr.NewValidation(apperr.ReglaObligatorio, "codigo", "el codigo de barras es obligatorio")
	}
	if !esNuevo && c.ID == uuid.Nil {
		return apperr.NewValidation(apperr.ReglaObligatorio, "id", "el id es obligatorio para actualizar")
	}
	if c.ProductoID == nil || *c.ProductoID == uuid.Nil {
		return apperr.NewValidation(apperr.ReglaObligatorio, "producto_id", "el codigo debe referenciar un producto")
	}
	if err := obligatoriosCodigo(c); err != nil {
		return err
	}
	if err := formatoCodigo(c); err != nil {
		return err
	}

	if err := referencia(ctx, q, *c.ProductoID); err != nil {
		return err
	}

	existentes, err := q.CodigosActivosDeProducto(ctx, *c.ProductoID)
	if err != nil {
		return fmt.Errorf("validacion: codigos del producto %s: %w", c.ProductoID, err)
	}
	for _, e := range existentes {
		if esNuevo || e.ID != c.ID {
			return apperr.NewValidation(apperr.ReglaUnoAUno, "producto_id",
				fmt.Sprintf("el producto ya tiene asignado el codigo %s", e.Valor))
		}
	}

	if c.FechaAsignacion == nil {
		hoy := model.NuevaFecha(v.ahora())
		c.FechaAsignacion = &hoy
	}
	return nil
}

func referencia(ctx context.Context, q Consultas, productoID uuid.UUID) error {
	p, err := q.ObtenerProducto(ctx, productoID)
	var nf *apperr.NotFoundError
	switch {
	case errors.As(err, &nf):
		return &apperr.ValidationError{
			Regla: apperr.ReglaReferencia, Campo: "producto_id",
			Mensaje: "el producto referenciado no existe", Err: nf,
		}
	case err != nil:
		return fmt.Errorf("validacion: producto %s: %w", productoID, err)
	case p.Eliminado:
		return &apperr.ValidationError{
			Regla: apperr.ReglaReferencia, Campo: "producto_id",
			Mensaje: "el producto referenciado esta eliminado",
			Err:     apperr.NewNotFound("producto", productoID),
		}
	}
	return nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
