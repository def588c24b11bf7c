package dto

import (
	"catalogo/internal/apperr"
	"catalogo/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────
// Presence and range rules are enforced by the validation engine so failures
// carry their rule; tags here only bound sizes and shapes.

type ProductoRequest struct {
	Nombre    string           `json:"nombre"    validate:"max=120"`
	Marca     string           `json:"marca"     validate:"max=120"`
	Categoria string           `json:"categoria" validate:"max=80"`
	Precio    *decimal.Decimal `json:"precio"`
	Peso      *decimal.Decimal `json:"peso"`
}

// ProductoConCodigoRequest is the body of the composite create and update.
type ProductoConCodigoRequest struct {
	Producto ProductoRequest `json:"producto"`
	Codigo   CodigoRequest   `json:"codigo"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID        string           `json:"id"`
	Nombre    string           `json:"nombre"`
	Marca     string           `json:"marca"`
	Categoria string           `json:"categoria"`
	Precio    decimal.Decimal  `json:"precio"`
	Peso      *decimal.Decimal `json:"peso"`
	Eliminado bool             `json:"eliminado"`
	Codigo    *CodigoResponse  `json:"codigo"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int                `json:"total"`
}

// ─── Mapping ─────────────────────────────────────────────────────────────────

// Modelo maps the request onto a product with the given id. A body without
// precio fails here: the model's value type cannot tell missing from zero.
func (r ProductoRequest) Modelo(id uuid.UUID) (*model.Producto, error) {
	if r.Precio == nil {
		return nil, apperr.NewValidation(apperr.ReglaObligatorio, "precio", "el precio es obligatorio")
	}
	return &model.Producto{
		ID:        id,
		Nombre:    r.Nombre,
		Marca:     r.Marca,
		Categoria: r.Categoria,
		Precio:    *r.Precio,
		Peso:      r.Peso,
	}, nil
}

// NuevoProductoResponse maps p and, when not nil, its barcode.
func NuevoProductoResponse(p *model.Producto, c *model.CodigoBarras) ProductoResponse {
	resp := ProductoResponse{
		ID:        p.ID.String(),
		Nombre:    p.Nombre,
		Marca:     p.Marca,
		Categoria: p.Categoria,
		Precio:    p.Precio,
		Peso:      p.Peso,
		Eliminado: p.Eliminado,
	}
	if c != nil {
		cr := NuevoCodigoResponse(c)
		resp.Codigo = &cr
	}
	return resp
}
