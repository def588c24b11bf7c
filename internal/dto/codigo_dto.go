package dto

import (
	"catalogo/internal/model"

	"github.com/google/uuid"
)

type CodigoRequest struct {
	// ID selects the barcode to update in the composite update; ignored on create.
	ID              *string      `json:"id"               validate:"omitempty,uuid"`
	Tipo            string       `json:"tipo"             validate:"max=16"`
	Valor           string       `json:"valor"            validate:"max=80"`
	FechaAsignacion *model.Fecha `json:"fecha_asignacion"`
	Observaciones   *string      `json:"observaciones"    validate:"omitempty,max=500"`
	ProductoID      *string      `json:"producto_id"      validate:"omitempty,uuid"`
}

type CodigoResponse struct {
	ID              string       `json:"id"`
	Tipo            string       `json:"tipo"`
	Valor           string       `json:"valor"`
	FechaAsignacion *model.Fecha `json:"fecha_asignacion"`
	Observaciones   *string      `json:"observaciones"`
	ProductoID      *string      `json:"producto_id"`
	Eliminado       bool         `json:"eliminado"`
}

type CodigoListResponse struct {
	Data  []CodigoResponse `json:"data"`
	Total int              `json:"total"`
}

// Modelo maps the request onto a barcode with the given id. Identifiers were
// already checked by the uuid tags, so parse errors cannot occur here.
func (r CodigoRequest) Modelo(id uuid.UUID) *model.CodigoBarras {
	c := &model.CodigoBarras{
		ID:              id,
		Tipo:            model.TipoCodigo(r.Tipo),
		Valor:           r.Valor,
		FechaAsignacion: r.FechaAsignacion,
		Observaciones:   r.Observaciones,
	}
	if r.ProductoID != nil {
		pid := uuid.MustParse(*r.ProductoID)
		c.ProductoID = &pid
	}
	return c
}

func NuevoCodigoResponse(c *model.CodigoBarras) CodigoResponse {
	resp := CodigoResponse{
		ID:              c.ID.String(),
		Tipo:            string(c.Tipo),
		Valor:           c.Valor,
		FechaAsignacion: c.FechaAsignacion,
		Observaciones:   c.Observaciones,
		Eliminado:       c.Eliminado,
	}
	if c.ProductoID != nil {
		pid := c.ProductoID.String()
		resp.ProductoID = &pid
	}
	return resp
}

func NuevoCodigoListResponse(codigos []model.CodigoBarras) CodigoListResponse {
	data := make([]CodigoResponse, 0, len(codigos))
	for i := range codigos {
		data = append(data, NuevoCodigoResponse(&codigos[i]))
	}
	return CodigoListResponse{Data: data, Total: len(data)}
}
