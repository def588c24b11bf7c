package handler

import (
	"net/http"

	"catalogo/internal/apierror"
	"catalogo/internal/apperr"
	"catalogo/internal/dto"
	"catalogo/internal/model"
	"catalogo/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CodigosHandler struct{ svc service.CodigoBarrasService }

func NewCodigosHandler(svc service.CodigoBarrasService) *CodigosHandler {
	return &CodigosHandler{svc: svc}
}

// Listar returns active barcodes, filtered by ?tipo= when present.
func (h *CodigosHandler) Listar(c *gin.Context) {
	var (
		codigos []model.CodigoBarras
		err     error
	)
	if tipo := c.Query("tipo"); tipo != "" {
		t := model.TipoCodigo(tipo)
		if !t.Valido() {
			fallo(c, apperr.NewValidation(apperr.ReglaFormato, "tipo", "tipo de codigo desconocido: "+tipo))
			return
		}
		codigos, err = h.svc.BuscarPorTipo(c.Request.Context(), t)
	} else {
		codigos, err = h.svc.Listar(c.Request.Context())
	}
	if err != nil {
		fallo(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NuevoCodigoListResponse(codigos))
}

func (h *CodigosHandler) ObtenerPorID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	cb, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		fallo(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NuevoCodigoResponse(cb))
}

func (h *CodigosHandler) Crear(c *gin.Context) {
	var req dto.CodigoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cb := req.Modelo(uuid.Nil)
	if err := h.svc.Insertar(c.Request.Context(), cb); err != nil {
		fallo(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NuevoCodigoResponse(cb))
}

func (h *CodigosHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.CodigoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cb := req.Modelo(id)
	if err := h.svc.Actualizar(c.Request.Context(), cb); err != nil {
		fallo(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NuevoCodigoResponse(cb))
}

func (h *CodigosHandler) Eliminar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		fallo(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PorValor looks a barcode up by its value; an unknown value is a 404.
func (h *CodigosHandler) PorValor(c *gin.Context) {
	valor := c.Param("valor")
	cb, encontrado, err := h.svc.BuscarPorValor(c.Request.Context(), valor)
	if err != nil {
		fallo(c, err)
		return
	}
	if !encontrado {
		fallo(c, apierror.NotFound("Codigo no encontrado: "+valor))
		return
	}
	c.JSON(http.StatusOK, dto.NuevoCodigoResponse(cb))
}
