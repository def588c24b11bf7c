package handler

import (
	"context"
	"net/http"

	"catalogo/internal/apperr"
	"catalogo/internal/dto"
	"catalogo/internal/model"
	"catalogo/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductosHandler struct {
	catalogo  service.CatalogoService
	productos service.ProductoService
	codigos   service.CodigoBarrasService
}

func NewProductosHandler(catalogo service.CatalogoService, productos service.ProductoService, codigos service.CodigoBarrasService) *ProductosHandler {
	return &ProductosHandler{catalogo: catalogo, productos: productos, codigos: codigos}
}

func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.ProductoConCodigoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	// Ids are left unset so the store assigns them.
	p, err := req.Producto.Modelo(uuid.Nil)
	if err != nil {
		fallo(c, err)
		return
	}
	cb := req.Codigo.Modelo(uuid.Nil)
	if err := h.catalogo.CrearProductoConCodigo(c.Request.Context(), p, cb); err != nil {
		fallo(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NuevoProductoResponse(p, cb))
}

// Listar returns the active products, each joined with its active barcode.
func (h *ProductosHandler) Listar(c *gin.Context) {
	ctx := c.Request.Context()
	productos, err := h.productos.Listar(ctx)
	if err != nil {
		fallo(c, err)
		return
	}
	codigos, err := h.codigos.Listar(ctx)
	if err != nil {
		fallo(c, err)
		return
	}

	porProducto := make(map[uuid.UUID]*model.CodigoBarras, len(codigos))
	for i := range codigos {
		if pid := codigos[i].ProductoID; pid != nil {
			porProducto[*pid] = &codigos[i]
		}
	}

	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, dto.NuevoProductoResponse(&productos[i], porProducto[productos[i].ID]))
	}
	c.JSON(http.StatusOK, dto.ProductoListResponse{Data: data, Total: len(data)})
}

func (h *ProductosHandler) ObtenerPorID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p, err := h.productos.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		fallo(c, err)
		return
	}
	cb, err := h.codigoActivo(c.Request.Context(), id)
	if err != nil {
		fallo(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NuevoProductoResponse(p, cb))
}

// Actualizar updates the product and its barcode together. The barcode is the
// one named in the body or, when omitted, the product's active barcode.
func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.ProductoConCodigoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	p, err := req.Producto.Modelo(id)
	if err != nil {
		fallo(c, err)
		return
	}
	codigoID, err := h.resolverCodigoID(c.Request.Context(), id, req.Codigo.ID)
	if err != nil {
		fallo(c, err)
		return
	}
	cb := req.Codigo.Modelo(codigoID)
	if err := h.catalogo.ActualizarProductoConCodigo(c.Request.Context(), p, cb); err != nil {
		fallo(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NuevoProductoResponse(p, cb))
}

// Eliminar soft-deletes the product together with its active barcode.
// A product without an active barcode is reported as not found.
func (h *ProductosHandler) Eliminar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	codigoID, err := h.resolverCodigoID(c.Request.Context(), id, nil)
	if err != nil {
		fallo(c, err)
		return
	}
	if err := h.catalogo.EliminarProductoConCodigo(c.Request.Context(), id, codigoID); err != nil {
		fallo(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductosHandler) CodigoDeProducto(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	codigos, err := h.codigos.BuscarPorProducto(c.Request.Context(), id)
	if err != nil {
		fallo(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NuevoCodigoListResponse(codigos))
}

func (h *ProductosHandler) codigoActivo(ctx context.Context, productoID uuid.UUID) (*model.CodigoBarras, error) {
	codigos, err := h.codigos.BuscarPorProducto(ctx, productoID)
	if err != nil || len(codigos) == 0 {
		return nil, err
	}
	return &codigos[0], nil
}

func (h *ProductosHandler) resolverCodigoID(ctx context.Context, productoID uuid.UUID, explicito *string) (uuid.UUID, error) {
	if explicito != nil {
		return uuid.MustParse(*explicito), nil
	}
	cb, err := h.codigoActivo(ctx, productoID)
	if err != nil {
		return uuid.Nil, err
	}
	if cb == nil {
		return uuid.Nil, apperr.NewNotFound("codigo de barras del producto", productoID)
	}
	return cb.ID, nil
}
