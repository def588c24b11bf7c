package service

import (
	"context"

	"catalogo/internal/apperr"
	"catalogo/internal/model"
	"catalogo/internal/repository"
	"catalogo/internal/validacion"

	"github.com/google/uuid"
)

// ProductoService defines the single-entity operations on products.
type ProductoService interface {
	Insertar(ctx context.Context, p *model.Producto) error
	Actualizar(ctx context.Context, p *model.Producto) error
	Eliminar(ctx context.Context, id uuid.UUID) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	Listar(ctx context.Context) ([]model.Producto, error)
}

type productoService struct {
	repo *repository.ProductoRepository
}

func NewProductoService(txp repository.TxProvider, store repository.ProductoStore) ProductoService {
	return &productoService{repo: repository.NewProductoRepository(txp, store)}
}

func (s *productoService) Insertar(ctx context.Context, p *model.Producto) error {
	if err := validacion.ValidarProducto(p); err != nil {
		return err
	}
	return s.repo.Crear(ctx, p)
}

func (s *productoService) Actualizar(ctx context.Context, p *model.Producto) error {
	if p != nil && p.ID == uuid.Nil {
		return apperr.NewValidation(apperr.ReglaObligatorio, "id", "el id es obligatorio para actualizar")
	}
	if err := validacion.ValidarProducto(p); err != nil {
		return err
	}
	return s.repo.Actualizar(ctx, p)
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return apperr.NewValidation(apperr.ReglaObligatorio, "id", "el id es obligatorio")
	}
	return s.repo.Eliminar(ctx, id)
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	return s.repo.ObtenerPorID(ctx, id)
}

// Listar returns the active products ordered by nombre.
func (s *productoService) Listar(ctx context.Context) ([]model.Producto, error) {
	return s.repo.Listar(ctx, true)
}
