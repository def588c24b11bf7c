package service

import (
	"context"
	"errors"
	"strings"

	"catalogo/internal/apperr"
	"catalogo/internal/model"
	"catalogo/internal/repository"
	"catalogo/internal/validacion"

	"github.com/google/uuid"
)

// CodigoCache is the read-through cache for lookups by valor. Implementations
// are best-effort: failures are logged, never returned.
type CodigoCache interface {
	Obtener(ctx context.Context, valor string) (*model.CodigoBarras, bool)
	Guardar(ctx context.Context, c *model.CodigoBarras)
	Invalidar(ctx context.Context, valores ...string)
}

// CodigoBarrasService defines the single-entity operations on barcodes.
type CodigoBarrasService interface {
	Insertar(ctx context.Context, c *model.CodigoBarras) error
	Actualizar(ctx context.Context, c *model.CodigoBarras) error
	Eliminar(ctx context.Context, id uuid.UUID) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.CodigoBarras, error)
	Listar(ctx context.Context) ([]model.CodigoBarras, error)
	// BuscarPorValor reports encontrado=false, with a nil error, when no
	// active barcode has that valor.
	BuscarPorValor(ctx context.Context, valor string) (c *model.CodigoBarras, encontrado bool, err error)
	BuscarPorProducto(ctx context.Context, productoID uuid.UUID) ([]model.CodigoBarras, error)
	BuscarPorTipo(ctx context.Context, tipo model.TipoCodigo) ([]model.CodigoBarras, error)
}

type codigoBarrasService struct {
	txp       repository.TxProvider
	productos repository.ProductoStore
	codigos   repository.CodigoBarrasStore
	repo      *repository.CodigoBarrasRepository
	validador *validacion.Validador
	cache     CodigoCache
}

// NewCodigoBarrasService wires the barcode service. cache may be nil.
func NewCodigoBarrasService(
	txp repository.TxProvider,
	productos repository.ProductoStore,
	codigos repository.CodigoBarrasStore,
	validador *validacion.Validador,
	cache CodigoCache,
) CodigoBarrasService {
	return &codigoBarrasService{
		txp:       txp,
		productos: productos,
		codigos:   codigos,
		repo:      repository.NewCodigoBarrasRepository(txp, codigos),
		validador: validador,
		cache:     cache,
	}
}

func (s *codigoBarrasService) Insertar(ctx context.Context, c *model.CodigoBarras) error {
	return repository.WithTx(ctx, s.txp, func(tx *repository.Tx) error {
		if err := s.validador.ValidarCodigo(ctx, enTx(s.productos, s.codigos, tx), c, true); err != nil {
			return err
		}
		return s.codigos.CrearTx(ctx, tx, c)
	})
}

func (s *codigoBarrasService) Actualizar(ctx context.Context, c *model.CodigoBarras) error {
	if c != nil && c.ID == uuid.Nil {
		return apperr.NewValidation(apperr.ReglaObligatorio, "id", "el id es obligatorio para actualizar")
	}
	var anterior string
	err := repository.WithTx(ctx, s.txp, func(tx *repository.Tx) error {
		if err := s.validador.ValidarCodigo(ctx, enTx(s.productos, s.codigos, tx), c, false); err != nil {
			return err
		}
		previo, err := s.codigos.ObtenerPorIDTx(ctx, tx, c.ID)
		if err != nil {
			return err
		}
		anterior = previo.Valor
		return s.codigos.ActualizarTx(ctx, tx, c)
	})
	if err != nil {
		return err
	}
	s.invalidar(ctx, anterior, c.Valor)
	return nil
}

func (s *codigoBarrasService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return apperr.NewValidation(apperr.ReglaObligatorio, "id", "el id es obligatorio")
	}
	var valor string
	err := repository.WithTx(ctx, s.txp, func(tx *repository.Tx) error {
		c, err := s.codigos.ObtenerPorIDTx(ctx, tx, id)
		if err != nil {
			return err
		}
		valor = c.Valor
		return s.codigos.EliminarTx(ctx, tx, id)
	})
	if err != nil {
		return err
	}
	s.invalidar(ctx, valor)
	return nil
}

func (s *codigoBarrasService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.CodigoBarras, error) {
	return s.repo.ObtenerPorID(ctx, id)
}

func (s *codigoBarrasService) Listar(ctx context.Context) ([]model.CodigoBarras, error) {
	return s.repo.Listar(ctx, true)
}

func (s *codigoBarrasService) BuscarPorValor(ctx context.Context, valor string) (*model.CodigoBarras, bool, error) {
	if strings.TrimSpace(valor) == "" {
		return nil, false, apperr.NewValidation(apperr.ReglaObligatorio, "valor", "no puede estar vacio")
	}
	if s.cache != nil {
		if c, ok := s.cache.Obtener(ctx, valor); ok {
			return c, true, nil
		}
	}

	c, err := s.repo.BuscarPorValor(ctx, valor)
	var nf *apperr.NotFoundError
	if errors.As(err, &nf) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if s.cache != nil {
		s.cache.Guardar(ctx, c)
	}
	return c, true, nil
}

func (s *codigoBarrasService) BuscarPorProducto(ctx context.Context, productoID uuid.UUID) ([]model.CodigoBarras, error) {
	return s.repo.BuscarPorProducto(ctx, productoID)
}

func (s *codigoBarrasService) BuscarPorTipo(ctx context.Context, tipo model.TipoCodigo) ([]model.CodigoBarras, error) {
	return s.repo.BuscarPorTipo(ctx, tipo)
}

func (s *codigoBarrasService) invalidar(ctx context.Context, valores ...string) {
	if s.cache != nil {
		s.cache.Invalidar(ctx, valores...)
	}
}
