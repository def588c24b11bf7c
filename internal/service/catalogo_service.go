package service

import (
	"context"
	"fmt"

	"catalogo/internal/apperr"
	"catalogo/internal/model"
	"catalogo/internal/repository"
	"catalogo/internal/validacion"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CatalogoService performs the composite product + barcode writes. Each call
// runs in its own transaction: all of its writes are committed or none are.
type CatalogoService interface {
	CrearProductoConCodigo(ctx context.Context, p *model.Producto, c *model.CodigoBarras) error
	ActualizarProductoConCodigo(ctx context.Context, p *model.Producto, c *model.CodigoBarras) error
	EliminarProductoConCodigo(ctx context.Context, productoID, codigoID uuid.UUID) error
}

type catalogoService struct {
	txp       repository.TxProvider
	productos repository.ProductoStore
	codigos   repository.CodigoBarrasStore
	validador *validacion.Validador
	cache     CodigoCache
}

// NewCatalogoService wires the orchestrator. cache may be nil.
func NewCatalogoService(
	txp repository.TxProvider,
	productos repository.ProductoStore,
	codigos repository.CodigoBarrasStore,
	validador *validacion.Validador,
	cache CodigoCache,
) CatalogoService {
	return &catalogoService{
		txp:       txp,
		productos: productos,
		codigos:   codigos,
		validador: validador,
		cache:     cache,
	}
}

// ── Composite operations ──────────────────────────────────────────────────────

// CrearProductoConCodigo creates p, links c to it and creates c. The barcode's
// reference and one-per-product rules are checked inside the transaction,
// after p exists. On failure p and c keep the identity fields they had.
func (s *catalogoService) CrearProductoConCodigo(ctx context.Context, p *model.Producto, c *model.CodigoBarras) error {
	if err := validacion.ValidarProducto(p); err != nil {
		return err
	}
	if err := validacion.ValidarCodigoBasico(c); err != nil {
		return err
	}

	pID, cID, cProducto, cFecha := p.ID, c.ID, c.ProductoID, c.FechaAsignacion
	err := s.enTransaccion(ctx, "crear", func(tx *repository.Tx) error {
		if err := s.productos.CrearTx(ctx, tx, p); err != nil {
			return fmt.Errorf("crear producto: %w", err)
		}
		productoID := p.ID
		c.ProductoID = &productoID
		if err := s.validador.ValidarCodigo(ctx, enTx(s.productos, s.codigos, tx), c, true); err != nil {
			return err
		}
		if err := s.codigos.CrearTx(ctx, tx, c); err != nil {
			return fmt.Errorf("crear codigo: %w", err)
		}
		return nil
	})
	if err != nil {
		p.ID, c.ID, c.ProductoID, c.FechaAsignacion = pID, cID, cProducto, cFecha
		return err
	}
	log.Info().Str("producto_id", p.ID.String()).Str("codigo_id", c.ID.String()).
		Msg("producto y codigo de barras creados")
	return nil
}

// ActualizarProductoConCodigo rewrites both entities. A barcode without
// ProductoID is taken to belong to p.
func (s *catalogoService) ActualizarProductoConCodigo(ctx context.Context, p *model.Producto, c *model.CodigoBarras) error {
	switch {
	case p == nil:
		return validacion.ValidarProducto(nil)
	case c == nil:
		return validacion.ValidarCodigoBasico(nil)
	case p.ID == uuid.Nil:
		return apperr.NewValidation(apperr.ReglaObligatorio, "producto.id", "el id del producto es obligatorio")
	case c.ID == uuid.Nil:
		return apperr.NewValidation(apperr.ReglaObligatorio, "codigo.id", "el id del codigo es obligatorio")
	}
	if err := validacion.ValidarProducto(p); err != nil {
		return err
	}
	if err := validacion.ValidarCodigoBasico(c); err != nil {
		return err
	}

	cProducto, cFecha := c.ProductoID, c.FechaAsignacion
	if c.ProductoID == nil {
		productoID := p.ID
		c.ProductoID = &productoID
	}

	var anterior string
	err := s.enTransaccion(ctx, "actualizar", func(tx *repository.Tx) error {
		previo, err := s.codigos.ObtenerPorIDTx(ctx, tx, c.ID)
		if err != nil {
			return err
		}
		anterior = previo.Valor

		if err := s.productos.ActualizarTx(ctx, tx, p); err != nil {
			return fmt.Errorf("actualizar producto: %w", err)
		}
		if err := s.validador.ValidarCodigo(ctx, enTx(s.productos, s.codigos, tx), c, false); err != nil {
			return err
		}
		if err := s.codigos.ActualizarTx(ctx, tx, c); err != nil {
			return fmt.Errorf("actualizar codigo: %w", err)
		}
		return nil
	})
	if err != nil {
		c.ProductoID, c.FechaAsignacion = cProducto, cFecha
		return err
	}
	s.invalidar(ctx, anterior, c.Valor)
	log.Info().Str("producto_id", p.ID.String()).Str("codigo_id", c.ID.String()).
		Msg("producto y codigo de barras actualizados")
	return nil
}

// EliminarProductoConCodigo soft-deletes the barcode, then the product.
func (s *catalogoService) EliminarProductoConCodigo(ctx context.Context, productoID, codigoID uuid.UUID) error {
	if productoID == uuid.Nil {
		return apperr.NewValidation(apperr.ReglaObligatorio, "producto.id", "el id del producto es obligatorio")
	}
	if codigoID == uuid.Nil {
		return apperr.NewValidation(apperr.ReglaObligatorio, "codigo.id", "el id del codigo es obligatorio")
	}

	var valor string
	err := s.enTransaccion(ctx, "eliminar", func(tx *repository.Tx) error {
		c, err := s.codigos.ObtenerPorIDTx(ctx, tx, codigoID)
		if err != nil {
			return err
		}
		valor = c.Valor
		if err := s.codigos.EliminarTx(ctx, tx, codigoID); err != nil {
			return fmt.Errorf("eliminar codigo: %w", err)
		}
		if err := s.productos.EliminarTx(ctx, tx, productoID); err != nil {
			return fmt.Errorf("eliminar producto: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidar(ctx, valor)
	log.Info().Str("producto_id", productoID.String()).Str("codigo_id", codigoID.String()).
		Msg("producto y codigo de barras eliminados")
	return nil
}

// ── Transaction lifecycle ─────────────────────────────────────────────────────

// enTransaccion drives one composite operation through
// idle → abierta → {confirmada | revertida}. Any error once the transaction
// is open comes back as *apperr.TransactionError; a failed rollback is
// attached to it. The handle is closed on every path, panics included.
func (s *catalogoService) enTransaccion(ctx context.Context, op string, fn func(tx *repository.Tx) error) error {
	logger := log.With().Str("op", op).Logger()

	tx, err := s.txp.Begin(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("no se pudo abrir la transaccion")
		return &apperr.TransactionError{Op: op, Err: err}
	}
	logger.Debug().Stringer("estado", tx.Estado()).Msg("transaccion abierta")
	defer func() {
		if cerr := tx.Close(); cerr != nil {
			logger.Error().Err(cerr).Msg("cierre de transaccion fallido")
		}
	}()

	if err := fn(tx); err != nil {
		txErr := &apperr.TransactionError{Op: op, Err: err}
		if rbErr := tx.Rollback(); rbErr != nil {
			txErr.Rollback = &apperr.RollbackError{Err: rbErr}
			logger.Error().Err(rbErr).AnErr("causa", err).Msg("rollback fallido")
		}
		logger.Warn().Err(err).Stringer("estado", tx.Estado()).Msg("transaccion revertida")
		return txErr
	}

	if err := tx.Commit(); err != nil {
		logger.Warn().Err(err).Stringer("estado", tx.Estado()).Msg("commit fallido")
		return &apperr.TransactionError{Op: op, Err: fmt.Errorf("commit: %w", err)}
	}
	logger.Debug().Stringer("estado", tx.Estado()).Msg("transaccion confirmada")
	return nil
}

func (s *catalogoService) invalidar(ctx context.Context, valores ...string) {
	if s.cache != nil {
		s.cache.Invalidar(ctx, valores...)
	}
}
