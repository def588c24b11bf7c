package repository

import (
	"context"
	"errors"

	"catalogo/internal/apperr"
	"catalogo/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CodigoBarrasStore is the participating variant of the barcode record store.
// Indexed lookups only ever return active (Eliminado=false) rows.
type CodigoBarrasStore interface {
	CrearTx(ctx context.Context, tx *Tx, c *model.CodigoBarras) error
	// ObtenerPorIDTx returns the row even if it was logically deleted.
	ObtenerPorIDTx(ctx context.Context, tx *Tx, id uuid.UUID) (*model.CodigoBarras, error)
	ListarTx(ctx context.Context, tx *Tx, soloActivos bool) ([]model.CodigoBarras, error)
	ActualizarTx(ctx context.Context, tx *Tx, c *model.CodigoBarras) error
	EliminarTx(ctx context.Context, tx *Tx, id uuid.UUID) error

	// BuscarPorValorTx returns a NotFoundError when no active barcode has valor.
	BuscarPorValorTx(ctx context.Context, tx *Tx, valor string) (*model.CodigoBarras, error)
	BuscarPorProductoTx(ctx context.Context, tx *Tx, productoID uuid.UUID) ([]model.CodigoBarras, error)
	BuscarPorTipoTx(ctx context.Context, tx *Tx, tipo model.TipoCodigo) ([]model.CodigoBarras, error)
}

type codigoBarrasRepo struct{}

// NewGormCodigoBarrasStore returns the GORM-backed CodigoBarrasStore.
func NewGormCodigoBarrasStore() CodigoBarrasStore { return codigoBarrasRepo{} }

func (codigoBarrasRepo) CrearTx(ctx context.Context, tx *Tx, c *model.CodigoBarras) error {
	db, err := gormConn(ctx, tx)
	if err != nil {
		return err
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.Eliminado = false
	return db.Create(c).Error
}

func (codigoBarrasRepo) ObtenerPorIDTx(ctx context.Context, tx *Tx, id uuid.UUID) (*model.CodigoBarras, error) {
	db, err := gormConn(ctx, tx)
	if err != nil {
		return nil, err
	}
	var c model.CodigoBarras
	if err := db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("codigo de barras", id)
		}
		return nil, err
	}
	return &c, nil
}

func (codigoBarrasRepo) ListarTx(ctx context.Context, tx *Tx, soloActivos bool) ([]model.CodigoBarras, error) {
	db, err := gormConn(ctx, tx)
	if err != nil {
		return nil, err
	}
	codigos := []model.CodigoBarras{}
	q := db.Model(&model.CodigoBarras{})
	if soloActivos {
		q = q.Where("eliminado = ?", false)
	}
	err = q.Order("valor ASC, id ASC").Find(&codigos).Error
	return codigos, err
}

func (codigoBarrasRepo) ActualizarTx(ctx context.Context, tx *Tx, c *model.CodigoBarras) error {
	db, err := gormConn(ctx, tx)
	if err != nil {
		return err
	}
	res := db.Model(&model.CodigoBarras{}).
		Where("id = ? AND eliminado = ?", c.ID, false).
		Updates(map[string]interface{}{
			"tipo":             c.Tipo,
			"valor":            c.Valor,
			"fecha_asignacion": c.FechaAsignacion,
			"observaciones":    c.Observaciones,
			"producto_id":      c.ProductoID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NewNotFound("codigo de barras", c.ID)
	}
	return nil
}

func (codigoBarrasRepo) EliminarTx(ctx context.Context, tx *Tx, id uuid.UUID) error {
	db, err := gormConn(ctx, tx)
	if err != nil {
		return err
	}
	res := db.Model(&model.CodigoBarras{}).Where("id = ?", id).Update("eliminado", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NewNotFound("codigo de barras", id)
	}
	return nil
}

func (codigoBarrasRepo) BuscarPorValorTx(ctx context.Context, tx *Tx, valor string) (*model.CodigoBarras, error) {
	db, err := gormConn(ctx, tx)
	if err != nil {
		return nil, err
	}
	var c model.CodigoBarras
	err = db.Where("valor = ? AND eliminado = ?", valor, false).Order("id ASC").First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entidad: "codigo de barras", ID: valor}
		}
		return nil, err
	}
	return &c, nil
}

func (codigoBarrasRepo) BuscarPorProductoTx(ctx context.Context, tx *Tx, productoID uuid.UUID) ([]model.CodigoBarras, error) {
	db, err := gormConn(ctx, tx)
	if err != nil {
		return nil, err
	}
	codigos := []model.CodigoBarras{}
	err = db.Where("producto_id = ? AND eliminado = ?", productoID, false).
		Order("id ASC").Find(&codigos).Error
	return codigos, err
}

func (codigoBarrasRepo) BuscarPorTipoTx(ctx context.Context, tx *Tx, tipo model.TipoCodigo) ([]model.CodigoBarras, error) {
	db, err := gormConn(ctx, tx)
	if err != nil {
		return nil, err
	}
	codigos := []model.CodigoBarras{}
	err = db.Where("tipo = ? AND eliminado = ?", tipo, false).
		Order("valor ASC, id ASC").Find(&codigos).Error
	return codigos, err
}
