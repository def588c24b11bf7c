package repository

import (
	"context"
	"errors"

	"catalogo/internal/apperr"
	"catalogo/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoStore is the participating variant of the product record store:
// every method runs on the caller's transaction and never closes it.
// Services and the orchestrator depend on this interface, not on a backend.
type ProductoStore interface {
	// CrearTx assigns p.ID when it is nil and persists p with Eliminado=false.
	CrearTx(ctx context.Context, tx *Tx, p *model.Producto) error
	// ObtenerPorIDTx returns the row even if it was logically deleted.
	ObtenerPorIDTx(ctx context.Context, tx *Tx, id uuid.UUID) (*model.Producto, error)
	ListarTx(ctx context.Context, tx *Tx, soloActivos bool) ([]model.Producto, error)
	// ActualizarTx rewrites the mutable fields of an active product.
	ActualizarTx(ctx context.Context, tx *Tx, p *model.Producto) error
	// EliminarTx flips Eliminado to true.
	EliminarTx(ctx context.Context, tx *Tx, id uuid.UUID) error
}

type productoRepo struct{}

// NewGormProductoStore returns the GORM-backed ProductoStore. It is stateless: the
// connection comes from the *Tx opened by NewGormTxProvider.
func NewGormProductoStore() ProductoStore { return productoRepo{} }

func (productoRepo) CrearTx(ctx context.Context, tx *Tx, p *model.Producto) error {
	db, err := gormConn(ctx, tx)
	if err != nil {
		return err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Eliminado = false
	return db.Create(p).Error
}

func (productoRepo) ObtenerPorIDTx(ctx context.Context, tx *Tx, id uuid.UUID) (*model.Producto, error) {
	db, err := gormConn(ctx, tx)
	if err != nil {
		return nil, err
	}
	var p model.Producto
	if err := db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("producto", id)
		}
		return nil, err
	}
	return &p, nil
}

func (productoRepo) ListarTx(ctx context.Context, tx *Tx, soloActivos bool) ([]model.Producto, error) {
	db, err := gormConn(ctx, tx)
	if err != nil {
		return nil, err
	}
	productos := []model.Producto{}
	q := db.Model(&model.Producto{})
	if soloActivos {
		q = q.Where("eliminado = ?", false)
	}
	err = q.Order("nombre ASC, id ASC").Find(&productos).Error
	return productos, err
}

func (productoRepo) ActualizarTx(ctx context.Context, tx *Tx, p *model.Producto) error {
	db, err := gormConn(ctx, tx)
	if err != nil {
		return err
	}
	res := db.Model(&model.Producto{}).
		Where("id = ? AND eliminado = ?", p.ID, false).
		Updates(map[string]interface{}{
			"nombre":    p.Nombre,
			"marca":     p.Marca,
			"categoria": p.Categoria,
			"precio":    p.Precio,
			"peso":      p.Peso,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NewNotFound("producto", p.ID)
	}
	return nil
}

func (productoRepo) EliminarTx(ctx context.Context, tx *Tx, id uuid.UUID) error {
	db, err := gormConn(ctx, tx)
	if err != nil {
		return err
	}
	res := db.Model(&model.Producto{}).Where("id = ?", id).Update("eliminado", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NewNotFound("producto", id)
	}
	return nil
}
