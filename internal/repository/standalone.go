package repository

import (
	"context"

	"catalogo/internal/model"

	"github.com/google/uuid"
)

// ProductoRepository is the standalone variant of ProductoStore: each call
// opens and releases its own transaction through WithTx.
type ProductoRepository struct {
	txp   TxProvider
	store ProductoStore
}

func NewProductoRepository(txp TxProvider, store ProductoStore) *ProductoRepository {
	return &ProductoRepository{txp: txp, store: store}
}

func (r *ProductoRepository) Crear(ctx context.Context, p *model.Producto) error {
	return WithTx(ctx, r.txp, func(tx *Tx) error { return r.store.CrearTx(ctx, tx, p) })
}

func (r *ProductoRepository) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p *model.Producto
	err := WithTx(ctx, r.txp, func(tx *Tx) (err error) {
		p, err = r.store.ObtenerPorIDTx(ctx, tx, id)
		return err
	})
	return p, err
}

func (r *ProductoRepository) Listar(ctx context.Context, soloActivos bool) ([]model.Producto, error) {
	var productos []model.Producto
	err := WithTx(ctx, r.txp, func(tx *Tx) (err error) {
		productos, err = r.store.ListarTx(ctx, tx, soloActivos)
		return err
	})
	return productos, err
}

func (r *ProductoRepository) Actualizar(ctx context.Context, p *model.Producto) error {
	return WithTx(ctx, r.txp, func(tx *Tx) error { return r.store.ActualizarTx(ctx, tx, p) })
}

func (r *ProductoRepository) Eliminar(ctx context.Context, id uuid.UUID) error {
	return WithTx(ctx, r.txp, func(tx *Tx) error { return r.store.EliminarTx(ctx, tx, id) })
}

// CodigoBarrasRepository is the standalone variant of CodigoBarrasStore.
type CodigoBarrasRepository struct {
	txp   TxProvider
	store CodigoBarrasStore
}

func NewCodigoBarrasRepository(txp TxProvider, store CodigoBarrasStore) *CodigoBarrasRepository {
	return &CodigoBarrasRepository{txp: txp, store: store}
}

func (r *CodigoBarrasRepository) Crear(ctx context.Context, c *model.CodigoBarras) error {
	return WithTx(ctx, r.txp, func(tx *Tx) error { return r.store.CrearTx(ctx, tx, c) })
}

func (r *CodigoBarrasRepository) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.CodigoBarras, error) {
	var c *model.CodigoBarras
	err := WithTx(ctx, r.txp, func(tx *Tx) (err error) {
		c, err = r.store.ObtenerPorIDTx(ctx, tx, id)
		return err
	})
	return c, err
}

func (r *CodigoBarrasRepository) Listar(ctx context.Context, soloActivos bool) ([]model.CodigoBarras, error) {
	var codigos []model.CodigoBarras
	err := WithTx(ctx, r.txp, func(tx *Tx) (err error) {
		codigos, err = r.store.ListarTx(ctx, tx, soloActivos)
		return err
	})
	return codigos, err
}

func (r *CodigoBarrasRepository) Actualizar(ctx context.Context, c *model.CodigoBarras) error {
	return WithTx(ctx, r.txp, func(tx *Tx) error { return r.store.ActualizarTx(ctx, tx, c) })
}

func (r *CodigoBarrasRepository) Eliminar(ctx context.Context, id uuid.UUID) error {
	return WithTx(ctx, r.txp, func(tx *Tx) error { return r.store.EliminarTx(ctx, tx, id) })
}

func (r *CodigoBarrasRepository) BuscarPorValor(ctx context.Context, valor string) (*model.CodigoBarras, error) {
	var c *model.CodigoBarras
	err := WithTx(ctx, r.txp, func(tx *Tx) (err error) {
		c, err = r.store.BuscarPorValorTx(ctx, tx, valor)
		return err
	})
	return c, err
}

func (r *CodigoBarrasRepository) BuscarPorProducto(ctx context.Context, productoID uuid.UUID) ([]model.CodigoBarras, error) {
	var codigos []model.CodigoBarras
	err := WithTx(ctx, r.txp, func(tx *Tx) (err error) {
		codigos, err = r.store.BuscarPorProductoTx(ctx, tx, productoID)
		return err
	})
	return codigos, err
}

func (r *CodigoBarrasRepository) BuscarPorTipo(ctx context.Context, tipo model.TipoCodigo) ([]model.CodigoBarras, error) {
	var codigos []model.CodigoBarras
	err := WithTx(ctx, r.txp, func(tx *Tx) (err error) {
		codigos, err = r.store.BuscarPorTipoTx(ctx, tx, tipo)
		return err
	})
	return codigos, err
}
