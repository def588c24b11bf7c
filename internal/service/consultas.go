package service

import (
	"context"

	"catalogo/internal/model"
	"catalogo/internal/repository"
	"catalogo/internal/validacion"

	"github.com/google/uuid"
)

// consultasTx binds the validation lookups to an open transaction so the
// rules see the writes already made inside it.
type consultasTx struct {
	productos repository.ProductoStore
	codigos   repository.CodigoBarrasStore
	tx        *repository.Tx
}

func enTx(productos repository.ProductoStore, codigos repository.CodigoBarrasStore, tx *repository.Tx) validacion.Consultas {
	return consultasTx{productos: productos, codigos: codigos, tx: tx}
}

func (q consultasTx) ObtenerProducto(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	return q.productos.ObtenerPorIDTx(ctx, q.tx, id)
}

func (q consultasTx) CodigosActivosDeProducto(ctx context.Context, productoID uuid.UUID) ([]model.CodigoBarras, error) {
	return q.codigos.BuscarPorProductoTx(ctx, q.tx, productoID)
}
