package repository

import (
	"context"
	"database/sql"
	"errors"

	"catalogo/internal/apperr"
	"catalogo/internal/model"

	"github.com/google/uuid"
)

const productoColumnas = `id, nombre, marca, categoria, precio, peso, eliminado`

type productoSQLiteRepo struct{}

// NewSQLiteProductoStore returns the sqlx-backed ProductoStore used with
// NewSQLiteTxProvider.
func NewSQLiteProductoStore() ProductoStore { return productoSQLiteRepo{} }

func (productoSQLiteRepo) CrearTx(ctx context.Context, tx *Tx, p *model.Producto) error {
	conn, err := sqliteConn(tx)
	if err != nil {
		return err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Eliminado = false
	_, err = conn.ExecContext(ctx, `
		INSERT INTO productos (`+productoColumnas+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Nombre, p.Marca, p.Categoria, p.Precio, p.Peso, p.Eliminado)
	return err
}

func (productoSQLiteRepo) ObtenerPorIDTx(ctx context.Context, tx *Tx, id uuid.UUID) (*model.Producto, error) {
	conn, err := sqliteConn(tx)
	if err != nil {
		return nil, err
	}
	var p model.Producto
	err = conn.GetContext(ctx, &p, `SELECT `+productoColumnas+` FROM productos WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NewNotFound("producto", id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (productoSQLiteRepo) ListarTx(ctx context.Context, tx *Tx, soloActivos bool) ([]model.Producto, error) {
	conn, err := sqliteConn(tx)
	if err != nil {
		return nil, err
	}
	q := `SELECT ` + productoColumnas + ` FROM productos`
	if soloActivos {
		q += ` WHERE eliminado = 0`
	}
	q += ` ORDER BY nombre ASC, id ASC`

	productos := []model.Producto{}
	if err := conn.SelectContext(ctx, &productos, q); err != nil {
		return nil, err
	}
	return productos, nil
}

func (productoSQLiteRepo) ActualizarTx(ctx context.Context, tx *Tx, p *model.Producto) error {
	conn, err := sqliteConn(tx)
	if err != nil {
		return err
	}
	res, err := conn.ExecContext(ctx, `
		UPDATE productos
		SET nombre = ?, marca = ?, categoria = ?, precio = ?, peso = ?
		WHERE id = ? AND eliminado = 0`,
		p.Nombre, p.Marca, p.Categoria, p.Precio, p.Peso, p.ID)
	if err != nil {
		return err
	}
	return exigirFila(res, "producto", p.ID)
}

func (productoSQLiteRepo) EliminarTx(ctx context.Context, tx *Tx, id uuid.UUID) error {
	conn, err := sqliteConn(tx)
	if err != nil {
		return err
	}
	res, err := conn.ExecContext(ctx, `UPDATE productos SET eliminado = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return exigirFila(res, "producto", id)
}

// exigirFila turns a zero-row UPDATE into a NotFoundError.
func exigirFila(res sql.Result, entidad string, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NewNotFound(entidad, id)
	}
	return nil
}
