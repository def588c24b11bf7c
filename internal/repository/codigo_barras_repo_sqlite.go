package repository

import (
	"context"
	"database/sql"
	"errors"

	"catalogo/internal/apperr"
	"catalogo/internal/model"

	"github.com/google/uuid"
)

const codigoColumnas = `id, tipo, valor, fecha_asignacion, observaciones, producto_id, eliminado`

type codigoBarrasSQLiteRepo struct{}

// NewSQLiteCodigoBarrasStore returns the sqlx-backed CodigoBarrasStore.
func NewSQLiteCodigoBarrasStore() CodigoBarrasStore { return codigoBarrasSQLiteRepo{} }

func (codigoBarrasSQLiteRepo) CrearTx(ctx context.Context, tx *Tx, c *model.CodigoBarras) error {
	conn, err := sqliteConn(tx)
	if err != nil {
		return err
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.Eliminado = false
	_, err = conn.ExecContext(ctx, `
		INSERT INTO codigos_barras (`+codigoColumnas+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, string(c.Tipo), c.Valor, c.FechaAsignacion, c.Observaciones, c.ProductoID, c.Eliminado)
	return err
}

func (codigoBarrasSQLiteRepo) ObtenerPorIDTx(ctx context.Context, tx *Tx, id uuid.UUID) (*model.CodigoBarras, error) {
	conn, err := sqliteConn(tx)
	if err != nil {
		return nil, err
	}
	var c model.CodigoBarras
	err = conn.GetContext(ctx, &c, `SELECT `+codigoColumnas+` FROM codigos_barras WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NewNotFound("codigo de barras", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (codigoBarrasSQLiteRepo) ListarTx(ctx context.Context, tx *Tx, soloActivos bool) ([]model.CodigoBarras, error) {
	q := `SELECT ` + codigoColumnas + ` FROM codigos_barras`
	if soloActivos {
		q += ` WHERE eliminado = 0`
	}
	return selectCodigos(ctx, tx, q+` ORDER BY valor ASC, id ASC`)
}

func (codigoBarrasSQLiteRepo) ActualizarTx(ctx context.Context, tx *Tx, c *model.CodigoBarras) error {
	conn, err := sqliteConn(tx)
	if err != nil {
		return err
	}
	res, err := conn.ExecContext(ctx, `
		UPDATE codigos_barras
		SET tipo = ?, valor = ?, fecha_asignacion = ?, observaciones = ?, producto_id = ?
		WHERE id = ? AND eliminado = 0`,
		string(c.Tipo), c.Valor, c.FechaAsignacion, c.Observaciones, c.ProductoID, c.ID)
	if err != nil {
		return err
	}
	return exigirFila(res, "codigo de barras", c.ID)
}

func (codigoBarrasSQLiteRepo) EliminarTx(ctx context.Context, tx *Tx, id uuid.UUID) error {
	conn, err := sqliteConn(tx)
	if err != nil {
		return err
	}
	res, err := conn.ExecContext(ctx, `UPDATE codigos_barras SET eliminado = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return exigirFila(res, "codigo de barras", id)
}

func (codigoBarrasSQLiteRepo) BuscarPorValorTx(ctx context.Context, tx *Tx, valor string) (*model.CodigoBarras, error) {
	codigos, err := selectCodigos(ctx, tx, `
		SELECT `+codigoColumnas+` FROM codigos_barras
		WHERE valor = ? AND eliminado = 0
		ORDER BY id ASC LIMIT 1`, valor)
	if err != nil {
		return nil, err
	}
	if len(codigos) == 0 {
		return nil, &apperr.NotFoundError{Entidad: "codigo de barras", ID: valor}
	}
	return &codigos[0], nil
}

func (codigoBarrasSQLiteRepo) BuscarPorProductoTx(ctx context.Context, tx *Tx, productoID uuid.UUID) ([]model.CodigoBarras, error) {
	return selectCodigos(ctx, tx, `
		SELECT `+codigoColumnas+` FROM codigos_barras
		WHERE producto_id = ? AND eliminado = 0
		ORDER BY id ASC`, productoID)
}

func (codigoBarrasSQLiteRepo) BuscarPorTipoTx(ctx context.Context, tx *Tx, tipo model.TipoCodigo) ([]model.CodigoBarras, error) {
	return selectCodigos(ctx, tx, `
		SELECT `+codigoColumnas+` FROM codigos_barras
		WHERE tipo = ? AND eliminado = 0
		ORDER BY valor ASC, id ASC`, string(tipo))
}

func selectCodigos(ctx context.Context, tx *Tx, q string, args ...interface{}) ([]model.CodigoBarras, error) {
	conn, err := sqliteConn(tx)
	if err != nil {
		return nil, err
	}
	codigos := []model.CodigoBarras{}
	if err := conn.SelectContext(ctx, &codigos, q, args...); err != nil {
		return nil, err
	}
	return codigos, nil
}
