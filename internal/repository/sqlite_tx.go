package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type sqliteTxProvider struct{ db *sqlx.DB }

// NewSQLiteTxProvider opens transactions on an sqlx/SQLite database.
func NewSQLiteTxProvider(db *sqlx.DB) TxProvider { return &sqliteTxProvider{db: db} }

func (p *sqliteTxProvider) Begin(ctx context.Context) (*Tx, error) {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewTx(tx, tx.Commit, tx.Rollback), nil
}

// sqliteConn extracts the *sqlx.Tx bound to tx.
func sqliteConn(tx *Tx) (*sqlx.Tx, error) {
	if tx == nil {
		return nil, errTxRequerida
	}
	conn, ok := tx.Conn().(*sqlx.Tx)
	if !ok {
		return nil, fmt.Errorf("repository: la transaccion %T no pertenece al backend sqlite", tx.Conn())
	}
	return conn, nil
}
