package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var errTxRequerida = errors.New("repository: se requiere una transaccion")

type gormTxProvider struct{ db *gorm.DB }

// NewGormTxProvider opens transactions on a GORM connection pool.
func NewGormTxProvider(db *gorm.DB) TxProvider { return &gormTxProvider{db: db} }

func (p *gormTxProvider) Begin(ctx context.Context) (*Tx, error) {
	tx := p.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return NewTx(tx,
		func() error { return tx.Commit().Error },
		func() error { return tx.Rollback().Error },
	), nil
}

// gormConn extracts the *gorm.DB bound to tx.
func gormConn(ctx context.Context, tx *Tx) (*gorm.DB, error) {
	if tx == nil {
		return nil, errTxRequerida
	}
	db, ok := tx.Conn().(*gorm.DB)
	if !ok {
		return nil, fmt.Errorf("repository: la transaccion %T no pertenece al backend gorm", tx.Conn())
	}
	return db.WithContext(ctx), nil
}
