package repository

import (
	"context"
	"errors"
	"fmt"

	"catalogo/internal/apperr"

	"github.com/rs/zerolog/log"
)

// EstadoTx is the lifecycle state of a transaction handle.
type EstadoTx int

const (
	TxAbierta EstadoTx = iota
	TxConfirmada
	TxRevertida
	// TxFallida means Commit was attempted and failed; the driver already
	// discarded the transaction.
	TxFallida
)

func (e EstadoTx) String() string {
	switch e {
	case TxAbierta:
		return "abierta"
	case TxConfirmada:
		return "confirmada"
	case TxRevertida:
		return "revertida"
	case TxFallida:
		return "fallida"
	default:
		return fmt.Sprintf("EstadoTx(%d)", int(e))
	}
}

// ErrTxFinalizada is returned when Commit or Rollback is called on a handle
// that was already committed or rolled back.
var ErrTxFinalizada = errors.New("la transaccion ya fue finalizada")

// Tx is a transaction handle. It is owned by whoever called Begin and must not
// be shared across concurrent operations. Stores accept it but never close it.
type Tx struct {
	conn     any
	commit   func() error
	rollback func() error
	estado   EstadoTx
}

// NewTx wraps a backend connection with its commit/rollback functions.
// Backends pass their native transaction as conn (*gorm.DB, *sqlx.Tx).
func NewTx(conn any, commit, rollback func() error) *Tx {
	return &Tx{conn: conn, commit: commit, rollback: rollback, estado: TxAbierta}
}

// Conn returns the backend connection bound to this transaction.
func (t *Tx) Conn() any { return t.conn }

func (t *Tx) Estado() EstadoTx { return t.estado }

func (t *Tx) Commit() error {
	if t.estado != TxAbierta {
		return ErrTxFinalizada
	}
	if err := t.commit(); err != nil {
		t.estado = TxFallida
		return err
	}
	t.estado = TxConfirmada
	return nil
}

// Rollback discards the transaction. After a failed Commit it is a no-op.
func (t *Tx) Rollback() error {
	switch t.estado {
	case TxFallida:
		return nil
	case TxAbierta:
	default:
		return ErrTxFinalizada
	}
	t.estado = TxRevertida
	return t.rollback()
}

// Close releases the handle. It is idempotent: after Commit or Rollback it
// does nothing; on a still-open handle it rolls back.
func (t *Tx) Close() error {
	if t.estado != TxAbierta {
		return nil
	}
	return t.Rollback()
}

// TxProvider opens transactions on a concrete backend.
type TxProvider interface {
	Begin(ctx context.Context) (*Tx, error)
}

// WithTx runs fn inside a transaction it owns: commit on success, rollback on
// any error, and the handle is closed on every exit path (panics included).
// A rollback failure is attached to the returned error, never replacing it.
func WithTx(ctx context.Context, p TxProvider, fn func(tx *Tx) error) (err error) {
	tx, err := p.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: begin tx: %w", err)
	}
	defer func() {
		if cerr := tx.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("repository: close tx")
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, &apperr.RollbackError{Err: rbErr})
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repository: commit tx: %w", err)
	}
	return nil
}
