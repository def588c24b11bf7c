// Package apperr defines the error taxonomy shared by the validation engine,
// the record stores and the transactional services. HTTP and CLI layers map
// these types to user-facing messages; nothing here is retried automatically.
package apperr

import (
	"errors"
	"fmt"
)

// Regla identifies which validation rule a candidate entity violated.
type Regla string

const (
	ReglaObligatorio Regla = "obligatorio"
	ReglaRango       Regla = "rango"
	ReglaFormato     Regla = "formato"
	ReglaReferencia  Regla = "referencia"
	ReglaUnoAUno     Regla = "uno_a_uno"
)

// ValidationError is bad input or an invariant violation. Only the first
// failing rule is reported.
type ValidationError struct {
	Regla   Regla
	Campo   string
	Mensaje string
	// Err is the underlying cause, e.g. a NotFoundError for ReglaReferencia.
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validacion %s en %q: %s", e.Regla, e.Campo, e.Mensaje)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidation builds a ValidationError without an underlying cause.
func NewValidation(regla Regla, campo, mensaje string) *ValidationError {
	return &ValidationError{Regla: regla, Campo: campo, Mensaje: mensaje}
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Entidad string
	ID      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s no encontrado", e.Entidad, e.ID)
}

// NewNotFound builds a NotFoundError for entidad with the given id.
func NewNotFound(entidad string, id fmt.Stringer) *NotFoundError {
	return &NotFoundError{Entidad: entidad, ID: id.String()}
}

// RollbackError is a failure while rolling back. It is always reported next to
// the error that triggered the rollback.
type RollbackError struct {
	Err error
}

func (e *RollbackError) Error() string { return "rollback fallido: " + e.Err.Error() }

func (e *RollbackError) Unwrap() error { return e.Err }

// TransactionError wraps any failure that happened once a transaction was open.
type TransactionError struct {
	Op       string
	Err      error
	Rollback *RollbackError
}

func (e *TransactionError) Error() string {
	msg := fmt.Sprintf("error en la transaccion %s: %v", e.Op, e.Err)
	if e.Rollback != nil {
		msg += " (" + e.Rollback.Error() + ")"
	}
	return msg
}

// Unwrap exposes both the triggering error and, when present, the rollback
// failure so errors.Is / errors.As can reach either of them.
func (e *TransactionError) Unwrap() []error {
	if e.Rollback != nil {
		return []error{e.Err, e.Rollback}
	}
	return []error{e.Err}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ReglaDe returns the rule of the first ValidationError found in err's chain.
func ReglaDe(err error) (Regla, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Regla, true
	}
	return "", false
}
