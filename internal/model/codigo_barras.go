package model

import "github.com/google/uuid"

// TipoCodigo enumerates the supported barcode symbologies.
type TipoCodigo string

const (
	TipoEAN13   TipoCodigo = "EAN13"
	TipoEAN8    TipoCodigo = "EAN8"
	TipoUPCA    TipoCodigo = "UPCA"
	TipoCODE128 TipoCodigo = "CODE128"
)

// TiposCodigo lists every known TipoCodigo in display order.
var TiposCodigo = []TipoCodigo{TipoEAN13, TipoEAN8, TipoUPCA, TipoCODE128}

// Valido reports whether t is one of the known symbologies.
func (t TipoCodigo) Valido() bool {
	for _, k := range TiposCodigo {
		if t == k {
			return true
		}
	}
	return false
}

// CodigoBarras is the barcode assigned to a Producto (1:1 while both are active).
// ProductoID is nil only transiently, before the product has been created.
type CodigoBarras struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" db:"id"`
	Tipo            TipoCodigo `gorm:"type:varchar(16);not null;index" db:"tipo"`
	Valor           string     `gorm:"not null;index" db:"valor"`
	FechaAsignacion *Fecha     `gorm:"type:date" db:"fecha_asignacion"`
	Observaciones   *string    `db:"observaciones"`
	ProductoID      *uuid.UUID `gorm:"type:uuid;index" db:"producto_id"`
	Eliminado       bool       `gorm:"not null;default:false" db:"eliminado"`
}

func (CodigoBarras) TableName() string { return "codigos_barras" }
