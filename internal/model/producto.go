package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a catalog item. At most one active CodigoBarras may point to it.
// Eliminado=true marks a logical deletion; rows are never physically removed.
type Producto struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" db:"id"`
	Nombre    string           `gorm:"index;not null" db:"nombre"`
	Marca     string           `gorm:"not null" db:"marca"`
	Categoria string           `gorm:"not null" db:"categoria"`
	Precio    decimal.Decimal  `gorm:"type:decimal(12,2);not null" db:"precio"`
	// Peso is optional: nil means unspecified, which is different from zero.
	Peso      *decimal.Decimal `gorm:"type:decimal(10,3)" db:"peso"`
	Eliminado bool             `gorm:"not null;default:false" db:"eliminado"`
}

func (Producto) TableName() string { return "productos" }
