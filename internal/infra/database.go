package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection to PostgreSQL and applies the
// idempotent bootstrap DDL for the catalog tables.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}
	return db, nil
}

// applySchemaPatches runs DDL that is safe to re-run on every boot. The
// partial unique index backs the one-active-barcode-per-product rule at the
// storage level, closing the check-then-insert race between two writers.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`CREATE TABLE IF NOT EXISTS productos (
			id        UUID PRIMARY KEY,
			nombre    TEXT NOT NULL,
			marca     TEXT NOT NULL,
			categoria TEXT NOT NULL,
			precio    DECIMAL(12,2) NOT NULL CHECK (precio >= 0),
			peso      DECIMAL(10,3) CHECK (peso >= 0),
			eliminado BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_productos_nombre ON productos (nombre)`,
		`CREATE TABLE IF NOT EXISTS codigos_barras (
			id               UUID PRIMARY KEY,
			tipo             VARCHAR(16) NOT NULL,
			valor            TEXT NOT NULL,
			fecha_asignacion DATE,
			observaciones    TEXT,
			producto_id      UUID REFERENCES productos(id),
			eliminado        BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_codigos_barras_valor ON codigos_barras (valor)`,
		`CREATE INDEX IF NOT EXISTS idx_codigos_barras_tipo ON codigos_barras (tipo)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_codigos_barras_producto_activo
			ON codigos_barras (producto_id) WHERE eliminado = FALSE`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}

