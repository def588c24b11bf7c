package infra

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// NewSQLite opens (or creates) the SQLite database at path and applies the
// bootstrap schema. Foreign keys are enforced on every pooled connection.
func NewSQLite(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer; one connection keeps transactions from
	// failing with SQLITE_BUSY under the pool.
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}
	return db, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Prices and weights are stored as TEXT so decimals round-trip exactly.
func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS productos(
  id        TEXT PRIMARY KEY,
  nombre    TEXT NOT NULL,
  marca     TEXT NOT NULL,
  categoria TEXT NOT NULL,
  precio    TEXT NOT NULL,
  peso      TEXT,
  eliminado INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_productos_nombre ON productos(nombre);

CREATE TABLE IF NOT EXISTS codigos_barras(
  id               TEXT PRIMARY KEY,
  tipo             TEXT NOT NULL,
  valor            TEXT NOT NULL,
  fecha_asignacion TEXT,
  observaciones    TEXT,
  producto_id      TEXT REFERENCES productos(id),
  eliminado        INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_codigos_barras_valor ON codigos_barras(valor);
CREATE INDEX IF NOT EXISTS idx_codigos_barras_tipo  ON codigos_barras(tipo);
CREATE UNIQUE INDEX IF NOT EXISTS uq_codigos_barras_producto_activo
  ON codigos_barras(producto_id) WHERE eliminado = 0;
`
	_, err := db.Exec(schema)
	return err
}
