package service_test

import (
	"context"
	"path/filepath"
	"sort"
	"testing"

	"catalogo/internal/apperr"
	"catalogo/internal/infra"
	"catalogo/internal/model"
	"catalogo/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ── Stub TxProvider ───────────────────────────────────────────────────────────

type stubTxProvider struct {
	beginErr    error
	commitErr   error
	rollbackErr error

	begins    int
	commits   int
	rollbacks int
	abiertas  []*repository.Tx
}

func (p *stubTxProvider) Begin(context.Context) (*repository.Tx, error) {
	p.begins++
	if p.beginErr != nil {
		return nil, p.beginErr
	}
	tx := repository.NewTx(nil,
		func() error { p.commits++; return p.commitErr },
		func() error { p.rollbacks++; return p.rollbackErr },
	)
	p.abiertas = append(p.abiertas, tx)
	return tx, nil
}

func (p *stubTxProvider) ultima() *repository.Tx { return p.abiertas[len(p.abiertas)-1] }

var _ repository.TxProvider = (*stubTxProvider)(nil)

// ── In-memory stores ──────────────────────────────────────────────────────────

type stubProductoStore struct {
	productos     map[uuid.UUID]*model.Producto
	errActualizar error
}

func newStubProductoStore() *stubProductoStore {
	return &stubProductoStore{productos: make(map[uuid.UUID]*model.Producto)}
}

func (s *stubProductoStore) CrearTx(_ context.Context, _ *repository.Tx, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	s.productos[p.ID] = &cp
	return nil
}

func (s *stubProductoStore) ObtenerPorIDTx(_ context.Context, _ *repository.Tx, id uuid.UUID) (*model.Producto, error) {
	p, ok := s.productos[id]
	if !ok {
		return nil, apperr.NewNotFound("producto", id)
	}
	cp := *p
	return &cp, nil
}

func (s *stubProductoStore) ListarTx(_ context.Context, _ *repository.Tx, soloActivos bool) ([]model.Producto, error) {
	out := []model.Producto{}
	for _, p := range s.productos {
		if soloActivos && p.Eliminado {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (s *stubProductoStore) ActualizarTx(_ context.Context, _ *repository.Tx, p *model.Producto) error {
	if s.errActualizar != nil {
		return s.errActualizar
	}
	actual, ok := s.productos[p.ID]
	if !ok || actual.Eliminado {
		return apperr.NewNotFound("producto", p.ID)
	}
	cp := *p
	s.productos[p.ID] = &cp
	return nil
}

func (s *stubProductoStore) EliminarTx(_ context.Context, _ *repository.Tx, id uuid.UUID) error {
	p, ok := s.productos[id]
	if !ok {
		return apperr.NewNotFound("producto", id)
	}
	p.Eliminado = true
	return nil
}

var _ repository.ProductoStore = (*stubProductoStore)(nil)

type stubCodigoStore struct {
	codigos  map[uuid.UUID]*model.CodigoBarras
	errCrear error
}

func newStubCodigoStore() *stubCodigoStore {
	return &stubCodigoStore{codigos: make(map[uuid.UUID]*model.CodigoBarras)}
}

func (s *stubCodigoStore) CrearTx(_ context.Context, _ *repository.Tx, c *model.CodigoBarras) error {
	if s.errCrear != nil {
		return s.errCrear
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	s.codigos[c.ID] = &cp
	return nil
}

func (s *stubCodigoStore) ObtenerPorIDTx(_ context.Context, _ *repository.Tx, id uuid.UUID) (*model.CodigoBarras, error) {
	c, ok := s.codigos[id]
	if !ok {
		return nil, apperr.NewNotFound("codigo de barras", id)
	}
	cp := *c
	return &cp, nil
}

func (s *stubCodigoStore) filtrar(keep func(c *model.CodigoBarras) bool) []model.CodigoBarras {
	out := []model.CodigoBarras{}
	for _, c := range s.codigos {
		if keep(c) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Valor < out[j].Valor })
	return out
}

func (s *stubCodigoStore) ListarTx(_ context.Context, _ *repository.Tx, soloActivos bool) ([]model.CodigoBarras, error) {
	return s.filtrar(func(c *model.CodigoBarras) bool { return !soloActivos || !c.Eliminado }), nil
}

func (s *stubCodigoStore) ActualizarTx(_ context.Context, _ *repository.Tx, c *model.CodigoBarras) error {
	actual, ok := s.codigos[c.ID]
	if !ok || actual.Eliminado {
		return apperr.NewNotFound("codigo de barras", c.ID)
	}
	cp := *c
	s.codigos[c.ID] = &cp
	return nil
}

func (s *stubCodigoStore) EliminarTx(_ context.Context, _ *repository.Tx, id uuid.UUID) error {
	c, ok := s.codigos[id]
	if !ok {
		return apperr.NewNotFound("codigo de barras", id)
	}
	c.Eliminado = true
	return nil
}

func (s *stubCodigoStore) BuscarPorValorTx(_ context.Context, _ *repository.Tx, valor string) (*model.CodigoBarras, error) {
	if m := s.filtrar(func(c *model.CodigoBarras) bool { return c.Valor == valor && !c.Eliminado }); len(m) > 0 {
		return &m[0], nil
	}
	return nil, &apperr.NotFoundError{Entidad: "codigo de barras", ID: valor}
}

func (s *stubCodigoStore) BuscarPorProductoTx(_ context.Context, _ *repository.Tx, productoID uuid.UUID) ([]model.CodigoBarras, error) {
	return s.filtrar(func(c *model.CodigoBarras) bool {
		return c.ProductoID != nil && *c.ProductoID == productoID && !c.Eliminado
	}), nil
}

func (s *stubCodigoStore) BuscarPorTipoTx(_ context.Context, _ *repository.Tx, tipo model.TipoCodigo) ([]model.CodigoBarras, error) {
	return s.filtrar(func(c *model.CodigoBarras) bool { return c.Tipo == tipo && !c.Eliminado }), nil
}

var _ repository.CodigoBarrasStore = (*stubCodigoStore)(nil)

// ── Stub cache ────────────────────────────────────────────────────────────────

type stubCache struct {
	entradas    map[string]model.CodigoBarras
	invalidados []string
}

func newStubCache() *stubCache { return &stubCache{entradas: make(map[string]model.CodigoBarras)} }

func (c *stubCache) Obtener(_ context.Context, valor string) (*model.CodigoBarras, bool) {
	cb, ok := c.entradas[valor]
	if !ok {
		return nil, false
	}
	return &cb, true
}

func (c *stubCache) Guardar(_ context.Context, cb *model.CodigoBarras) { c.entradas[cb.Valor] = *cb }

func (c *stubCache) Invalidar(_ context.Context, valores ...string) {
	for _, v := range valores {
		delete(c.entradas, v)
		c.invalidados = append(c.invalidados, v)
	}
}

// ── Fixtures ──────────────────────────────────────────────────────────────────

func productoValido(nombre string) *model.Producto {
	return &model.Producto{
		Nombre:    nombre,
		Marca:     "Molinos",
		Categoria: "Almacen",
		Precio:    decimal.RequireFromString("899.90"),
	}
}

func codigoEAN13(valor string) *model.CodigoBarras {
	return &model.CodigoBarras{Tipo: model.TipoEAN13, Valor: valor}
}

type sqliteBackend struct {
	txp       repository.TxProvider
	productos repository.ProductoStore
	codigos   repository.CodigoBarrasStore
}

func newSQLiteBackend(t *testing.T) sqliteBackend {
	t.Helper()
	db, err := infra.NewSQLite(filepath.Join(t.TempDir(), "catalogo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqliteBackend{
		txp:       repository.NewSQLiteTxProvider(db),
		productos: repository.NewSQLiteProductoStore(),
		codigos:   repository.NewSQLiteCodigoBarrasStore(),
	}
}
