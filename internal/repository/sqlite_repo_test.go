package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"catalogo/internal/apperr"
	"catalogo/internal/infra"
	"catalogo/internal/model"
	"catalogo/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

// storeFixture is one empty catalog on a given backend.
type storeFixture struct {
	txp           repository.TxProvider
	productoStore repository.ProductoStore
	codigoStore   repository.CodigoBarrasStore
	productos     *repository.ProductoRepository
	codigos       *repository.CodigoBarrasRepository
}

func newStoreFixture(txp repository.TxProvider, ps repository.ProductoStore, cs repository.CodigoBarrasStore) storeFixture {
	return storeFixture{
		txp:           txp,
		productoStore: ps,
		codigoStore:   cs,
		productos:     repository.NewProductoRepository(txp, ps),
		codigos:       repository.NewCodigoBarrasRepository(txp, cs),
	}
}

func newSQLiteFixture(t *testing.T) storeFixture {
	t.Helper()
	db, err := infra.NewSQLite(filepath.Join(t.TempDir(), "catalogo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return newStoreFixture(repository.NewSQLiteTxProvider(db), repository.NewSQLiteProductoStore(), repository.NewSQLiteCodigoBarrasStore())
}

// storeSuite holds the behaviour every backend must share. Each case gets a
// fresh, empty fixture.
var storeSuite = []struct {
	name string
	run  func(t *testing.T, fx storeFixture)
}{
	{"ProductoCrearYObtener", casoProductoCrearYObtener},
	{"ProductoSinPeso", casoProductoSinPeso},
	{"ProductoObtenerInexistente", casoProductoObtenerInexistente},
	{"ProductoListarOrdenado", casoProductoListarOrdenado},
	{"ProductoEliminadoLogico", casoProductoEliminadoLogico},
	{"ProductoActualizar", casoProductoActualizar},
	{"ProductoActualizarEliminadoFalla", casoProductoActualizarEliminadoFalla},
	{"ProductoEliminarInexistente", casoProductoEliminarInexistente},
	{"CodigoCrearYBuscar", casoCodigoCrearYBuscar},
	{"CodigoBuscarPorValorInexistente", casoCodigoBuscarPorValorInexistente},
	{"CodigoIndiceUnicoActivoPorProducto", casoCodigoIndiceUnicoActivoPorProducto},
	{"CodigoEliminadoNoApareceEnBusquedas", casoCodigoEliminadoNoApareceEnBusquedas},
	{"CodigoReferenciaInexistenteFalla", casoCodigoReferenciaInexistenteFalla},
	{"CodigoActualizar", casoCodigoActualizar},
	{"CodigoActualizarEliminadoFalla", casoCodigoActualizarEliminadoFalla},
	{"StoreNoCierraTxAjena", casoStoreNoCierraTxAjena},
}

func runStoreSuite(t *testing.T, nuevo func(t *testing.T) storeFixture) {
	for _, tc := range storeSuite {
		t.Run(tc.name, func(t *testing.T) { tc.run(t, nuevo(t)) })
	}
}

func TestSQLiteStores(t *testing.T) {
	runStoreSuite(t, newSQLiteFixture)
}

func nuevoProducto(nombre string) *model.Producto {
	peso := decimal.RequireFromString("0.750")
	return &model.Producto{
		Nombre:    nombre,
		Marca:     "La Serenisima",
		Categoria: "Lacteos",
		Precio:    decimal.RequireFromString("1250.50"),
		Peso:      &peso,
	}
}

func nuevoCodigo(valor string, productoID uuid.UUID) *model.CodigoBarras {
	f, _ := model.ParseFecha("2024-03-01")
	return &model.CodigoBarras{
		Tipo:            model.TipoEAN13,
		Valor:           valor,
		FechaAsignacion: &f,
		ProductoID:      &productoID,
	}
}

// ── Producto ──────────────────────────────────────────────────────────────────

func casoProductoCrearYObtener(t *testing.T, fx storeFixture) {
	ctx := context.Background()

	p := nuevoProducto("Leche entera 1L")
	require.NoError(t, fx.productos.Crear(ctx, p))
	require.NotEqual(t, uuid.Nil, p.ID)

	got, err := fx.productos.ObtenerPorID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Leche entera 1L", got.Nombre)
	assert.True(t, p.Precio.Equal(got.Precio))
	require.NotNil(t, got.Peso)
	assert.Equal(t, "0.75", got.Peso.String())
	assert.False(t, got.Eliminado)
}

func casoProductoSinPeso(t *testing.T, fx storeFixture) {
	ctx := context.Background()

	p := nuevoProducto("Yerba 1kg")
	p.Peso = nil
	require.NoError(t, fx.productos.Crear(ctx, p))

	got, err := fx.productos.ObtenerPorID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Peso)
}

func casoProductoObtenerInexistente(t *testing.T, fx storeFixture) {
	_, err := fx.productos.ObtenerPorID(context.Background(), uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}

func casoProductoListarOrdenado(t *testing.T, fx storeFixture) {
	ctx := context.Background()

	for _, n := range []string{"Fideos", "Arroz", "Manteca"} {
		require.NoError(t, fx.productos.Crear(ctx, nuevoProducto(n)))
	}

	primera, err := fx.productos.Listar(ctx, true)
	require.NoError(t, err)
	segunda, err := fx.productos.Listar(ctx, true)
	require.NoError(t, err)

	require.Len(t, primera, 3)
	assert.Equal(t, "Arroz", primera[0].Nombre)
	assert.Equal(t, "Fideos", primera[1].Nombre)
	assert.Equal(t, "Manteca", primera[2].Nombre)
	assert.Equal(t, primera, segunda)
}

func casoProductoEliminadoLogico(t *testing.T, fx storeFixture) {
	ctx := context.Background()

	p := nuevoProducto("Galletitas")
	require.NoError(t, fx.productos.Crear(ctx, p))
	require.NoError(t, fx.productos.Eliminar(ctx, p.ID))

	activos, err := fx.productos.Listar(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, activos)

	todos, err := fx.productos.Listar(ctx, false)
	require.NoError(t, err)
	assert.Len(t, todos, 1)

	got, err := fx.productos.ObtenerPorID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Eliminado)
}

func casoProductoActualizar(t *testing.T, fx storeFixture) {
	ctx := context.Background()

	p := nuevoProducto("Cafe")
	require.NoError(t, fx.productos.Crear(ctx, p))

	p.Nombre = "Cafe molido 500g"
	p.Precio = decimal.RequireFromString("3100")
	require.NoError(t, fx.productos.Actualizar(ctx, p))

	got, err := fx.productos.ObtenerPorID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cafe molido 500g", got.Nombre)
	assert.Equal(t, "3100", got.Precio.String())
}

func casoProductoActualizarEliminadoFalla(t *testing.T, fx storeFixture) {
	ctx := context.Background()

	p := nuevoProducto("Te")
	require.NoError(t, fx.productos.Crear(ctx, p))
	require.NoError(t, fx.productos.Eliminar(ctx, p.ID))

	p.Nombre = "Te verde"
	assert.True(t, apperr.IsNotFound(fx.productos.Actualizar(ctx, p)))
}

func casoProductoEliminarInexistente(t *testing.T, fx storeFixture) {
	assert.True(t, apperr.IsNotFound(fx.productos.Eliminar(context.Background(), uuid.New())))
}

// ── CodigoBarras ──────────────────────────────────────────────────────────────

func casoCodigoCrearYBuscar(t *testing.T, fx storeFixture) {
	ctx := context.Background()

	p := nuevoProducto("Aceite")
	require.NoError(t, fx.productos.Crear(ctx, p))
	c := nuevoCodigo("7790001000012", p.ID)
	require.NoError(t, fx.codigos.Crear(ctx, c))

	got, err := fx.codigos.ObtenerPorID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TipoEAN13, got.Tipo)
	require.NotNil(t, got.ProductoID)
	assert.Equal(t, p.ID, *got.ProductoID)
	require.NotNil(t, got.FechaAsignacion)
	assert.Equal(t, "2024-03-01", got.FechaAsignacion.String())
	assert.Nil(t, got.Observaciones)

	porValor, err := fx.codigos.BuscarPorValor(ctx, "7790001000012")
	require.NoError(t, err)
	assert.Equal(t, c.ID, porValor.ID)

	porProducto, err := fx.codigos.BuscarPorProducto(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, porProducto, 1)

	porTipo, err := fx.codigos.BuscarPorTipo(ctx, model.TipoEAN13)
	require.NoError(t, err)
	assert.Len(t, porTipo, 1)

	porOtroTipo, err := fx.codigos.BuscarPorTipo(ctx, model.TipoCODE128)
	require.NoError(t, err)
	assert.NotNil(t, porOtroTipo)
	assert.Empty(t, porOtroTipo)
}

func casoCodigoBuscarPorValorInexistente(t *testing.T, fx storeFixture) {
	_, err := fx.codigos.BuscarPorValor(context.Background(), "CB-404")
	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "CB-404", nf.ID)
}

func casoCodigoIndiceUnicoActivoPorProducto(t *testing.T, fx storeFixture) {
	ctx := context.Background()

	p := nuevoProducto("Harina")
	require.NoError(t, fx.productos.Crear(ctx, p))
	primero := nuevoCodigo("7790002000019", p.ID)
	require.NoError(t, fx.codigos.Crear(ctx, primero))

	assert.Error(t, fx.codigos.Crear(ctx, nuevoCodigo("7790002000026", p.ID)))

	require.NoError(t, fx.codigos.Eliminar(ctx, primero.ID))
	assert.NoError(t, fx.codigos.Crear(ctx, nuevoCodigo("7790002000026", p.ID)))
}

func casoCodigoEliminadoNoApareceEnBusquedas(t *testing.T, fx storeFixture) {
	ctx := context.Background()

	p := nuevoProducto("Azucar")
	require.NoError(t, fx.productos.Crear(ctx, p))
	c := nuevoCodigo("7790003000016", p.ID)
	require.NoError(t, fx.codigos.Crear(ctx, c))
	require.NoError(t, fx.codigos.Eliminar(ctx, c.ID))

	_, err := fx.codigos.BuscarPorValor(ctx, c.Valor)
	assert.True(t, apperr.IsNotFound(err))

	porProducto, err := fx.codigos.BuscarPorProducto(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, porProducto)

	activos, err := fx.codigos.Listar(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, activos)

	got, err := fx.codigos.ObtenerPorID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.Eliminado)
}

func casoCodigoReferenciaInexistenteFalla(t *testing.T, fx storeFixture) {
	assert.Error(t, fx.codigos.Crear(context.Background(), nuevoCodigo("7790004000013", uuid.New())))
}

func casoCodigoActualizar(t *testing.T, fx storeFixture) {
	ctx := context.Background()

	p := nuevoProducto("Sal")
	require.NoError(t, fx.productos.Crear(ctx, p))
	c := nuevoCodigo("7790005000010", p.ID)
	require.NoError(t, fx.codigos.Crear(ctx, c))

	obs := "reetiquetado"
	c.Valor = "7790005000027"
	c.Observaciones = &obs
	require.NoError(t, fx.codigos.Actualizar(ctx, c))

	got, err := fx.codigos.ObtenerPorID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "7790005000027", got.Valor)
	require.NotNil(t, got.Observaciones)
	assert.Equal(t, "reetiquetado", *got.Observaciones)
}

func casoCodigoActualizarEliminadoFalla(t *testing.T, fx storeFixture) {
	ctx := context.Background()

	p := nuevoProducto("Pimienta")
	require.NoError(t, fx.productos.Crear(ctx, p))
	c := nuevoCodigo("7790006000017", p.ID)
	require.NoError(t, fx.codigos.Crear(ctx, c))
	require.NoError(t, fx.codigos.Eliminar(ctx, c.ID))

	c.Valor = "7790006000024"
	assert.True(t, apperr.IsNotFound(fx.codigos.Actualizar(ctx, c)))
}

// ── Participating variant ─────────────────────────────────────────────────────

func casoStoreNoCierraTxAjena(t *testing.T, fx storeFixture) {
	ctx := context.Background()

	tx, err := fx.txp.Begin(ctx)
	require.NoError(t, err)
	p := nuevoProducto("Vinagre")
	require.NoError(t, fx.productoStore.CrearTx(ctx, tx, p))
	assert.Equal(t, repository.TxAbierta, tx.Estado())

	// Rolled back: the row must be gone.
	require.NoError(t, tx.Rollback())
	require.NoError(t, tx.Close())

	_, err = fx.productos.ObtenerPorID(ctx, p.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestGormStoreRechazaTxSQLite(t *testing.T) {
	db, err := infra.NewSQLite(filepath.Join(t.TempDir(), "catalogo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()

	err = repository.WithTx(ctx, repository.NewSQLiteTxProvider(db), func(tx *repository.Tx) error {
		return repository.NewGormProductoStore().CrearTx(ctx, tx, nuevoProducto("Miel"))
	})
	assert.ErrorContains(t, err, "no pertenece al backend gorm")
}

func TestStoreSinTx(t *testing.T) {
	err := repository.NewSQLiteProductoStore().CrearTx(context.Background(), nil, nuevoProducto("Pan"))
	assert.Error(t, err)
}
