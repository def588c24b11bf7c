package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRedis = errors.New("dial tcp: connection refused")

type reloj struct{ t time.Time }

func (r *reloj) ahora() time.Time        { return r.t }
func (r *reloj) avanzar(d time.Duration) { r.t = r.t.Add(d) }

func fallar() error { return errRedis }
func ok() error     { return nil }

func newTestBreaker() (*breaker, *reloj) {
	r := &reloj{t: time.Date(2025, 7, 9, 12, 0, 0, 0, time.UTC)}
	b := newBreaker(3, 10*time.Second)
	b.ahora = r.ahora
	return b, r
}

func TestBreakerAbreTrasUmbral(t *testing.T) {
	b, _ := newTestBreaker()

	for i := 0; i < 2; i++ {
		assert.ErrorIs(t, b.Execute(fallar), errRedis)
		assert.Equal(t, circuitoCerrado, b.Estado())
	}
	assert.ErrorIs(t, b.Execute(fallar), errRedis)
	assert.Equal(t, circuitoAbierto, b.Estado())

	llamado := false
	err := b.Execute(func() error { llamado = true; return nil })
	assert.ErrorIs(t, err, errCircuitoAbierto)
	assert.False(t, llamado)
}

func TestBreakerExitoReiniciaConteo(t *testing.T) {
	b, _ := newTestBreaker()

	require.Error(t, b.Execute(fallar))
	require.Error(t, b.Execute(fallar))
	require.NoError(t, b.Execute(ok))
	require.Error(t, b.Execute(fallar))

	assert.Equal(t, circuitoCerrado, b.Estado())
}

func TestBreakerSemiabierto(t *testing.T) {
	b, r := newTestBreaker()
	for i := 0; i < 3; i++ {
		_ = b.Execute(fallar)
	}

	r.avanzar(10 * time.Second)
	assert.Equal(t, circuitoSemiabierto, b.Estado())

	// A failed probe reopens the circuit.
	assert.ErrorIs(t, b.Execute(fallar), errRedis)
	assert.Equal(t, circuitoAbierto, b.Estado())

	r.avanzar(10 * time.Second)
	require.NoError(t, b.Execute(ok))
	assert.Equal(t, circuitoCerrado, b.Estado())
	assert.Equal(t, "closed", b.Estado().String())
}

func TestCodigoCacheSaltaRedisConCircuitoAbierto(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	c := NewCodigoCache(rdb, time.Minute)
	ctx := context.Background()

	s.Close()
	for i := 0; i < umbralFallos; i++ {
		_, hit := c.Obtener(ctx, "7790070000061")
		assert.False(t, hit)
	}
	assert.Equal(t, circuitoAbierto, c.cb.Estado())

	// Misses stay silent and cheap while open.
	_, hit := c.Obtener(ctx, "7790070000061")
	assert.False(t, hit)
}
