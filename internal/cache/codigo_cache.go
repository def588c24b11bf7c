// Package cache keeps barcode lookups by valor in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"catalogo/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	prefijoCodigo = "codigo:valor:"

	umbralFallos  = 5
	pausaCircuito = 30 * time.Second
)

// CodigoCache stores active barcodes keyed by valor. Every method is
// best-effort: Redis failures are logged and treated as a miss. After
// repeated failures calls are skipped until the circuit half-opens.
type CodigoCache struct {
	rdb *redis.Client
	ttl time.Duration
	cb  *breaker
}

func NewCodigoCache(rdb *redis.Client, ttl time.Duration) *CodigoCache {
	return &CodigoCache{rdb: rdb, ttl: ttl, cb: newBreaker(umbralFallos, pausaCircuito)}
}

func clave(valor string) string { return prefijoCodigo + valor }

func (c *CodigoCache) Obtener(ctx context.Context, valor string) (*model.CodigoBarras, bool) {
	var b []byte
	err := c.cb.Execute(func() error {
		var err error
		b, err = c.rdb.Get(ctx, clave(valor)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	})
	if err != nil {
		if !errors.Is(err, errCircuitoAbierto) {
			log.Warn().Err(err).Str("valor", valor).Msg("cache: lectura fallida")
		}
		return nil, false
	}
	if b == nil {
		return nil, false
	}
	var cb model.CodigoBarras
	if err := json.Unmarshal(b, &cb); err != nil {
		log.Warn().Err(err).Str("valor", valor).Msg("cache: entrada corrupta")
		return nil, false
	}
	return &cb, true
}

func (c *CodigoCache) Guardar(ctx context.Context, cb *model.CodigoBarras) {
	b, err := json.Marshal(cb)
	if err != nil {
		log.Warn().Err(err).Msg("cache: no se pudo serializar el codigo")
		return
	}
	err = c.cb.Execute(func() error { return c.rdb.Set(ctx, clave(cb.Valor), b, c.ttl).Err() })
	if err != nil && !errors.Is(err, errCircuitoAbierto) {
		log.Warn().Err(err).Str("valor", cb.Valor).Msg("cache: escritura fallida")
	}
}

func (c *CodigoCache) Invalidar(ctx context.Context, valores ...string) {
	if len(valores) == 0 {
		return
	}
	claves := make([]string, 0, len(valores))
	for _, v := range valores {
		if v != "" {
			claves = append(claves, clave(v))
		}
	}
	if len(claves) == 0 {
		return
	}
	err := c.cb.Execute(func() error { return c.rdb.Del(ctx, claves...).Err() })
	if err != nil && !errors.Is(err, errCircuitoAbierto) {
		log.Warn().Err(err).Strs("valores", valores).Msg("cache: invalidacion fallida")
	}
}

// PingContext reports whether Redis is reachable.
func (c *CodigoCache) PingContext(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
