package cache

import (
	"errors"
	"sync"
	"time"
)

// errCircuitoAbierto is returned while Redis calls are being short-circuited.
var errCircuitoAbierto = errors.New("cache: circuito abierto")

type estadoCircuito int

// Closed lets calls flow, open fast-fails, half-open allows one probe.
const (
	circuitoCerrado estadoCircuito = iota
	circuitoAbierto
	circuitoSemiabierto
)

func (s estadoCircuito) String() string {
	switch s {
	case circuitoCerrado:
		return "closed"
	case circuitoAbierto:
		return "open"
	case circuitoSemiabierto:
		return "half-open"
	default:
		return "unknown"
	}
}

// breaker stops hitting Redis after umbral consecutive failures, so an outage
// costs one dial timeout per pausa instead of one per lookup.
type breaker struct {
	mu       sync.Mutex
	estado   estadoCircuito
	fallos   int
	ultimo   time.Time
	umbral   int
	pausa    time.Duration
	ahora    func() time.Time
	probando bool
}

func newBreaker(umbral int, pausa time.Duration) *breaker {
	return &breaker{umbral: umbral, pausa: pausa, ahora: time.Now}
}

func (b *breaker) Estado() estadoCircuito {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refrescar()
	return b.estado
}

// refrescar moves open → half-open once the pause elapsed. Caller holds mu.
func (b *breaker) refrescar() {
	if b.estado == circuitoAbierto && b.ahora().Sub(b.ultimo) >= b.pausa {
		b.estado = circuitoSemiabierto
	}
}

// Execute runs fn unless the circuit is open or a half-open probe is already
// in flight, in which case it returns errCircuitoAbierto without calling fn.
func (b *breaker) Execute(fn func() error) error {
	b.mu.Lock()
	b.refrescar()
	switch {
	case b.estado == circuitoAbierto:
		b.mu.Unlock()
		return errCircuitoAbierto
	case b.estado == circuitoSemiabierto && b.probando:
		b.mu.Unlock()
		return errCircuitoAbierto
	case b.estado == circuitoSemiabierto:
		b.probando = true
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.probando = false
	if err != nil {
		b.fallos++
		b.ultimo = b.ahora()
		if b.estado == circuitoSemiabierto || b.fallos >= b.umbral {
			b.estado = circuitoAbierto
		}
		return err
	}
	b.estado = circuitoCerrado
	b.fallos = 0
	return nil
}
