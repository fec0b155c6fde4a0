package sim

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"errors"
	"math"
	"math/rand/v2"
)

var ErrInvalidProb = errors.New("invalid probability; must be 0..1")

// RandomSource yields floats in [0, 1).
type RandomSource interface {
	Float64() float64
}

type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// Replicable runs (tests, --seed).
type seededRNG struct{ r *rand.Rand }

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

func validateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 || p > 1 {
		return ErrInvalidProb
	}
	return nil
}

// chance reports whether an event of probability p happens. p <= 0 never,
// p >= 1 always.
func chance(p float64, rng RandomSource) bool {
	switch {
	case p <= 0:
		return false
	case p >= 1:
		return true
	}
	return rng.Float64() < p
}
