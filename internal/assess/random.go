package assess

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Random is the randomness the engine uses when no question falls in the
// target band.
type Random interface {
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

type seededRandom struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandom returns a reproducible Random for seed, safe for concurrent use.
func NewRandom(seed uint64) Random {
	return &seededRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func newTimeRandom() Random {
	return NewRandom(uint64(time.Now().UnixNano()))
}

func (s *seededRandom) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

func (s *seededRandom) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}
