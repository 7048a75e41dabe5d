// Package hashfn defines the keyed hash function capability the table
// and its prefixes are built on: a state can be seeded, absorb bytes
// incrementally, be cloned into an independent continuation point and
// be finalized to a 32, 64 or 128 bit digest without consuming input.
//
// States are not safe for concurrent use.
package hashfn

import (
	"encoding/binary"

	"github.com/graph-guard/ht/pkg/xxhash"
	"github.com/zeebo/xxh3"
)

// Seed is the seed material of a state.
// Algorithms that take a single seed word use Seed[0] only.
type Seed [2]uint64

// State is an incremental hash state.
type State interface {
	// Write absorbs p.
	Write(p []byte)

	// Clone returns an independent copy of the state.
	Clone() State

	// Sum32, Sum64 and Sum128 finalize the input absorbed so far.
	// None of them modifies the state.
	Sum32() uint32
	Sum64() uint64
	Sum128() (h1, h2 uint64)
}

// Algorithm creates seeded states.
// Implementations must be comparable.
type Algorithm interface {
	Name() string
	New(seed Seed) State
}

var (
	// XXH3 is backed by github.com/zeebo/xxh3.
	// A non-zero seed is absorbed as 16 little-endian bytes
	// before any input.
	XXH3 Algorithm = algorithmXXH3{}

	// XXH64 runs two XXH64 lanes seeded with Seed[0] and Seed[1].
	// 32 and 64 bit digests are taken from the first lane.
	XXH64 Algorithm = algorithmXXH64{}
)

// Default is the algorithm used when none is specified.
var Default = XXH3

// Lookup returns the algorithm registered under name.
func Lookup(name string) (Algorithm, bool) {
	switch name {
	case XXH3.Name():
		return XXH3, true
	case XXH64.Name():
		return XXH64, true
	}
	return nil, false
}

type algorithmXXH3 struct{}

func (algorithmXXH3) Name() string { return "xxh3" }

func (algorithmXXH3) New(seed Seed) State {
	s := &stateXXH3{h: *xxh3.New()}
	if seed != (Seed{}) {
		var b [16]byte
		binary.LittleEndian.PutUint64(b[:8], seed[0])
		binary.LittleEndian.PutUint64(b[8:], seed[1])
		_, _ = s.h.Write(b[:])
	}
	return s
}

type stateXXH3 struct{ h xxh3.Hasher }

func (s *stateXXH3) Write(p []byte) { _, _ = s.h.Write(p) }

func (s *stateXXH3) Clone() State {
	c := *s
	return &c
}

func (s *stateXXH3) Sum32() uint32 { return uint32(s.h.Sum64()) }

func (s *stateXXH3) Sum64() uint64 { return s.h.Sum64() }

func (s *stateXXH3) Sum128() (h1, h2 uint64) {
	u := s.h.Sum128()
	return u.Hi, u.Lo
}

type algorithmXXH64 struct{}

// laneSalt keeps the lanes apart when both seed words are equal.
const laneSalt = 0x9e3779b97f4a7c15

func (algorithmXXH64) Name() string { return "xxh64" }

func (algorithmXXH64) New(seed Seed) State {
	return &stateXXH64{
		l1: xxhash.New(seed[0]),
		l2: xxhash.New(seed[1] ^ laneSalt),
	}
}

type stateXXH64 struct{ l1, l2 xxhash.Hash }

func (s *stateXXH64) Write(p []byte) {
	xxhash.Write(&s.l1, p)
	xxhash.Write(&s.l2, p)
}

func (s *stateXXH64) Clone() State {
	c := *s
	return &c
}

func (s *stateXXH64) Sum32() uint32 { return uint32(s.l1.Sum64()) }

func (s *stateXXH64) Sum64() uint64 { return s.l1.Sum64() }

func (s *stateXXH64) Sum128() (h1, h2 uint64) {
	return s.l1.Sum64(), s.l2.Sum64()
}
