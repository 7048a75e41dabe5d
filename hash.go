package ht

import (
	"fmt"

	"github.com/graph-guard/ht/pkg/hashfn"
)

// Width selects the digest width of a table.
// Diffused widths fold a wider digest into a narrower one
// by XOR-combining its halves.
type Width int

const (
	Width32           Width = 32
	Width64           Width = 64
	Width64Diffuse32  Width = 65
	Width128          Width = 128
	Width128Diffuse64 Width = 129
	Width128Diffuse32 Width = 130
)

// Valid returns true if w is one of the declared widths.
func (w Width) Valid() bool {
	switch w {
	case Width32, Width64, Width64Diffuse32,
		Width128, Width128Diffuse64, Width128Diffuse32:
		return true
	}
	return false
}

func (w Width) String() string {
	switch w {
	case Width32:
		return "32"
	case Width64:
		return "64"
	case Width64Diffuse32:
		return "64/32"
	case Width128:
		return "128"
	case Width128Diffuse64:
		return "128/64"
	case Width128Diffuse32:
		return "128/32"
	}
	return fmt.Sprintf("Width(%d)", int(w))
}

// ParseWidth parses the String representation of a width.
func ParseWidth(s string) (Width, error) {
	for _, w := range []Width{
		Width32, Width64, Width64Diffuse32,
		Width128, Width128Diffuse64, Width128Diffuse32,
	} {
		if s == w.String() {
			return w, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWidth, s)
}

// Seed is the seed material of a table.
type Seed = hashfn.Seed

// Seed32 returns the seed of a Width32 table.
func Seed32(s uint32) Seed { return Seed{uint64(s)} }

// Seed64 returns the seed of a Width64 or Width64Diffuse32 table.
func Seed64(s uint64) Seed { return Seed{s} }

// Seed128 returns the seed of a table of the 128 bit family.
func Seed128(a, b uint64) Seed { return Seed{a, b} }

// mask drops the seed bits the width doesn't use.
func (w Width) mask(s Seed) Seed {
	switch w {
	case Width32:
		return Seed{s[0] & 0xffffffff}
	case Width64, Width64Diffuse32:
		return Seed{s[0]}
	}
	return s
}

// Digest is the hash of a key.
// Digests narrower than 128 bits are stored in H1.
type Digest struct{ H1, H2 uint64 }

func diffuse64(h uint64) uint32 { return uint32(h) ^ uint32(h>>32) }

// Hasher computes digests and bucket indexes of keys.
type Hasher struct {
	Algorithm hashfn.Algorithm
	Width     Width
	Seed      Seed
}

func (h Hasher) algorithm() hashfn.Algorithm {
	if h.Algorithm == nil {
		return hashfn.Default
	}
	return h.Algorithm
}

// Sum returns the digest of key.
//
// If p isn't nil the digest is computed by continuing a clone
// of the prefix state with key, which equals hashing the
// concatenation of the prefix bytes and key with the zero seed.
// h.Seed isn't applied in this case.
func (h Hasher) Sum(key []byte, p *Prefix) Digest {
	var s hashfn.State
	if p != nil {
		s = p.state.Clone()
	} else {
		s = h.algorithm().New(h.Seed)
	}
	s.Write(key)

	switch h.Width {
	case Width32:
		return Digest{H1: uint64(s.Sum32())}
	case Width64:
		return Digest{H1: s.Sum64()}
	case Width64Diffuse32:
		return Digest{H1: uint64(diffuse64(s.Sum64()))}
	case Width128:
		h1, h2 := s.Sum128()
		return Digest{H1: h1, H2: h2}
	case Width128Diffuse64:
		h1, h2 := s.Sum128()
		return Digest{H1: h1 ^ h2}
	case Width128Diffuse32:
		h1, h2 := s.Sum128()
		return Digest{H1: uint64(diffuse64(h1) ^ diffuse64(h2))}
	}
	return Digest{}
}

// Index maps d to a bucket in [0, buckets).
// Undiffused 128 bit digests are indexed by their second half.
func (h Hasher) Index(d Digest, buckets int) int {
	if h.Width == Width128 {
		return int(d.H2 % uint64(buckets))
	}
	return int(d.H1 % uint64(buckets))
}
