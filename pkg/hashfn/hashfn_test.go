package hashfn_test

import (
	"fmt"
	"testing"

	"github.com/graph-guard/ht/pkg/hashfn"

	"github.com/pierrec/xxHash/xxHash64"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/xxh3"
)

var algorithms = []hashfn.Algorithm{hashfn.XXH3, hashfn.XXH64}

func sum(s hashfn.State) [4]uint64 {
	h1, h2 := s.Sum128()
	return [4]uint64{uint64(s.Sum32()), s.Sum64(), h1, h2}
}

func hashOf(a hashfn.Algorithm, seed hashfn.Seed, parts ...string) hashfn.State {
	s := a.New(seed)
	for _, p := range parts {
		s.Write([]byte(p))
	}
	return s
}

func TestIncrementalEqualsWhole(t *testing.T) {
	long := string(make([]byte, 300))
	for _, a := range algorithms {
		t.Run(a.Name(), func(t *testing.T) {
			for _, td := range [][]string{
				{"user:", "42"},
				{"", "alpha"},
				{"alpha", ""},
				{long, "x"},
				{"a", long, "b"},
			} {
				whole := ""
				for _, p := range td {
					whole += p
				}
				require.Equal(t,
					sum(hashOf(a, hashfn.Seed{}, whole)),
					sum(hashOf(a, hashfn.Seed{}, td...)),
				)
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	for _, a := range algorithms {
		t.Run(a.Name(), func(t *testing.T) {
			base := hashOf(a, hashfn.Seed{}, "user:")
			before := sum(base)

			c := base.Clone()
			c.Write([]byte("42"))

			require.Equal(t, before, sum(base))
			require.Equal(t, sum(hashOf(a, hashfn.Seed{}, "user:42")), sum(c))
			require.NotEqual(t, sum(base), sum(c))
		})
	}
}

func TestSumDoesNotConsume(t *testing.T) {
	for _, a := range algorithms {
		t.Run(a.Name(), func(t *testing.T) {
			s := hashOf(a, hashfn.Seed{1, 2}, "foo")
			first := sum(s)
			require.Equal(t, first, sum(s))
			s.Write([]byte("bar"))
			require.Equal(t, sum(hashOf(a, hashfn.Seed{1, 2}, "foobar")), sum(s))
		})
	}
}

func TestSeedMatters(t *testing.T) {
	for _, a := range algorithms {
		t.Run(a.Name(), func(t *testing.T) {
			seen := map[[4]uint64]hashfn.Seed{}
			for _, seed := range []hashfn.Seed{
				{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0xdeadbeef, 42},
			} {
				d := sum(hashOf(a, seed, "alpha"))
				_, dup := seen[d]
				require.False(t, dup, fmt.Sprintf("seed %v", seed))
				seen[d] = seed
			}
		})
	}
}

func TestXXH3MatchesOneShot(t *testing.T) {
	for _, in := range []string{"", "alpha", string(make([]byte, 1000))} {
		s := hashOf(hashfn.XXH3, hashfn.Seed{}, in)
		require.Equal(t, xxh3.HashString(in), s.Sum64())
		u := xxh3.HashString128(in)
		h1, h2 := s.Sum128()
		require.Equal(t, u.Hi, h1)
		require.Equal(t, u.Lo, h2)
	}
}

func TestXXH64MatchesReference(t *testing.T) {
	for _, seed := range []uint64{0, 1, 936583347421323} {
		s := hashOf(hashfn.XXH64, hashfn.Seed{seed, 0}, "alpha", "beta")
		require.Equal(t, xxHash64.Checksum([]byte("alphabeta"), seed), s.Sum64())
		require.Equal(t, uint32(s.Sum64()), s.Sum32())
	}
}

func TestXXH64LanesDiffer(t *testing.T) {
	h1, h2 := hashOf(hashfn.XXH64, hashfn.Seed{}, "alpha").Sum128()
	require.NotEqual(t, h1, h2)
}

func TestLookup(t *testing.T) {
	for _, td := range []struct {
		Name   string
		Expect hashfn.Algorithm
		OK     bool
	}{
		{"xxh3", hashfn.XXH3, true},
		{"xxh64", hashfn.XXH64, true},
		{"spooky", nil, false},
	} {
		t.Run(td.Name, func(t *testing.T) {
			a, ok := hashfn.Lookup(td.Name)
			require.Equal(t, td.OK, ok)
			require.Equal(t, td.Expect, a)
		})
	}
	require.Equal(t, hashfn.XXH3, hashfn.Default)
}
