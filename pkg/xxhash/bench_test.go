package xxhash_test

import (
	"testing"

	"github.com/graph-guard/ht/pkg/xxhash"

	"github.com/pierrec/xxHash/xxHash64"
)

var GI uint64

func BenchmarkPierrec(b *testing.B) {
	s1 := []byte("user:")
	s2 := []byte("1234567890")
	h := xxHash64.New(0)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		_, _ = h.Write(s1)
		_, _ = h.Write(s2)
		GI = h.Sum64()
		h.Reset()
	}
}

func BenchmarkCustom(b *testing.B) {
	s1 := []byte("user:")
	s2 := []byte("1234567890")
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		h := xxhash.New(0)
		xxhash.Write(&h, s1)
		xxhash.Write(&h, s2)
		GI = h.Sum64()
	}
}

func BenchmarkCustomContinued(b *testing.B) {
	s2 := []byte("1234567890")
	base := xxhash.New(0)
	xxhash.Write(&base, "user:")
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		h := base
		xxhash.Write(&h, s2)
		GI = h.Sum64()
	}
}
