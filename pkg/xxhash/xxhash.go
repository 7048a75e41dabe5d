// Package xxhash provides a streaming XXH64 hash state.
//
// Hash is a plain value: assigning it copies the full state, which makes
// it a cheap continuation point for hashing many inputs that share
// a common leading byte sequence.
//
// Forked from github.com/pierrec/xxHash.
package xxhash

const (
	prime64_1 = 11400714785074694791
	prime64_2 = 14029467366897019727
	prime64_3 = 1609587929392839161
	prime64_4 = 9650029242287828579
	prime64_5 = 2870177450012600261
)

// Size is the size of an XXH64 checksum in bytes.
const Size = 8

// BlockSize is the number of bytes consumed per accumulator round.
const BlockSize = 32

// Hash is an XXH64 hash state.
// The zero value is equivalent to New(0).
type Hash struct {
	seed, v1, v2, v3, v4, totalLen uint64
	buf                            [BlockSize]byte
	bufused                        int
	initialized                    bool
}

// New returns a new hash state initialized with seed.
func New(seed uint64) Hash {
	var h Hash
	h.ResetSeed(seed)
	return h
}

// Reset resets h to its initial state keeping the seed.
func (h *Hash) Reset() { h.ResetSeed(h.seed) }

// ResetSeed resets h to its initial state using seed.
func (h *Hash) ResetSeed(seed uint64) {
	*h = Hash{
		seed:        seed,
		v1:          seed + prime64_1 + prime64_2,
		v2:          seed + prime64_2,
		v3:          seed,
		v4:          seed - prime64_1,
		initialized: true,
	}
}

// Size implements hash.Hash.
func (h *Hash) Size() int { return Size }

// BlockSize implements hash.Hash.
func (h *Hash) BlockSize() int { return BlockSize }

// Write absorbs input. It never returns an error.
func (h *Hash) Write(input []byte) (int, error) {
	Write(h, input)
	return len(input), nil
}

// WriteString absorbs s. It never returns an error.
func (h *Hash) WriteString(s string) (int, error) {
	Write(h, s)
	return len(s), nil
}

// Write absorbs input into h.
func Write[B []byte | string](h *Hash, input B) {
	if !h.initialized {
		h.ResetSeed(h.seed)
	}
	h.totalLen += uint64(len(input))

	if h.bufused+len(input) < BlockSize {
		h.bufused += copy(h.buf[h.bufused:], input)
		return
	}

	if h.bufused > 0 {
		// Complete the buffered block first
		n := copy(h.buf[h.bufused:], input)
		h.v1 = round(h.v1, u64(h.buf[0:]))
		h.v2 = round(h.v2, u64(h.buf[8:]))
		h.v3 = round(h.v3, u64(h.buf[16:]))
		h.v4 = round(h.v4, u64(h.buf[24:]))
		input = input[n:]
		h.bufused = 0
	}

	// Causes compiler to work directly from registers instead of stack:
	v1, v2, v3, v4 := h.v1, h.v2, h.v3, h.v4
	for len(input) >= BlockSize {
		sub := input[:BlockSize] // BCE hint for compiler
		v1 = round(v1, u64(sub[0:]))
		v2 = round(v2, u64(sub[8:]))
		v3 = round(v3, u64(sub[16:]))
		v4 = round(v4, u64(sub[24:]))
		input = input[BlockSize:]
	}
	h.v1, h.v2, h.v3, h.v4 = v1, v2, v3, v4

	h.bufused = copy(h.buf[:], input)
}

// Sum appends the big-endian checksum to b.
func (h *Hash) Sum(b []byte) []byte {
	s := h.Sum64()
	return append(b,
		byte(s>>56), byte(s>>48), byte(s>>40), byte(s>>32),
		byte(s>>24), byte(s>>16), byte(s>>8), byte(s),
	)
}

// Sum64 returns the 64 bit hash value of the input absorbed so far.
// It doesn't modify the state.
func (h *Hash) Sum64() uint64 {
	if !h.initialized {
		n := New(h.seed)
		return n.Sum64()
	}

	var h64 uint64
	if h.totalLen >= BlockSize {
		h64 = rol1(h.v1) + rol7(h.v2) + rol12(h.v3) + rol18(h.v4)
		h64 = mergeRound(h64, h.v1)
		h64 = mergeRound(h64, h.v2)
		h64 = mergeRound(h64, h.v3)
		h64 = mergeRound(h64, h.v4)
	} else {
		h64 = h.seed + prime64_5
	}
	h64 += h.totalLen

	p, n := 0, h.bufused
	for ; p+8 <= n; p += 8 {
		h64 ^= round(0, u64(h.buf[p:p+8]))
		h64 = rol27(h64)*prime64_1 + prime64_4
	}
	if p+4 <= n {
		h64 ^= uint64(u32(h.buf[p:p+4])) * prime64_1
		h64 = rol23(h64)*prime64_2 + prime64_3
		p += 4
	}
	for ; p < n; p++ {
		h64 ^= uint64(h.buf[p]) * prime64_5
		h64 = rol11(h64) * prime64_1
	}

	h64 ^= h64 >> 33
	h64 *= prime64_2
	h64 ^= h64 >> 29
	h64 *= prime64_3
	h64 ^= h64 >> 32

	return h64
}

// Checksum returns the XXH64 checksum of input using seed.
func Checksum[B []byte | string](input B, seed uint64) uint64 {
	h := New(seed)
	Write(&h, input)
	return h.Sum64()
}

func round(acc, input uint64) uint64 {
	return rol31(acc+input*prime64_2) * prime64_1
}

func mergeRound(acc, v uint64) uint64 {
	return (acc^round(0, v))*prime64_1 + prime64_4
}

func u64[B []byte | string](buf B) uint64 {
	// go compiler recognizes this pattern
	// and optimizes it on little endian platforms
	return uint64(buf[0]) |
		uint64(buf[1])<<8 |
		uint64(buf[2])<<16 |
		uint64(buf[3])<<24 |
		uint64(buf[4])<<32 |
		uint64(buf[5])<<40 |
		uint64(buf[6])<<48 |
		uint64(buf[7])<<56
}

func u32[B []byte | string](buf B) uint32 {
	return uint32(buf[0]) |
		uint32(buf[1])<<8 |
		uint32(buf[2])<<16 |
		uint32(buf[3])<<24
}

func rol1(u uint64) uint64  { return u<<1 | u>>63 }
func rol7(u uint64) uint64  { return u<<7 | u>>57 }
func rol11(u uint64) uint64 { return u<<11 | u>>53 }
func rol12(u uint64) uint64 { return u<<12 | u>>52 }
func rol18(u uint64) uint64 { return u<<18 | u>>46 }
func rol23(u uint64) uint64 { return u<<23 | u>>41 }
func rol27(u uint64) uint64 { return u<<27 | u>>37 }
func rol31(u uint64) uint64 { return u<<31 | u>>33 }
