package ht

import (
	"bytes"

	"github.com/graph-guard/ht/pkg/hashfn"
)

// Prefix is a reusable partial hash of a leading key byte sequence.
// Its hash state has absorbed exactly the prefix bytes, so hashing
// a key through a prefix costs only the key's own bytes.
//
// A Prefix isn't tied to any table and isn't retained by table methods.
// It isn't safe for concurrent use.
type Prefix struct {
	b     []byte
	alg   hashfn.Algorithm
	state hashfn.State
}

// NewPrefix creates a prefix of b using the default hash algorithm.
func NewPrefix(b []byte) *Prefix {
	return NewPrefixWith(hashfn.Default, b)
}

// NewPrefixWith creates a prefix of b using alg.
// b is copied and absorbed by a state with the zero seed.
func NewPrefixWith(alg hashfn.Algorithm, b []byte) *Prefix {
	if alg == nil {
		alg = hashfn.Default
	}
	s := alg.New(hashfn.Seed{})
	s.Write(b)
	return &Prefix{
		b:     bytes.Clone(b),
		alg:   alg,
		state: s,
	}
}

func (p *Prefix) valid() bool { return p != nil && p.state != nil }

// Clone returns an independent copy of p.
func (p *Prefix) Clone() (*Prefix, error) {
	if !p.valid() {
		return nil, ErrNullPrefix
	}
	return &Prefix{
		b:     bytes.Clone(p.b),
		alg:   p.alg,
		state: p.state.Clone(),
	}, nil
}

// Append returns a new prefix of p's bytes followed by b.
// p is left untouched.
func (p *Prefix) Append(b []byte) (*Prefix, error) {
	n, err := p.Clone()
	if err != nil {
		return nil, err
	}
	n.state.Write(b)
	n.b = append(n.b, b...)
	return n, nil
}

// Destroy releases the bytes and the hash state of p.
// Any later use of p fails with ErrNullPrefix.
func (p *Prefix) Destroy() error {
	if !p.valid() {
		return ErrNullPrefix
	}
	p.b, p.state = nil, nil
	return nil
}

// Key returns a copy of the prefix bytes.
func (p *Prefix) Key() ([]byte, error) {
	if !p.valid() {
		return nil, ErrNullPrefix
	}
	if p.b == nil {
		return []byte{}, nil
	}
	return bytes.Clone(p.b), nil
}

// Len returns the number of prefix bytes.
func (p *Prefix) Len() int {
	if !p.valid() {
		return 0
	}
	return len(p.b)
}

// Algorithm returns the hash algorithm of p.
func (p *Prefix) Algorithm() hashfn.Algorithm {
	if p == nil {
		return nil
	}
	return p.alg
}
