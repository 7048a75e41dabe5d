package ht

import (
	"bytes"

	"github.com/graph-guard/ht/pkg/hashfn"
	"github.com/phuslu/log"
)

// Config is the table configuration.
type Config[V ~[]byte] struct {
	// Buckets is the initial number of buckets, must be positive.
	Buckets int

	Width Width

	// Seed is masked to the width: Width32 keeps the low 32 bits of
	// the first word, Width64 and Width64Diffuse32 keep the first word.
	Seed Seed

	// Algorithm defaults to hashfn.Default if nil.
	Algorithm hashfn.Algorithm

	// Context is passed to DestroyValue and DestroyContext.
	Context any

	// DestroyValue is called for every value that leaves the table
	// through Remove, Clear or Destroy. Optional.
	DestroyValue func(value V, context any)

	// DestroyContext is called once by Destroy if Context isn't nil.
	// Optional.
	DestroyContext func(context any)

	// Log receives lifecycle events at debug level. Optional.
	Log *log.Logger
}

type entry[V ~[]byte] struct {
	key    []byte
	value  V
	digest Digest
	next   *entry[V]
}

type bucket[V ~[]byte] struct{ head, tail *entry[V] }

// Table is a chained hash table of byte keys and byte-sequence values.
type Table[V ~[]byte] struct {
	buckets        []bucket[V]
	hasher         Hasher
	len            int
	iterating      int
	context        any
	destroyValue   func(V, any)
	destroyContext func(any)
	log            *log.Logger
}

// New creates a table with the given number of buckets.
func New[V ~[]byte](buckets int, width Width, seed Seed) (*Table[V], error) {
	return NewWithConfig(Config[V]{
		Buckets: buckets,
		Width:   width,
		Seed:    seed,
	})
}

// NewWithConfig creates a table configured by c.
// Returns ErrNonpositiveLength if c.Buckets < 1 and
// ErrUnknownWidth if c.Width isn't valid.
func NewWithConfig[V ~[]byte](c Config[V]) (*Table[V], error) {
	if c.Buckets < 1 {
		return nil, ErrNonpositiveLength
	}
	if !c.Width.Valid() {
		return nil, ErrUnknownWidth
	}
	if c.Algorithm == nil {
		c.Algorithm = hashfn.Default
	}
	t := &Table[V]{
		buckets: make([]bucket[V], c.Buckets),
		hasher: Hasher{
			Algorithm: c.Algorithm,
			Width:     c.Width,
			Seed:      c.Width.mask(c.Seed),
		},
		context:        c.Context,
		destroyValue:   c.DestroyValue,
		destroyContext: c.DestroyContext,
		log:            c.Log,
	}
	if t.log != nil {
		t.log.Debug().
			Int("buckets", c.Buckets).
			Str("width", c.Width.String()).
			Str("algorithm", c.Algorithm.Name()).
			Msg("created")
	}
	return t, nil
}

func (t *Table[V]) valid() bool { return t != nil && t.buckets != nil }

// Len returns the number of entries.
func (t *Table[V]) Len() int {
	if !t.valid() {
		return 0
	}
	return t.len
}

// Buckets returns the number of buckets.
func (t *Table[V]) Buckets() int {
	if !t.valid() {
		return 0
	}
	return len(t.buckets)
}

// Hasher returns the hasher of the table.
func (t *Table[V]) Hasher() Hasher {
	if t == nil {
		return Hasher{}
	}
	return t.hasher
}

// Add inserts value under key.
// The key is copied, the value is owned by the table from now on.
// Returns ErrKeyAlreadyInUse if key already exists.
func (t *Table[V]) Add(value V, key []byte) error {
	return t.AddWithPrefix(value, key, nil)
}

// AddWithPrefix inserts value under the concatenation of
// the prefix bytes and key, hashed through p.
func (t *Table[V]) AddWithPrefix(value V, key []byte, p *Prefix) error {
	if err := t.checkMutation(key, value, p); err != nil {
		return err
	}
	d, i := t.locate(key, p)
	if _, e := t.find(i, p, key); e != nil {
		return ErrKeyAlreadyInUse
	}
	t.insert(i, d, value, key, p)
	return nil
}

// Update associates value with key, adding key if it doesn't exist.
// A replaced value is dropped without calling DestroyValue.
func (t *Table[V]) Update(value V, key []byte) error {
	return t.UpdateWithPrefix(value, key, nil)
}

// UpdateWithPrefix is Update for the concatenation of
// the prefix bytes and key.
func (t *Table[V]) UpdateWithPrefix(value V, key []byte, p *Prefix) error {
	if err := t.checkMutation(key, value, p); err != nil {
		return err
	}
	d, i := t.locate(key, p)
	if _, e := t.find(i, p, key); e != nil {
		e.value = value
		return nil
	}
	t.insert(i, d, value, key, p)
	return nil
}

// UpdateStrict replaces the value of key.
// Returns ErrKeyNotInUse if key doesn't exist.
func (t *Table[V]) UpdateStrict(value V, key []byte) error {
	return t.UpdateStrictWithPrefix(value, key, nil)
}

// UpdateStrictWithPrefix is UpdateStrict for the concatenation of
// the prefix bytes and key.
func (t *Table[V]) UpdateStrictWithPrefix(value V, key []byte, p *Prefix) error {
	if err := t.checkMutation(key, value, p); err != nil {
		return err
	}
	_, i := t.locate(key, p)
	_, e := t.find(i, p, key)
	if e == nil {
		return ErrKeyNotInUse
	}
	e.value = value
	return nil
}

// Get returns the value of key without copying it.
// The returned value must not be modified.
func (t *Table[V]) Get(key []byte) (V, error) {
	return t.GetWithPrefix(key, nil)
}

// GetWithPrefix is Get for the concatenation of
// the prefix bytes and key.
func (t *Table[V]) GetWithPrefix(key []byte, p *Prefix) (value V, err error) {
	e, err := t.lookup(key, p)
	if err != nil {
		return value, err
	}
	return e.value, nil
}

// GetCopy returns a copy of the value of key owned by the caller.
func (t *Table[V]) GetCopy(key []byte) (V, error) {
	return t.GetCopyWithPrefix(key, nil)
}

// GetCopyWithPrefix is GetCopy for the concatenation of
// the prefix bytes and key.
func (t *Table[V]) GetCopyWithPrefix(key []byte, p *Prefix) (value V, err error) {
	e, err := t.lookup(key, p)
	if err != nil {
		return value, err
	}
	return V(bytes.Clone([]byte(e.value))), nil
}

// Has returns true if key exists.
func (t *Table[V]) Has(key []byte) bool {
	return t.HasWithPrefix(key, nil)
}

// HasWithPrefix is Has for the concatenation of
// the prefix bytes and key.
func (t *Table[V]) HasWithPrefix(key []byte, p *Prefix) bool {
	_, err := t.lookup(key, p)
	return err == nil
}

// Remove removes key and passes its value to DestroyValue.
// Returns ErrKeyNotInUse if key doesn't exist.
func (t *Table[V]) Remove(key []byte) error {
	return t.RemoveWithPrefix(key, nil)
}

// RemoveWithPrefix is Remove for the concatenation of
// the prefix bytes and key.
func (t *Table[V]) RemoveWithPrefix(key []byte, p *Prefix) error {
	if err := t.checkState(); err != nil {
		return err
	}
	if err := t.checkKey(key, p); err != nil {
		return err
	}
	_, i := t.locate(key, p)
	prev, e := t.find(i, p, key)
	if e == nil {
		return ErrKeyNotInUse
	}

	b := &t.buckets[i]
	if prev == nil {
		b.head = e.next
	} else {
		prev.next = e.next
	}
	if b.tail == e {
		b.tail = prev
	}
	t.len--
	t.release(e)
	return nil
}

// Clear removes all entries passing every value to DestroyValue.
// The number of buckets doesn't change.
func (t *Table[V]) Clear() error {
	if err := t.checkState(); err != nil {
		return err
	}
	n := t.len
	t.clear()
	if t.log != nil {
		t.log.Debug().Int("entries", n).Msg("cleared")
	}
	return nil
}

func (t *Table[V]) clear() {
	for i := range t.buckets {
		for e := t.buckets[i].head; e != nil; {
			next := e.next
			t.release(e)
			e = next
		}
		t.buckets[i] = bucket[V]{}
	}
	t.len = 0
}

// Resize rebuilds the table with the given number of buckets
// relinking every entry into the bucket its digest maps to.
// Values aren't copied nor destroyed.
//
// Resize is never called implicitly and runs in O(entries + buckets).
func (t *Table[V]) Resize(buckets int) error {
	if err := t.checkState(); err != nil {
		return err
	}
	if buckets < 1 {
		return ErrNonpositiveLength
	}

	nb := make([]bucket[V], buckets)
	for i := range t.buckets {
		for e := t.buckets[i].head; e != nil; {
			next := e.next
			e.next = nil
			appendEntry(&nb[t.hasher.Index(e.digest, buckets)], e)
			e = next
		}
	}
	old := len(t.buckets)
	t.buckets = nb

	if t.log != nil {
		t.log.Debug().
			Int("from", old).
			Int("buckets", buckets).
			Int("entries", t.len).
			Msg("resized")
	}
	return nil
}

// Iterate calls fn for every entry in bucket order
// and chain order within a bucket.
// The key passed to fn must not be modified and fn must not
// add or remove entries: mutating methods return ErrIterating
// until Iterate returns.
func (t *Table[V]) Iterate(fn func(value V, key []byte, index int)) error {
	if !t.valid() {
		return ErrNullTable
	}
	if fn == nil {
		return ErrNullIterator
	}
	t.iterating++
	defer func() { t.iterating-- }()
	for i := range t.buckets {
		for e := t.buckets[i].head; e != nil; e = e.next {
			fn(e.value, e.key, i)
		}
	}
	return nil
}

// Destroy clears the table and passes the context to DestroyContext.
// Any later use of the table fails with ErrNullTable.
func (t *Table[V]) Destroy() error {
	if err := t.checkState(); err != nil {
		return err
	}
	n := t.len
	t.clear()
	if t.context != nil && t.destroyContext != nil {
		t.destroyContext(t.context)
	}
	t.buckets, t.context = nil, nil
	if t.log != nil {
		t.log.Debug().Int("entries", n).Msg("destroyed")
	}
	return nil
}

func (t *Table[V]) checkState() error {
	if !t.valid() {
		return ErrNullTable
	}
	if t.iterating > 0 {
		return ErrIterating
	}
	return nil
}

func (t *Table[V]) checkKey(key []byte, p *Prefix) error {
	if key == nil {
		return ErrNullKey
	}
	return t.checkPrefix(p)
}

func (t *Table[V]) checkPrefix(p *Prefix) error {
	if p == nil {
		return nil
	}
	if !p.valid() {
		return ErrNullPrefix
	}
	if p.alg != t.hasher.Algorithm {
		return ErrPrefixAlgorithm
	}
	return nil
}

func (t *Table[V]) checkMutation(key []byte, value V, p *Prefix) error {
	if err := t.checkState(); err != nil {
		return err
	}
	if key == nil {
		return ErrNullKey
	}
	if value == nil {
		return ErrNullValue
	}
	return t.checkPrefix(p)
}

func (t *Table[V]) lookup(key []byte, p *Prefix) (*entry[V], error) {
	if !t.valid() {
		return nil, ErrNullTable
	}
	if err := t.checkKey(key, p); err != nil {
		return nil, err
	}
	_, i := t.locate(key, p)
	if _, e := t.find(i, p, key); e != nil {
		return e, nil
	}
	return nil, ErrKeyNotInUse
}

func (t *Table[V]) locate(key []byte, p *Prefix) (Digest, int) {
	d := t.hasher.Sum(key, p)
	return d, t.hasher.Index(d, len(t.buckets))
}

// find returns the entry of bucket i matching the concatenation
// of the prefix bytes and key, and its predecessor in the chain.
func (t *Table[V]) find(i int, p *Prefix, key []byte) (prev, e *entry[V]) {
	var pb []byte
	if p != nil {
		pb = p.b
	}
	for e = t.buckets[i].head; e != nil; prev, e = e, e.next {
		if len(e.key) == len(pb)+len(key) &&
			bytes.Equal(e.key[:len(pb)], pb) &&
			bytes.Equal(e.key[len(pb):], key) {
			return prev, e
		}
	}
	return nil, nil
}

func (t *Table[V]) insert(i int, d Digest, value V, key []byte, p *Prefix) {
	var k []byte
	if p != nil {
		k = make([]byte, 0, len(p.b)+len(key))
		k = append(append(k, p.b...), key...)
	} else {
		k = append(make([]byte, 0, len(key)), key...)
	}
	appendEntry(&t.buckets[i], &entry[V]{
		key:    k,
		value:  value,
		digest: d,
	})
	t.len++
}

func (t *Table[V]) release(e *entry[V]) {
	if t.destroyValue != nil {
		t.destroyValue(e.value, t.context)
	}
	e.key, e.next = nil, nil
}

func appendEntry[V ~[]byte](b *bucket[V], e *entry[V]) {
	if b.tail == nil {
		b.head, b.tail = e, e
		return
	}
	b.tail.next = e
	b.tail = e
}
