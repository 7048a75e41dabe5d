/*
Package ht provides a chained hash table mapping byte keys to
byte-sequence values with explicit, caller-controlled resizing
and prefix-amortized hashing.

Basic usage:

	t, err := ht.New[[]byte](8, ht.Width64, ht.Seed64(0))
	if err != nil {
		return err
	}
	defer t.Destroy()

	if err := t.Add([]byte("v1"), []byte("alpha")); err != nil {
		return err
	}
	v, err := t.Get([]byte("alpha")) // "v1"

Keys are copied on insertion, values are not: the table owns a value
from the moment it's added and passes it to Config.DestroyValue when it
leaves the table through Remove, Clear or Destroy.

Prefixes:

A Prefix holds a hash state that has absorbed a leading byte sequence.
Methods with the WithPrefix suffix operate on the key formed by the
prefix bytes followed by the key argument, hashing only the key
argument on top of a clone of the prefix state:

	users := ht.NewPrefix([]byte("user:"))
	_ = t.AddWithPrefix(v, []byte("42"), users) // stores "user:42"
	_, err = t.GetWithPrefix([]byte("42"), users)

A prefix state is created with the zero seed. A prefixed digest equals
the unprefixed digest of the full key only for tables seeded with the
zero seed. Tables with any other seed address a key through a prefix and
without one at unrelated buckets, so a given key should consistently be
accessed either through a prefix or without one.

Resizing:

The number of buckets changes only through Resize, which rebuilds the
whole table in one call. Entries keep the digest computed on insertion,
so entries added through a prefix remain reachable after a resize.

Concurrency:

Tables and prefixes are meant to be owned by a single goroutine.
No method is synchronized and concurrent use without external
synchronization is a data race.
*/
package ht
