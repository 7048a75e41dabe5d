// Package testeq provides test helpers comparing table contents
// against an expected model.
package testeq

import (
	"github.com/graph-guard/ht"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Writer is implemented by *testing.T and *testing.B.
type Writer interface {
	Helper()
	Errorf(fmt string, v ...any)
}

// Maps reports every missing, unexpected and mismatching key
// in key order. Returns false if any was reported.
func Maps[K constraints.Ordered, V comparable](
	w Writer,
	title string,
	expect, actual map[K]V,
) (ok bool) {
	w.Helper()
	ok = true

	keys := maps.Keys(expect)
	for k := range actual {
		if _, found := expect[k]; !found {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	for _, k := range keys {
		e, inExpect := expect[k]
		a, inActual := actual[k]
		switch {
		case !inActual:
			w.Errorf("missing %s %v (%v)", title, k, e)
			ok = false
		case !inExpect:
			w.Errorf("unexpected %s %v (%v)", title, k, a)
			ok = false
		case e != a:
			w.Errorf("mismatching %s %v: expected %v, got %v", title, k, e, a)
			ok = false
		}
	}
	return ok
}

// Table compares the entries of t against expect (stored key -> value)
// and checks that Len matches the number of entries traversed.
func Table[V ~[]byte](w Writer, t *ht.Table[V], expect map[string]string) (ok bool) {
	w.Helper()
	ok = true

	actual := make(map[string]string, t.Len())
	visited := 0
	if err := t.Iterate(func(value V, key []byte, index int) {
		visited++
		if _, dup := actual[string(key)]; dup {
			w.Errorf("key %q visited twice", key)
			ok = false
		}
		if index < 0 || index >= t.Buckets() {
			w.Errorf("key %q visited at bucket %d of %d", key, index, t.Buckets())
			ok = false
		}
		actual[string(key)] = string(value)
	}); err != nil {
		w.Errorf("iterating: %v", err)
		return false
	}

	if visited != t.Len() {
		w.Errorf("entry count %d, traversed %d", t.Len(), visited)
		ok = false
	}
	return Maps(w, "entry", expect, actual) && ok
}
