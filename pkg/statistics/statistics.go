// Package statistics computes bucket distribution statistics of tables.
package statistics

import (
	"github.com/graph-guard/ht"
	"github.com/yourbasic/bit"
)

// Distribution describes how the entries of a table spread over its buckets.
type Distribution struct {
	Buckets  int
	Entries  int
	Occupied int
	Empty    int
	MaxChain int

	// LoadFactor is Entries / Buckets.
	LoadFactor float64

	// MeanChain is the average chain length of occupied buckets.
	MeanChain float64

	// Histogram maps chain lengths to the number of buckets
	// with that length, including empty buckets at length 0.
	Histogram map[int]int

	KeyBytes   int64
	ValueBytes int64
}

// Collect traverses t and returns its distribution.
func Collect[V ~[]byte](t *ht.Table[V]) (Distribution, error) {
	chains := make([]int, t.Buckets())
	occupied := bit.New()
	d := Distribution{Buckets: t.Buckets()}

	if err := t.Iterate(func(value V, key []byte, index int) {
		chains[index]++
		occupied.Add(index)
		d.KeyBytes += int64(len(key))
		d.ValueBytes += int64(len(value))
	}); err != nil {
		return Distribution{}, err
	}

	d.Occupied = occupied.Size()
	d.Empty = d.Buckets - d.Occupied
	d.Histogram = make(map[int]int)
	for _, c := range chains {
		d.Entries += c
		d.Histogram[c]++
		d.MaxChain = max(d.MaxChain, c)
	}
	if d.Buckets > 0 {
		d.LoadFactor = float64(d.Entries) / float64(d.Buckets)
	}
	if d.Occupied > 0 {
		d.MeanChain = float64(d.Entries) / float64(d.Occupied)
	}
	return d, nil
}
