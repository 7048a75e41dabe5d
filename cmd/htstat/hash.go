package main

import (
	"fmt"
	"io"

	"github.com/graph-guard/ht"
	"github.com/graph-guard/ht/pkg/cli"
)

// hash prints the digest and the bucket index of every key.
func hash(w io.Writer, c cli.CommandHash) (ok bool) {
	// The table masks the seed to the width
	t, err := ht.NewWithConfig(ht.Config[[]byte]{
		Buckets:   c.Buckets,
		Width:     c.Width,
		Seed:      c.Seed,
		Algorithm: c.Algorithm,
	})
	if err != nil {
		fmt.Fprintf(w, "creating table: %s\n", err)
		return false
	}
	defer func() { _ = t.Destroy() }()
	h := t.Hasher()

	var p *ht.Prefix
	if c.Prefix != nil {
		p = ht.NewPrefixWith(c.Algorithm, c.Prefix)
		defer func() { _ = p.Destroy() }()
	}

	for _, k := range c.Keys {
		d := h.Sum([]byte(k), p)
		fmt.Fprintf(w, "%s\t%s\t%d\n", formatDigest(h.Width, d), k, h.Index(d, c.Buckets))
	}
	return true
}

func formatDigest(width ht.Width, d ht.Digest) string {
	switch width {
	case ht.Width128:
		return fmt.Sprintf("%016x%016x", d.H1, d.H2)
	case ht.Width32, ht.Width64Diffuse32, ht.Width128Diffuse32:
		return fmt.Sprintf("%08x", d.H1)
	}
	return fmt.Sprintf("%016x", d.H1)
}
