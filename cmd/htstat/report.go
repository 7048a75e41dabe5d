package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/graph-guard/ht/pkg/statistics"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func writeReport(w io.Writer, title string, d statistics.Distribution) {
	fmt.Fprintf(w, "%s:\n", title)
	fmt.Fprintf(w, " buckets:     %s\n", humanize.Comma(int64(d.Buckets)))
	fmt.Fprintf(w, " entries:     %s\n", humanize.Comma(int64(d.Entries)))
	fmt.Fprintf(w, " occupied:    %s\n", humanize.Comma(int64(d.Occupied)))
	fmt.Fprintf(w, " empty:       %s\n", humanize.Comma(int64(d.Empty)))
	fmt.Fprintf(w, " max chain:   %d\n", d.MaxChain)
	fmt.Fprintf(w, " load factor: %.2f\n", d.LoadFactor)
	fmt.Fprintf(w, " mean chain:  %.2f\n", d.MeanChain)
	fmt.Fprintf(w, " keys:        %s\n", humanize.Bytes(uint64(d.KeyBytes)))
	fmt.Fprintf(w, " values:      %s\n", humanize.Bytes(uint64(d.ValueBytes)))

	lengths := maps.Keys(d.Histogram)
	slices.Sort(lengths)
	fmt.Fprintf(w, " histogram:\n")
	for _, n := range lengths {
		fmt.Fprintf(w, "  %3d: %s\n", n, humanize.Comma(int64(d.Histogram[n])))
	}
}
