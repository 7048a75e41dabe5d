package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/graph-guard/ht"
	"github.com/graph-guard/ht/pkg/cli"
	"github.com/graph-guard/ht/pkg/config"
	"github.com/graph-guard/ht/pkg/statistics"
	"github.com/phuslu/log"
)

// stat loads the workload defined by the configuration file into a table
// and reports the bucket distribution before and after every resize step.
func stat(w io.Writer, c cli.CommandStat) (ok bool) {
	l := log.Logger{
		Level:  log.InfoLevel,
		Writer: &log.IOWriter{Writer: os.Stderr},
	}
	if c.Verbose {
		l.Level = log.DebugLevel
	}

	dir, fileName := filepath.Split(c.ConfigPath)
	if dir == "" {
		dir = "."
	}
	fsys := os.DirFS(dir)
	conf, err := config.Read(fsys, fileName)
	if err != nil {
		fmt.Fprintf(w, "reading config: %s\n", err)
		return false
	}

	lTable := l
	lTable.Context = log.NewContext(nil).
		Str("component", "table").Value()

	t, err := ht.NewWithConfig(ht.Config[[]byte]{
		Buckets:   conf.Buckets,
		Width:     conf.Width,
		Seed:      conf.Seed,
		Algorithm: conf.Algorithm,
		Log:       &lTable,
	})
	if err != nil {
		fmt.Fprintf(w, "creating table: %s\n", err)
		return false
	}
	defer func() {
		if err := t.Destroy(); err != nil {
			l.Error().Err(err).Msg("destroying table")
		}
	}()

	var p *ht.Prefix
	if conf.Prefix != nil {
		p = ht.NewPrefixWith(conf.Algorithm, conf.Prefix)
		defer func() { _ = p.Destroy() }()
	}

	ld := loader{Table: t, Prefix: p}
	if conf.Input != "" {
		f, err := fsys.Open(conf.Input)
		if err != nil {
			fmt.Fprintf(w, "opening input: %s\n", err)
			return false
		}
		err = ld.ReadLines(f)
		_ = f.Close()
		if err != nil {
			fmt.Fprintf(w, "reading input %q: %s\n", conf.Input, err)
			return false
		}
	}
	if g := conf.Generate; g != nil {
		if err := ld.Generate(g.Kind, g.Count); err != nil {
			fmt.Fprintf(w, "generating keys: %s\n", err)
			return false
		}
	}
	l.Info().
		Int("inserted", ld.Inserted).
		Int("updated", ld.Updated).
		Msg("workload loaded")

	report := func(title string) bool {
		d, err := statistics.Collect(t)
		if err != nil {
			fmt.Fprintf(w, "collecting statistics: %s\n", err)
			return false
		}
		writeReport(w, title, d)
		return true
	}

	if !report("initial") {
		return false
	}
	for _, n := range conf.Resize {
		if err := t.Resize(n); err != nil {
			fmt.Fprintf(w, "resizing to %d buckets: %s\n", n, err)
			return false
		}
		if !report(fmt.Sprintf("resized to %d", n)) {
			return false
		}
	}
	return true
}
