// Package config reads htstat workload configuration files.
package config

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/graph-guard/ht"
	"github.com/graph-guard/ht/pkg/hashfn"
	yaml "gopkg.in/yaml.v3"
)

const (
	KindUUID     = "uuid"
	KindSequence = "sequence"
)

type Config struct {
	Buckets   int
	Width     ht.Width
	Seed      ht.Seed
	Algorithm hashfn.Algorithm

	// Prefix is nil if keys aren't inserted through a prefix.
	Prefix []byte

	// Input is the path of a JSON-lines file relative
	// to the directory of the configuration file.
	Input string

	Generate *Generate
	Resize   []int
}

type Generate struct {
	Count int
	Kind  string
}

type config struct {
	Table struct {
		Buckets   int      `yaml:"buckets"`
		Width     string   `yaml:"width"`
		Seed      []uint64 `yaml:"seed"`
		Algorithm string   `yaml:"algorithm"`
	} `yaml:"table"`
	Prefix   *string `yaml:"prefix"`
	Input    string  `yaml:"input"`
	Generate *struct {
		Count int    `yaml:"count"`
		Kind  string `yaml:"kind"`
	} `yaml:"generate"`
	Resize []int `yaml:"resize"`
}

// Read reads the configuration file at filePath from filesystem.
func Read(filesystem fs.FS, filePath string) (*Config, error) {
	f, err := filesystem.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	defer f.Close()

	var c config
	d := yaml.NewDecoder(f)
	d.KnownFields(true)
	if err := d.Decode(&c); err != nil {
		return nil, &ErrorIllegal{
			FilePath: filePath,
			Message:  err.Error(),
		}
	}

	illegal := func(feature, format string, v ...any) *ErrorIllegal {
		return &ErrorIllegal{
			FilePath: filePath,
			Feature:  feature,
			Message:  fmt.Sprintf(format, v...),
		}
	}

	conf := &Config{Algorithm: hashfn.Default}

	switch {
	case c.Table.Buckets == 0:
		return nil, &ErrorMissing{FilePath: filePath, Feature: "table.buckets"}
	case c.Table.Buckets < 0:
		return nil, illegal("table.buckets", "must be positive, got %d", c.Table.Buckets)
	}
	conf.Buckets = c.Table.Buckets

	if c.Table.Width == "" {
		return nil, &ErrorMissing{FilePath: filePath, Feature: "table.width"}
	}
	if conf.Width, err = ht.ParseWidth(c.Table.Width); err != nil {
		return nil, illegal("table.width", "%q, expected one of: %s",
			c.Table.Width, widthList())
	}

	if len(c.Table.Seed) > len(conf.Seed) {
		return nil, illegal("table.seed", "at most %d words, got %d",
			len(conf.Seed), len(c.Table.Seed))
	}
	copy(conf.Seed[:], c.Table.Seed)

	if c.Table.Algorithm != "" {
		a, ok := hashfn.Lookup(c.Table.Algorithm)
		if !ok {
			return nil, illegal("table.algorithm", "unknown algorithm %q",
				c.Table.Algorithm)
		}
		conf.Algorithm = a
	}

	if c.Prefix != nil {
		conf.Prefix = append([]byte{}, *c.Prefix...)
	}

	if c.Input != "" {
		p := path.Join(path.Dir(filePath), c.Input)
		if !fs.ValidPath(p) {
			return nil, illegal("input", "invalid path %q", c.Input)
		}
		conf.Input = p
	}

	if c.Generate != nil {
		if c.Generate.Count < 1 {
			return nil, illegal("generate.count", "must be positive, got %d",
				c.Generate.Count)
		}
		switch c.Generate.Kind {
		case KindUUID, KindSequence:
		case "":
			return nil, &ErrorMissing{FilePath: filePath, Feature: "generate.kind"}
		default:
			return nil, illegal("generate.kind", "unknown kind %q", c.Generate.Kind)
		}
		conf.Generate = &Generate{
			Count: c.Generate.Count,
			Kind:  c.Generate.Kind,
		}
	}

	for i, n := range c.Resize {
		if n < 1 {
			return nil, illegal(fmt.Sprintf("resize[%d]", i),
				"must be positive, got %d", n)
		}
	}
	conf.Resize = c.Resize

	return conf, nil
}

func widthList() string {
	var b strings.Builder
	for i, w := range []ht.Width{
		ht.Width32, ht.Width64, ht.Width64Diffuse32,
		ht.Width128, ht.Width128Diffuse64, ht.Width128Diffuse32,
	} {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(w.String())
	}
	return b.String()
}

type ErrorMissing struct {
	FilePath string
	Feature  string
}

func (e ErrorMissing) Error() string {
	var b strings.Builder
	b.WriteString("missing ")
	if e.Feature == "" {
		b.WriteString(e.FilePath)
		return b.String()
	}
	b.WriteString(e.Feature)
	b.WriteString(" in ")
	b.WriteString(e.FilePath)
	return b.String()
}

type ErrorIllegal struct {
	FilePath string
	Feature  string
	Message  string
}

func (e ErrorIllegal) Error() string {
	var b strings.Builder
	if e.Feature == "" {
		b.WriteString("illegal ")
		b.WriteString(e.FilePath)
	} else {
		b.WriteString("illegal ")
		b.WriteString(e.Feature)
		b.WriteString(" in ")
		b.WriteString(e.FilePath)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}
