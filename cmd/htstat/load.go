package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/graph-guard/ht"
	"github.com/graph-guard/ht/pkg/config"
	"github.com/tidwall/gjson"
)

// loader upserts workload entries into a table.
type loader struct {
	Table  *ht.Table[[]byte]
	Prefix *ht.Prefix

	Inserted int
	Updated  int
}

func (l *loader) put(key, value []byte) error {
	if l.Table.HasWithPrefix(key, l.Prefix) {
		if err := l.Table.UpdateStrictWithPrefix(value, key, l.Prefix); err != nil {
			return err
		}
		l.Updated++
		return nil
	}
	if err := l.Table.AddWithPrefix(value, key, l.Prefix); err != nil {
		return err
	}
	l.Inserted++
	return nil
}

// ReadLines reads JSON lines of the form {"key":"...","value":"..."}.
// Blank lines are skipped, a missing value is stored as empty.
func (l *loader) ReadLines(r io.Reader) error {
	s := bufio.NewScanner(r)
	for n := 1; s.Scan(); n++ {
		line := s.Bytes()
		if len(line) == 0 {
			continue
		}
		if !gjson.ValidBytes(line) {
			return fmt.Errorf("line %d: invalid JSON", n)
		}
		k := gjson.GetBytes(line, "key")
		if k.Type != gjson.String {
			return fmt.Errorf("line %d: missing string key", n)
		}
		v := gjson.GetBytes(line, "value")
		if err := l.put(
			append([]byte{}, k.Str...),
			append([]byte{}, v.String()...),
		); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return s.Err()
}

// Generate inserts count synthetic keys of the given kind,
// each stored with itself as the value.
func (l *loader) Generate(kind string, count int) error {
	for i := 0; i < count; i++ {
		var k string
		switch kind {
		case config.KindUUID:
			k = uuid.NewString()
		case config.KindSequence:
			k = strconv.Itoa(i)
		default:
			return fmt.Errorf("unknown kind %q", kind)
		}
		if err := l.put([]byte(k), []byte(k)); err != nil {
			return err
		}
	}
	return nil
}
