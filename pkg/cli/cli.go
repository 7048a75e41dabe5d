package cli

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/graph-guard/ht"
	"github.com/graph-guard/ht/pkg/hashfn"
)

// Command can be any of:
//
//	CommandStat
//	CommandHash
type Command any

// CommandStat loads a workload into a table and reports
// its bucket distribution.
type CommandStat struct {
	ConfigPath string
	Verbose    bool
}

// CommandHash prints the digests and bucket indexes of keys.
type CommandHash struct {
	Width     ht.Width
	Seed      ht.Seed
	Algorithm hashfn.Algorithm
	Buckets   int

	// Prefix is nil unless -prefix is set.
	Prefix []byte
	Keys   []string
}

func Parse(w io.Writer, args []string) (cmd Command) {
	fm := fmt.Sprintf

	executableName := "htstat"
	if len(args) > 0 {
		executableName = filepath.Base(args[0])
	}

	flags := flag.NewFlagSet("htstat", flag.ContinueOnError)
	flags.SetOutput(w)
	flags.Usage = func() {
		writeLines(w,
			fm("usage: %s <command> [flags]", executableName),
			"",
			"commands available:",
			" stat - loads a workload and reports the bucket distribution",
			" hash - prints key digests and bucket indexes",
			" help - prints the supported widths and algorithms",
		)
	}

	parseFlags := func() (ok bool) {
		err := flags.Parse(args[2:])
		// flags will automatically call .Usage()
		return err == nil
	}

	if len(args) < 2 {
		flags.Usage()
		return nil
	}

	switch args[1] {
	case "stat":
		c := CommandStat{}
		flags.Usage = func() {
			writeLines(w,
				"",
				fm("usage: %s stat [-config <path>] [-v]", executableName),
				"",
				"flags:",
				"-config <path>: defines the workload configuration file path "+
					"(default: ./htstat.yaml)",
				"-v: enables debug logging",
			)
		}
		flags.StringVar(&c.ConfigPath, "config", "./htstat.yaml", "")
		flags.BoolVar(&c.Verbose, "v", false, "")
		if !parseFlags() {
			return nil
		}
		cmd = c

	case "hash":
		c := CommandHash{
			Width:     ht.Width64,
			Algorithm: hashfn.Default,
		}
		flags.Usage = func() {
			writeLines(w,
				"",
				fm("usage: %s hash [flags] <key>...", executableName),
				"",
				"flags:",
				"-width <width>: defines the hash width (default: 64)",
				"-seed <a[,b]>: defines the seed words (default: 0)",
				"-algorithm <name>: defines the hash algorithm "+
					fm("(default: %s)", hashfn.Default.Name()),
				"-buckets <n>: defines the number of buckets (default: 16)",
				"-prefix <p>: hashes every key through prefix p",
			)
		}
		flags.Func("width", "", func(s string) (err error) {
			c.Width, err = ht.ParseWidth(s)
			return err
		})
		flags.Func("seed", "", func(s string) (err error) {
			c.Seed, err = parseSeed(s)
			return err
		})
		flags.Func("algorithm", "", func(s string) error {
			a, ok := hashfn.Lookup(s)
			if !ok {
				return fmt.Errorf("unknown algorithm %q", s)
			}
			c.Algorithm = a
			return nil
		})
		flags.IntVar(&c.Buckets, "buckets", 16, "")
		flags.Func("prefix", "", func(s string) error {
			c.Prefix = append([]byte{}, s...)
			return nil
		})
		if !parseFlags() {
			return nil
		}
		if c.Buckets < 1 {
			writeLines(w, fm("buckets must be positive, got %d", c.Buckets))
			flags.Usage()
			return nil
		}
		if flags.NArg() < 1 {
			writeLines(w, "no keys provided")
			flags.Usage()
			return nil
		}
		c.Keys = flags.Args()
		cmd = c

	case "help":
		PrintHelp(w)
		return nil

	default:
		flags.Usage()
		return nil
	}
	return cmd
}

func parseSeed(s string) (seed ht.Seed, err error) {
	words := strings.Split(s, ",")
	if len(words) > len(seed) {
		return seed, fmt.Errorf("at most %d words, got %d", len(seed), len(words))
	}
	for i, word := range words {
		if seed[i], err = strconv.ParseUint(strings.TrimSpace(word), 0, 64); err != nil {
			return seed, err
		}
	}
	return seed, nil
}

func writeLines(w io.Writer, lines ...string) {
	for i := range lines {
		_, _ = w.Write([]byte(lines[i]))
		_, _ = w.Write([]byte("\n"))
	}
}

func PrintHelp(w io.Writer) {
	widths := make([]string, 0, 6)
	for _, x := range []ht.Width{
		ht.Width32, ht.Width64, ht.Width64Diffuse32,
		ht.Width128, ht.Width128Diffuse64, ht.Width128Diffuse32,
	} {
		widths = append(widths, x.String())
	}
	writeLines(w,
		"htstat",
		"",
		"widths: "+strings.Join(widths, ", "),
		"algorithms: "+hashfn.XXH3.Name()+", "+hashfn.XXH64.Name(),
	)
}
