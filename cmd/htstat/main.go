package main

import (
	"fmt"
	"os"

	"github.com/graph-guard/ht/pkg/cli"
)

func main() {
	w := os.Stdout
	switch c := cli.Parse(w, os.Args).(type) {
	case cli.CommandStat:
		if !stat(w, c) {
			os.Exit(1)
		}
	case cli.CommandHash:
		if !hash(w, c) {
			os.Exit(1)
		}
	default:
		if c != nil {
			panic(fmt.Errorf("unexpected command: %#v", c))
		}
	}
}
