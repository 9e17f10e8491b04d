// Package main provides a small demo CLI built on top of the tsargp engine,
// showing help and version options, a flag, a single-valued option and an
// array option wired together in one schema.
package main

import (
	"fmt"
	"os"

	"github.com/dsogari/tsargp"
)

func main() {
	schema := newDemoSchema()

	if _, err := tsargp.Validate(schema); err != nil {
		fmt.Fprintf(os.Stderr, "invalid schema: %v\n", err)
		os.Exit(1)
	}

	res, err := tsargp.Parse(schema, os.Args[1:], tsargp.WithProgramName("tsargp-demo"))
	if err != nil {
		if msg, ok := err.(*tsargp.Message); ok {
			fmt.Println(msg.Text)
			return
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if v, ok := res.Values["verbose"].(bool); ok && v {
		fmt.Println("verbose mode on")
	}
	if name, ok := res.Values["name"].(string); ok {
		fmt.Println("name:", name)
	}
	if tags := res.Values.Strings("tags"); tags != nil {
		fmt.Println("tags:", tags)
	}
	for _, w := range res.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w.String())
	}
}

func newDemoSchema() tsargp.Schema {
	return tsargp.Schema{
		"help": {
			Type:     tsargp.KindHelp,
			Names:    []tsargp.Name{tsargp.N("--help"), tsargp.N("-h")},
			Group:    "General",
			Synopsis: "Show this help message.",
		},
		"version": {
			Type:     tsargp.KindVersion,
			Names:    []tsargp.Name{tsargp.N("--version")},
			Version:  "tsargp-demo 0.1.0",
			Group:    "General",
			Synopsis: "Show version information.",
		},
		"verbose": {
			Type:     tsargp.KindFlag,
			Names:    []tsargp.Name{tsargp.N("--verbose"), tsargp.N("-v")},
			Cluster:  []rune{'v'},
			Group:    "General",
			Synopsis: "Enable verbose output.",
		},
		"name": {
			Type:     tsargp.KindSingle,
			Names:    []tsargp.Name{tsargp.N("--name"), tsargp.N("-n")},
			Cluster:  []rune{'n'},
			Group:    "Options",
			Synopsis: "Your name.",
			Default:  "world",
		},
		"tags": {
			Type:      tsargp.KindArray,
			Names:     []tsargp.Name{tsargp.N("--tag"), tsargp.N("-t")},
			Cluster:   []rune{'t'},
			Separator: ",",
			Group:     "Options",
			Synopsis:  "Repeatable/comma-separated tag list.",
		},
	}
}
