// Command evolve runs the genetic optimizer with the built-in configuration and prints a summary
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lixenwraith/evolve/genetic"
)

func main() {
	if err := run(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "evolve: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer) error {
	config := genetic.DefaultConfig()

	o, err := genetic.New(config)
	if err != nil {
		return err
	}
	pop := o.Run()

	return genetic.WriteSummary(w, config, genetic.Measure(pop))
}
