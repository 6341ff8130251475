package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/behavior-twin/internal/replay"
)

// #region main

// replay runs a recorded observation fixture through the batch pipeline
// and verifies the expected outcomes. Exit code 1 on any failed check.
func main() {
	fixturePath := flag.String("fixture", "", "path to fixture JSON")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	fixture, err := replay.LoadFixture(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		os.Exit(2)
	}

	if fixture.Description != "" {
		fmt.Println(fixture.Description)
	}

	report := replay.Run(fixture)
	for _, line := range report.Lines() {
		fmt.Println(line)
	}

	if !report.Passed {
		os.Exit(1)
	}
	fmt.Println("replay passed")
}

// #endregion main
