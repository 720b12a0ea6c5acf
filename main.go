package main

import (
	"fmt"
	"os"

	"github.com/zeu5/impact-eval/benchmarks"
)

// main entry point to the policy evaluation
func main() {
	rootCommand := benchmarks.GetRootCommand()
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
