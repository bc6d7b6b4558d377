package main

import (
	"fmt"
	"os"

	"github.com/sokinpui/dap"
)

func main() {
	if err := dap.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
