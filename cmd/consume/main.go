package main

import (
	"fmt"
	"os"

	"mcpreg/internal/cli"
)

func main() {
	if err := cli.ExecuteConsume(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
