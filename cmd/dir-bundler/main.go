package main

import (
	"fmt"
	"os"

	"github.com/bethropolis/dir-bundler/internal/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
