package main

import (
	"os"

	"github.com/msto63/llrec/cmd/llrec/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
