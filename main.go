package main

import (
	"os"

	"github.com/studysquad/studysquad/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
