package main

import (
	"os"

	"github.com/nexus-dev/nexus/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
