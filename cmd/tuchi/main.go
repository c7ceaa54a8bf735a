package main

import (
	"os"

	"github.com/Franco-Arce/Tuchi/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
