package main

import (
	"log"

	"github.com/fatih/color"

	"github.com/csheth/textcraft/internal/commands"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		log.Fatal(color.RedString("error during command execution: %v", err))
	}
}
