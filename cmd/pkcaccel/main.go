package main

import (
	"os"

	"github.com/hsiuhsiu/pkcaccel-go/cmd/pkcaccel/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
