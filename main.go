package main

import (
	"os"

	"github.com/rebaze/secrisk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
