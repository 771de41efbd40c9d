package main

import (
	"os"

	"github.com/starfeel/star/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
