package main

import (
	"os"

	"github.com/akif5298/flowstate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
