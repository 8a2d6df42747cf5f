package main

import (
	"os"

	"github.com/abhisek/cognilevel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
