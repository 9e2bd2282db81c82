package main

import (
	"os"

	"github.com/taodethi/taodethi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
