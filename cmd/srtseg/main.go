package main

import (
	"os"

	"github.com/Tairraos/srtseg/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
