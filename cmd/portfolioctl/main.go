package main

import (
	"os"

	"github.com/ndewijer/portfolio-vis/internal/cli"
)

func main() {
	if err := cli.New(os.Stdout, os.Stderr).Command().Execute(); err != nil {
		os.Exit(1)
	}
}
