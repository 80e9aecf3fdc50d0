package main

import (
	"os"

	"github.com/project-tagsweep/tagsweep/pkg/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
