package main

import (
	"os"

	"github.com/galalqassas/tender-matcher/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
