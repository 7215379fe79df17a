package main

import (
	"os"

	"github.com/soundprediction/strata/cmd/strata"
)

func main() {
	if err := strata.Execute(); err != nil {
		os.Exit(1)
	}
}
