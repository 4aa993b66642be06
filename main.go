package main

import (
	"os"

	"github.com/voltwise/stationmatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
