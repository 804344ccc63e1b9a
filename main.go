package main

import (
	"os"

	"github.com/sajals2410/elyx-assignment/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
