package main

import (
	"os"

	"github.com/kamusis/credscan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
