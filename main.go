package main

import (
	"os"

	"github.com/yusuftas/PRGAVI/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
