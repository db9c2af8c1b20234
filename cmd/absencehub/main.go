package main

import (
	"os"

	"absencehub/cmd/absencehub/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
