// ecomate looks products up in the EcoMate catalog from the terminal.
package main

import (
	"os"

	"github.com/ecomate/backend/cmd/ecomate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
