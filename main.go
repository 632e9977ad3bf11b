// Companheiro - a daily routine companion for the elderly.

package main

import (
	"os"

	"github.com/ljmonteiro/companheiro/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
