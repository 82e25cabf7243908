// Package main - warehouse CLI
//
// Usage:
//
//	go run ./cmd/warehouse transform
//	go run ./cmd/warehouse transform --schedule "0 6 * * *"
//	go run ./cmd/warehouse summary
//	go run ./cmd/warehouse health
package main

import (
	"os"

	"github.com/finmart/warehouse/cmd/warehouse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
