package main

import (
	"os"

	"github.com/joho/godotenv"
)

func init() { _ = godotenv.Load() }

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
