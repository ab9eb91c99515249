package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/contentmux/contentmux/internal/cli"
)

func main() {
	_ = godotenv.Load() // optional .env, absent in most deployments

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
