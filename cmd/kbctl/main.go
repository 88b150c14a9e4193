// Package main is the entry point for kbctl, the knowledge base tool.
package main

import (
	"os"

	"github.com/joho/godotenv"
	_ "go.uber.org/automaxprocs/maxprocs"

	"github.com/unlistededge/voicegate/cmd/kbctl/app"
)

func main() {
	_ = godotenv.Load()

	if err := app.NewKBCtlCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
