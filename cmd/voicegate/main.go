// Package main is the entry point for the voicegate webhook gateway.
package main

import (
	"github.com/joho/godotenv"
	_ "go.uber.org/automaxprocs/maxprocs"

	"github.com/unlistededge/voicegate/cmd/voicegate/app"
)

func main() {
	_ = godotenv.Load()

	app.NewApp().Run()
}
