package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	app "github.com/juan-rv/tallereval/internal"
	"github.com/juan-rv/tallereval/internal/cli"
)

// Set by goreleaser ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	_ = godotenv.Load() // Optional .env; TALLER_SERVICE_URL may live there.

	cli.SetVersionInfo(version, commit, date)
	basePath := app.ResolveBasePath()

	a, err := app.NewApp(basePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing tallereval: %v\n", err)
		os.Exit(1)
	}
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		a.Close()
		os.Exit(1)
	}
	a.Close()
}
