package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/staymithra/resetserver/cmd/internal/build"
	"github.com/staymithra/resetserver/cmd/serve"
)

const dotEnvFile = ".env"

func main() {
	if err := run(os.Args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stdout, "Error starting server: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if err := loadDotEnv(dotEnvFile); err != nil {
		return err
	}

	// Invoked bare, the binary just serves.
	if len(args) < 2 {
		args = append(args[:len(args):len(args)], "serve")
	}

	app := &cli.App{
		Name:   "resetserver",
		Usage:  "resetserver serves the password reset page for local development",
		Writer: stdout,
		Flags: []cli.Flag{ // Global flags.
			&cli.BoolFlag{
				Name:        "debug",
				Value:       false,
				Usage:       "enable debug mod",
				DefaultText: "false",
				EnvVars:     []string{"DEBUG"},
			},
		},
		Commands: []*cli.Command{
			serve.Command(),
			build.Command(),
		},
	}

	return app.Run(args)
}

// loadDotEnv fills the environment from path, if it exists, before flags read their env vars.
// Variables already set win.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("could not load %s: %w", path, err)
	}
	return nil
}
