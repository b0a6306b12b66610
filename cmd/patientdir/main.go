package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "patientdir:", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "patientdir",
		Usage: "Patient directory query service",
		Commands: []*cli.Command{
			serveCommand(),
			queryCommand(),
			seedCommand(),
			versionCommand(),
		},
	}
}

// envFlag selects config/<env>.yaml and the logger flavour.
func envFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "env",
		Usage:   "Environment: local, dev, docker, prod",
		Value:   "local",
		Sources: cli.EnvVars("ENV"),
	}
}
