package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/patientdir/internal/domain/search/request"
	logpkg "github.com/kailas-cloud/patientdir/internal/logger"
	patientrepo "github.com/kailas-cloud/patientdir/internal/repository/patient"
	searchuc "github.com/kailas-cloud/patientdir/internal/usecase/search"
)

func queryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "Run one query against a data file and print the result envelope",
		ArgsUsage: `"search=jo&sort=age:desc"`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "data",
				Usage: "Patient collection JSON file",
				Value: filepath.Join("data", "data.json"),
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runQuery(ctx, c, c.String("data"), c.Args().First())
		},
	}
}

func runQuery(ctx context.Context, c *cli.Command, dataPath, rawQuery string) error {
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return fmt.Errorf("parse query %q: %w", rawQuery, err)
	}

	logger, err := logpkg.NewLogger(logpkg.EnvCLI)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	source := patientrepo.NewFileSource(dataPath, patientrepo.Instruments{}, logger)
	if err := source.Load(ctx); err != nil {
		return err
	}

	req := request.Parse(q)
	page, err := searchuc.New(source, logger).Search(ctx, &req)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(page.Envelope(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(c.Root().Writer, string(out))
	return err
}
