package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/oestevezr/mapstruct"
)

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Auto-map and write the backend mapping document",
		Flags: append(sourceFlags(),
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output file (default: stdout)",
			},
			&cli.BoolFlag{
				Name:  "no-auto",
				Usage: "skip auto-mapping, export an empty mapping skeleton",
			},
			&cli.BoolFlag{
				Name:  "summary",
				Usage: "write the per-field summary instead of the backend document",
			},
		),
		Action: runExport,
	}
}

func runExport(ctx context.Context, cmd *cli.Command) error {
	s, err := buildSetup(ctx, cmd)
	if err != nil {
		return err
	}

	store := mapstruct.NewStoreWithCapacity(s.cfg.HistoryCapacity())

	if !cmd.Bool("no-auto") {
		if _, err := mapstruct.AutoMap(store, s.catalog, s.matcher); err != nil {
			return err
		}
	}

	var doc any = mapstruct.Transform(s.catalog, store, s.docID, s.backendType, s.trxName)
	if cmd.Bool("summary") {
		doc = mapstruct.Summarize(s.catalog, store, time.Now())
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if out := cmd.String("out"); out != "" {
		return os.WriteFile(out, data, 0o644)
	}

	fmt.Println(string(data))

	return nil
}
