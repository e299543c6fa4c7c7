package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/oestevezr/mapstruct"
	"github.com/oestevezr/mapstruct/tui"
)

func mapCommand() *cli.Command {
	return &cli.Command{
		Name:  "map",
		Usage: "Edit field mappings interactively",
		Flags: append(sourceFlags(),
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "file the export key writes to",
				Value:   "mapping.json",
			},
			&cli.BoolFlag{
				Name:  "auto",
				Usage: "run auto-mapping before opening the editor",
			},
		),
		Action: runMap,
	}
}

func runMap(ctx context.Context, cmd *cli.Command) error {
	s, err := buildSetup(ctx, cmd)
	if err != nil {
		return err
	}

	store := mapstruct.NewStoreWithCapacity(s.cfg.HistoryCapacity())

	if cmd.Bool("auto") {
		if _, err := mapstruct.AutoMap(store, s.catalog, s.matcher); err != nil {
			return err
		}
	}

	return tui.Run(tui.Options{
		Catalog:     s.catalog,
		Store:       store,
		Matcher:     s.matcher,
		DocumentID:  s.docID,
		BackendType: s.backendType,
		TrxName:     s.trxName,
		ExportPath:  cmd.String("out"),
	})
}
