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

func automapCommand() *cli.Command {
	return &cli.Command{
		Name:  "automap",
		Usage: "Connect DTO and DAO fields by name and report the result",
		Flags: append(sourceFlags(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "output the mapping summary as JSON",
			},
		),
		Action: runAutomap,
	}
}

func runAutomap(ctx context.Context, cmd *cli.Command) error {
	s, err := buildSetup(ctx, cmd)
	if err != nil {
		return err
	}

	store := mapstruct.NewStoreWithCapacity(s.cfg.HistoryCapacity())

	created, err := mapstruct.AutoMap(store, s.catalog, s.matcher)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(mapstruct.Summarize(s.catalog, store, time.Now()))
	}

	for _, a := range created {
		fmt.Printf("%s  %s -> %s\n", a.ID, a.Sources[0], a.Targets[0])
		for _, w := range a.Warnings {
			fmt.Printf("      warning: %s\n", w)
		}
	}

	unmatched := len(s.catalog.SourceFields()) - len(created)
	fmt.Printf("\nmapped %d fields, %d unmatched\n", len(created), unmatched)

	return nil
}
