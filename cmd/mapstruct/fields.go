package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func fieldsCommand() *cli.Command {
	return &cli.Command{
		Name:  "fields",
		Usage: "List the DTO and DAO fields of the service",
		Flags: append(sourceFlags(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "output as JSON",
			},
		),
		Action: runFields,
	}
}

func runFields(ctx context.Context, cmd *cli.Command) error {
	s, err := buildSetup(ctx, cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(s.catalog)
	}

	for _, group := range s.catalog.Source {
		fmt.Printf("%s\n", group.Name)
		for _, f := range group.Fields {
			fmt.Printf("  %-30s %s\n", f.Name, f.Type)
		}
	}

	fmt.Println()
	fmt.Println("backend fields")

	for _, f := range s.catalog.Target {
		fmt.Printf("  %-30s %-20s %s\n", f.Name, f.Type, f.Owner)
	}

	return nil
}
