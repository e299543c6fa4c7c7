// Command mapstruct maps DTO fields onto backend DAO fields: it
// extracts both catalogs, connects fields by name or by hand, and
// exports the mapping document the code generator consumes.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "mapstruct",
		Usage: "DTO to DAO field mapping",
		Commands: []*cli.Command{
			fieldsCommand(),
			automapCommand(),
			exportCommand(),
			mapCommand(),
			serveCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
