package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oestevezr/mapstruct/server"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the mapping session server on stdio (JSON-RPC 2.0)",
		Flags: append(sourceFlags(),
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		),
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	// Logs go to stderr, stdout carries the protocol.
	config := zap.NewDevelopmentConfig()
	config.OutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	if cmd.Bool("debug") {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return err
	}

	defer func() {
		_ = logger.Sync()
	}()

	opts := server.SessionOptions{}

	// The catalog can be preloaded here or pushed later over
	// mapping/catalog; starting without a source is fine.
	s, err := buildSetup(ctx, cmd)
	if err != nil && !errors.Is(err, ErrNoSource) {
		return err
	}

	if err == nil {
		opts = server.SessionOptions{
			HistoryCapacity: s.cfg.HistoryCapacity(),
			MatchRules:      s.rules,
			DocumentID:      s.docID,
			BackendType:     s.backendType,
			TrxName:         s.trxName,
		}
	}

	session := server.NewSession(logger, opts)
	if err == nil {
		session.SetCatalog(s.catalog)
	}

	return server.Serve(ctx, logger, os.Stdin, os.Stdout, session)
}
