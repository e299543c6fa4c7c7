package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/oestevezr/mapstruct"
	"github.com/oestevezr/mapstruct/extract"
	"github.com/oestevezr/mapstruct/remote"
)

// Setup command errors.
var (
	ErrNoModelSelected = errors.New("multiple model folders found, pick one with --model")
	ErrNoSource        = errors.New("no field source: pass --url or run inside a Java service")
)

// setup is everything a mapping command needs: both catalogs, the
// matcher, and the export metadata.
type setup struct {
	cfg     *mapstruct.Config
	catalog *mapstruct.Catalog
	matcher *mapstruct.Matcher
	rules   []mapstruct.MatchRule

	docID       string
	backendType string
	trxName     string
}

// sourceFlags are shared by every command that builds a catalog.
func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "url",
			Usage: "fetch the service description from this URL instead of scanning sources",
		},
		&cli.StringFlag{
			Name:    "root",
			Aliases: []string{"r"},
			Usage:   "search root for the business folder (default: working directory)",
		},
		&cli.StringFlag{
			Name:    "model",
			Aliases: []string{"m"},
			Usage:   "dao model subfolder (e.g. kcdt)",
		},
		&cli.StringFlag{
			Name:  "backend",
			Usage: "backend type written to the exported document",
		},
		&cli.StringFlag{
			Name:  "trx",
			Usage: "transaction name written to the exported document",
		},
		&cli.StringFlag{
			Name:  "id",
			Usage: "document id written to the exported document",
		},
	}
}

// buildSetup loads config, builds the catalog from the remote preview
// or local extraction, and compiles user match rules.
func buildSetup(ctx context.Context, cmd *cli.Command) (*setup, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting cwd: %w", err)
	}

	cfg, err := mapstruct.LoadConfig(cwd)
	if err != nil {
		if !errors.Is(err, mapstruct.ErrConfigNotFound) {
			return nil, err
		}

		cfg = &mapstruct.Config{}
	}

	rules, err := mapstruct.CompileMatchRules(cfg.MatchRules)
	if err != nil {
		return nil, fmt.Errorf("compiling match rules: %w", err)
	}

	s := &setup{
		cfg:         cfg,
		matcher:     mapstruct.NewMatcher(rules...),
		rules:       rules,
		docID:       firstNonEmpty(cmd.String("id"), "mapping"),
		backendType: firstNonEmpty(cmd.String("backend"), cfg.Backend.Type),
		trxName:     cmd.String("trx"),
	}

	url := cmd.String("url")
	if url == "" && cfg.Preview != nil {
		url = cfg.Preview.URL
	}

	if url != "" {
		return s, s.fetchRemote(ctx, url)
	}

	return s, s.extractLocal(cmd, cwd)
}

func (s *setup) fetchRemote(ctx context.Context, url string) error {
	timeout := time.Duration(0)
	if s.cfg.Preview != nil {
		timeout = time.Duration(s.cfg.Preview.TimeoutSeconds) * time.Second
	}

	desc, err := remote.NewClient(timeout).FetchDescription(ctx, url)
	if err != nil {
		return err
	}

	s.catalog = desc.Catalog()

	if s.docID == "mapping" && desc.Details.ID != "" {
		s.docID = desc.Details.ID
	}

	if s.backendType == "" {
		s.backendType = desc.BackendAccess.BackendType
	}

	if s.trxName == "" && len(desc.BackendAccess.Transactions) > 0 {
		s.trxName = desc.BackendAccess.Transactions[0].Name
	}

	return nil
}

func (s *setup) extractLocal(cmd *cli.Command, cwd string) error {
	root := firstNonEmpty(cmd.String("root"), s.cfg.Extract.Root, cwd)

	businessDir, err := extract.FindBusinessDir(root)
	if err != nil {
		if errors.Is(err, extract.ErrNoBusinessFolder) {
			return ErrNoSource
		}

		return err
	}

	model := firstNonEmpty(cmd.String("model"), s.cfg.Extract.Model)
	if model == "" {
		models, err := extract.ModelSubfolders(businessDir)
		if err != nil {
			return err
		}

		if len(models) > 1 {
			return fmt.Errorf("%w: %s", ErrNoModelSelected, strings.Join(models, ", "))
		}

		model = models[0]
	}

	s.catalog, err = extract.Catalog(businessDir, model)

	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
