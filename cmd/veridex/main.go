// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/poiesic/veridex"
	"github.com/poiesic/veridex/ai"
	"github.com/poiesic/veridex/core"
	"github.com/poiesic/veridex/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "veridex",
		Usage: "Query resolution over a verified document corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "query",
				Usage:     "Resolve a query against the corpus",
				ArgsUsage: "<query text>",
				Action:    queryCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "type",
						Usage: "Query type (factual, procedural, conceptual, comparative)",
						Value: "factual",
					},
					&cli.BoolFlag{
						Name:  "include-deprecated",
						Usage: "Include deprecated documents in results",
					},
					&cli.Float64Flag{
						Name:  "confidence-threshold",
						Usage: "Minimum per-claim confidence for supporting evidence",
						Value: 0.7,
					},
					&cli.IntFlag{
						Name:  "max-sources",
						Usage: "Maximum number of sources in the answer",
						Value: 5,
					},
					&cli.BoolFlag{
						Name:  "no-verify",
						Usage: "Skip claim verification",
					},
					&cli.StringSliceFlag{
						Name:  "scope",
						Usage: "Restrict to document ids or glob path patterns (repeatable)",
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.StringFlag{
						Name:  "generator-model",
						Usage: "Answer generation model name",
						Value: "qwen2.5:3b",
					},
				},
			},
			{
				Name:      "deprecate",
				Usage:     "Mark a document as deprecated (or active again)",
				ArgsUsage: "<document id>",
				Action:    deprecateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "undo",
						Usage: "Clear the deprecation flag instead of setting it",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func queryCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query text is required")
	}

	queryType := core.QueryType(c.String("type"))
	if !queryType.Valid() {
		return fmt.Errorf("invalid query type %q: must be one of factual, procedural, conceptual, comparative", c.String("type"))
	}

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithGeneratorModel(c.String("generator-model")),
	)

	engine, err := veridex.NewEngine(c.String("db"), veridex.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	input := core.NewQueryInput(query,
		core.WithQueryType(queryType),
		core.WithIncludeDeprecated(c.Bool("include-deprecated")),
		core.WithConfidenceThreshold(c.Float64("confidence-threshold")),
		core.WithMaxSources(c.Int("max-sources")),
		core.WithVerifyClaims(!c.Bool("no-verify")),
		core.WithScope(c.StringSlice("scope")...),
	)

	result, err := engine.Resolve(ctx, input)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func deprecateCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() != 1 {
		return fmt.Errorf("exactly one document id is required")
	}
	id, err := strconv.ParseUint(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid document id %q: %w", c.Args().First(), err)
	}

	store, err := badger.OpenStore(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	deprecated := !c.Bool("undo")
	if err := store.Documents().SetDeprecated(ctx, core.ID(id), deprecated); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "document %d deprecated=%t\n", id, deprecated)
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
