// Command seed imports problems from a YAML catalogue into Postgres.
//
//	seed -db postgres://localhost/dojo -file problems.yaml
//
// Problems are upserted by slug, so re-running the import updates them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/gsarma/algodojo/internal/judge"
	"github.com/gsarma/algodojo/internal/logging"
	"github.com/gsarma/algodojo/internal/store"
)

var (
	dbURL   = flag.String("db", os.Getenv("DOJO_DATABASE_URL"), "postgres connection string")
	file    = flag.String("file", "problems.yaml", "problem catalogue to import")
	migrate = flag.Bool("migrate", true, "apply the schema before importing")
)

type problemFile struct {
	Problems []problemEntry `yaml:"problems"`
}

type problemEntry struct {
	Title       string           `yaml:"title"`
	Slug        string           `yaml:"slug"`
	Description string           `yaml:"description"`
	Difficulty  string           `yaml:"difficulty"`
	Tags        []string         `yaml:"tags"`
	TestCases   []judge.TestCase `yaml:"test_cases"`
}

func main() {
	flag.Parse()
	if *dbURL == "" {
		log.Fatal("-db or DOJO_DATABASE_URL is required")
	}

	logger, err := logging.New(logging.Config{Level: "info", Format: "console"})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	data, err := os.ReadFile(*file)
	if err != nil {
		logger.Fatal("failed to read catalogue", zap.Error(err))
	}
	params, err := parseProblems(data)
	if err != nil {
		logger.Fatal("invalid catalogue", zap.String("file", *file), zap.Error(err))
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, *dbURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if *migrate {
		if err := store.Migrate(ctx, pool); err != nil {
			logger.Fatal("failed to apply schema", zap.Error(err))
		}
	}

	q := store.New(pool)
	for _, p := range params {
		saved, err := q.UpsertProblem(ctx, p)
		if err != nil {
			logger.Fatal("failed to import problem", zap.String("slug", p.Slug), zap.Error(err))
		}
		logger.Info("imported problem", zap.Int64("id", saved.ID), zap.String("slug", saved.Slug))
	}
	logger.Info("import finished", zap.Int("count", len(params)))
}

// parseProblems decodes a catalogue and checks each entry.
func parseProblems(data []byte) ([]store.UpsertProblemParams, error) {
	var f problemFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	seen := make(map[string]bool, len(f.Problems))
	out := make([]store.UpsertProblemParams, 0, len(f.Problems))
	for i, p := range f.Problems {
		if p.Title == "" || p.Slug == "" {
			return nil, fmt.Errorf("problem %d: title and slug are required", i)
		}
		if seen[p.Slug] {
			return nil, fmt.Errorf("problem %q: duplicate slug", p.Slug)
		}
		seen[p.Slug] = true
		if !validDifficulty(p.Difficulty) {
			return nil, fmt.Errorf("problem %q: unknown difficulty %q", p.Slug, p.Difficulty)
		}
		out = append(out, store.UpsertProblemParams{
			Title:       p.Title,
			Slug:        p.Slug,
			Description: p.Description,
			Difficulty:  p.Difficulty,
			Tags:        p.Tags,
			TestCases:   p.TestCases,
		})
	}
	return out, nil
}

func validDifficulty(d string) bool {
	for _, v := range store.Difficulties {
		if v == d {
			return true
		}
	}
	return false
}
