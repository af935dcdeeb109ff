package main

// Seed the colleges catalog from the College Scorecard API:
//   SCORECARD_API_KEY=... DATABASE_URL=... go run ./cmd/seedcolleges -state FL
// Without an API key, bundled fixtures are loaded instead.

import (
	"context"
	"flag"
	"log"
	"os"

	"gatorguide-backend/internal/colleges"
	"gatorguide-backend/internal/shared/config"
	"gatorguide-backend/internal/shared/storage/db"
)

func main() {
	state := flag.String("state", "", "two-letter state to seed (empty seeds nationwide pages)")
	limit := flag.Int("limit", 100, "max colleges to fetch")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}

	candidates, err := fetch(ctx, cfg, *state, *limit)
	if err != nil {
		log.Printf("failed to fetch colleges: %v", err)
		os.Exit(1)
	}

	repo := &colleges.PGRepo{DB: sqlDB}
	seeded := 0
	for _, c := range candidates {
		if err := repo.Upsert(ctx, c); err != nil {
			log.Printf("upsert %s failed: %v", c.ID, err)
			continue
		}
		seeded++
	}
	log.Printf("seeded %d of %d colleges", seeded, len(candidates))
}

func fetch(ctx context.Context, cfg config.Config, state string, limit int) ([]colleges.Candidate, error) {
	if cfg.ScorecardAPIKey == "" {
		log.Printf("SCORECARD_API_KEY empty; seeding bundled fixtures")
		return colleges.FixtureSet(), nil
	}
	client, err := colleges.NewScorecardClient(cfg.ScorecardAPIKey, "")
	if err != nil {
		return nil, err
	}
	set, err := client.Candidates(ctx, colleges.Filter{State: state, Limit: limit})
	if err != nil {
		return nil, err
	}
	return set.Candidates, nil
}
