package main

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed seeds/entries.json
var seedFiles embed.FS

func init() {
	registerSeeder(&EntrySeeder{})
}

// EntrySeedData represents the JSON structure for entry seed files.
type EntrySeedData struct {
	Entries []EntrySeed `json:"entries"`
}

// EntrySeed is one catalog entry in a seed file.
type EntrySeed struct {
	Title      string   `json:"title"`
	Kind       string   `json:"type"`
	Director   string   `json:"director"`
	Budget     *float64 `json:"budget"`
	Location   string   `json:"location"`
	Duration   string   `json:"duration"`
	YearOrTime string   `json:"yearOrTime"`
	Details    string   `json:"details"`
}

// EntrySeeder implements Seeder for catalog entries.
// It loads seed data from an embedded file or an external file path.
type EntrySeeder struct {
	file string
}

// Name returns "entries" as the seeder identifier.
func (s *EntrySeeder) Name() string {
	return "entries"
}

// Description returns a human-readable description of this seeder.
func (s *EntrySeeder) Description() string {
	return "Seeds sample movie and TV show catalog entries"
}

// SetFile configures an external seed file path, overriding the embedded default.
func (s *EntrySeeder) SetFile(path string) {
	s.file = path
}

// Seed loads entry data and inserts any entries not already present.
// Entries are matched by title, so repeated runs are idempotent.
func (s *EntrySeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	data, err := s.loadSeedData()
	if err != nil {
		return err
	}

	for _, e := range data.Entries {
		if err := s.saveEntry(ctx, tx, e); err != nil {
			return fmt.Errorf("save entry %s: %w", e.Title, err)
		}
	}

	return nil
}

func (s *EntrySeeder) loadSeedData() (*EntrySeedData, error) {
	var content []byte
	var err error

	if s.file != "" {
		content, err = os.ReadFile(s.file)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	} else {
		content, err = seedFiles.ReadFile("seeds/entries.json")
		if err != nil {
			return nil, fmt.Errorf("read embedded seed file: %w", err)
		}
	}

	var data EntrySeedData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}

	return &data, nil
}

func (s *EntrySeeder) saveEntry(ctx context.Context, tx *sql.Tx, e EntrySeed) error {
	var exists bool
	err := tx.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM entries WHERE title = $1)", e.Title,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	const query = `
		INSERT INTO entries
			(title, kind, director, budget, location, duration, year_or_time, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = tx.ExecContext(ctx, query,
		e.Title, e.Kind, e.Director, e.Budget,
		e.Location, e.Duration, e.YearOrTime, e.Details,
	)
	return err
}
