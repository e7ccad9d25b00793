package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cinelog/cinelog/pkg/pagination"
	"github.com/google/uuid"
)

const entryColumns = "id, title, kind, director, budget, location, duration, year_or_time, details, image_path, created_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var e Entry
	err := s.Scan(
		&e.ID,
		&e.Title,
		&e.Kind,
		&e.Director,
		&e.Budget,
		&e.Location,
		&e.Duration,
		&e.YearOrTime,
		&e.Details,
		&e.ImagePath,
		&e.CreatedAt,
	)
	return e, err
}

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a catalog repository backed by the entries table.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "catalog"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Entry], error) {
	page.Normalize(r.pagination)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&total); err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}

	q := fmt.Sprintf(
		"SELECT %s FROM entries ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2",
		entryColumns,
	)

	rows, err := r.db.QueryContext(ctx, q, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	result := pagination.NewPageResult(entries, total, page)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Entry, error) {
	q := fmt.Sprintf("SELECT %s FROM entries WHERE id = $1", entryColumns)

	e, err := scanEntry(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find entry: %w", err)
	}
	return &e, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Entry, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`INSERT INTO entries
		(title, kind, director, budget, location, duration, year_or_time, details, image_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s`, entryColumns)

	e, err := scanEntry(r.db.QueryRowContext(ctx, q,
		cmd.Title, cmd.Kind, cmd.Director, cmd.Budget, cmd.Location,
		cmd.Duration, cmd.YearOrTime, cmd.Details, cmd.ImagePath,
	))
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	r.logger.Info("entry created", "id", e.ID, "title", e.Title, "kind", e.Kind)
	return &e, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Entry, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	current, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := merge(*current, cmd)

	q := fmt.Sprintf(`UPDATE entries SET
		title = $1, kind = $2, director = $3, budget = $4, location = $5,
		duration = $6, year_or_time = $7, details = $8, image_path = $9
		WHERE id = $10
		RETURNING %s`, entryColumns)

	e, err := scanEntry(r.db.QueryRowContext(ctx, q,
		merged.Title, merged.Kind, merged.Director, merged.Budget, merged.Location,
		merged.Duration, merged.YearOrTime, merged.Details, merged.ImagePath, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update entry: %w", err)
	}

	r.logger.Info("entry updated", "id", e.ID, "title", e.Title)
	return &e, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM entries WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	r.logger.Info("entry deleted", "id", id)
	return nil
}
