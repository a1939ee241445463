package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"riskscope/pkg/platform/sentinel"
)

// PostgresStore persists analysis records in PostgreSQL. The full result is
// stored as JSONB next to the columns the history queries filter on.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Compile-time interface check.
var _ AnalysisStore = (*PostgresStore)(nil)

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the analyses table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS analyses (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL,
			risk_score INT NOT NULL,
			risk_level TEXT NOT NULL,
			result JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure analyses table: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS analyses_created_at_idx ON analyses (created_at DESC)
	`)
	if err != nil {
		return fmt.Errorf("ensure analyses index: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, rec Record) error {
	payload, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("marshal analysis result: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO analyses (id, username, risk_score, risk_level, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rec.ID, rec.Result.Username, rec.Result.RiskScore, string(rec.Result.RiskLevel), payload, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	var rec Record
	var payload []byte
	err := s.pool.QueryRow(ctx, `
		SELECT id, result, created_at
		FROM analyses
		WHERE id = $1
	`, id).Scan(&rec.ID, &payload, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("analysis %s: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis: %w", err)
	}
	if err := json.Unmarshal(payload, &rec.Result); err != nil {
		return nil, fmt.Errorf("unmarshal analysis result: %w", err)
	}
	return &rec, nil
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, result, created_at
		FROM analyses
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var payload []byte
		if err := rows.Scan(&rec.ID, &payload, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan analysis row: %w", err)
		}
		if err := json.Unmarshal(payload, &rec.Result); err != nil {
			return nil, fmt.Errorf("unmarshal analysis result: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Purge(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM analyses`)
	if err != nil {
		return 0, fmt.Errorf("purge analyses: %w", err)
	}
	return tag.RowsAffected(), nil
}
