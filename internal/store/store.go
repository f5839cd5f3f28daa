// Package store persists per-turn engagement records to Postgres for
// analyst queries. The archive is an optional collaborator: loki runs fine
// without a database, it just keeps no history.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// Engagement is one archived honeypot turn.
type Engagement struct {
	SessionID    string
	Turn         int
	Stage        string
	ScamType     string
	Confidence   float64
	UPIIDs       []string
	BankAccounts []string
	PhoneNumbers []string
	URLs         []string
}

// SaveEngagement inserts one turn into the engagements table.
func (s *Store) SaveEngagement(ctx context.Context, e Engagement) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO engagements (id, session_id, turn, stage, scam_type, confidence,
			upi_ids, bank_accounts, phone_numbers, urls, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		id, e.SessionID, e.Turn, e.Stage, e.ScamType, e.Confidence,
		e.UPIIDs, e.BankAccounts, e.PhoneNumbers, e.URLs, time.Now().UTC(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert engagement: %w", err)
	}
	return id, nil
}

// Summary aggregates the archive for the status endpoint.
type Summary struct {
	Engagements int `json:"engagements"`
	Sessions    int `json:"sessions"`
	Artifacts   int `json:"artifacts"`
}

// Summarize counts archived engagements, distinct sessions, and harvested
// artifacts.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	var sum Summary
	err := s.pool.QueryRow(ctx, `
		SELECT count(*),
			count(DISTINCT session_id),
			coalesce(sum(cardinality(upi_ids) + cardinality(bank_accounts)
				+ cardinality(phone_numbers) + cardinality(urls)), 0)
		FROM engagements`,
	).Scan(&sum.Engagements, &sum.Sessions, &sum.Artifacts)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize engagements: %w", err)
	}
	return sum, nil
}
