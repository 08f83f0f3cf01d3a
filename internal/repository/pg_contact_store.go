package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/contactdesk/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS contact_documents (
	id                UUID PRIMARY KEY,
	submitted_at      TIMESTAMPTZ,
	submitted_at_text TEXT NOT NULL,
	document          JSONB NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS contact_documents_submitted_at_idx
	ON contact_documents (submitted_at DESC NULLS LAST);
`

// PgContactStore stores each record as a JSONB document in PostgreSQL.
// The submission time is also kept in its own column so listing can be
// ordered by the database.
type PgContactStore struct {
	pool    *pgxpool.Pool
	timeout time.Duration
	project string
}

// NewPgContactStore creates a PgContactStore backed by the given pool.
// Every call is bounded by timeout.
func NewPgContactStore(pool *pgxpool.Pool, timeout time.Duration) *PgContactStore {
	return &PgContactStore{pool: pool, timeout: timeout}
}

var (
	_ ContactStore = (*PgContactStore)(nil)
	_ DB           = (*PgContactStore)(nil)
	_ Describer    = (*PgContactStore)(nil)
)

// Init creates the table and index if they do not exist yet.
func (s *PgContactStore) Init(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.pool.Exec(ctx, pgSchema); err != nil {
		return fmt.Errorf("postgres store: create schema: %w", err)
	}
	if err := s.pool.QueryRow(ctx, `SELECT current_database()`).Scan(&s.project); err != nil {
		return fmt.Errorf("postgres store: current database: %w", err)
	}
	return nil
}

// Append inserts rec as a new document and sets rec.ID.
func (s *PgContactStore) Append(ctx context.Context, rec *model.ContactRecord) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	id := uuid.NewString()
	doc := *rec
	doc.ID = ""
	body, err := json.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("postgres store: encode: %w", err)
	}

	var submittedAt *time.Time
	if t, ok := rec.SubmittedAt.Time(); ok {
		submittedAt = &t
	}

	if _, err := s.pool.Exec(ctx,
		`INSERT INTO contact_documents (id, submitted_at, submitted_at_text, document)
		 VALUES ($1, $2, $3, $4)`,
		id, submittedAt, rec.SubmittedAt.String(), body,
	); err != nil {
		return fmt.Errorf("postgres store: insert: %w", err)
	}
	rec.ID = id
	return nil
}

// ListAll returns every document ordered by submitted_at descending.
// Documents whose submission time could not be resolved come last.
func (s *PgContactStore) ListAll(ctx context.Context) ([]*model.ContactRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT id::text, document
		 FROM contact_documents
		 ORDER BY submitted_at DESC NULLS LAST, submitted_at_text DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("postgres store: query: %w", err)
	}
	defer rows.Close()

	records := []*model.ContactRecord{}
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("postgres store: scan: %w", err)
		}
		var rec model.ContactRecord
		if err := json.Unmarshal(doc, &rec); err != nil {
			return nil, fmt.Errorf("postgres store: decode %s: %w", id, err)
		}
		rec.ID = id
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres store: rows: %w", err)
	}
	return records, nil
}

func (s *PgContactStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.pool.Ping(ctx)
}

func (s *PgContactStore) Describe() StoreInfo {
	return StoreInfo{Backend: "postgres", Project: s.project}
}

func (s *PgContactStore) Close() error {
	s.pool.Close()
	return nil
}
