package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkraev/resumeforge/pkg/analysis"
)

var ErrAnalysisNotFound = errors.New("analysis not found")

// AnalysisRepository stores analysis reports.
type AnalysisRepository struct {
	pool *pgxpool.Pool
}

func NewAnalysisRepository(pool *pgxpool.Pool) (*AnalysisRepository, error) {
	r := &AnalysisRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *AnalysisRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS analyses (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	resume_snapshot JSONB,
	job_description TEXT NOT NULL,
	model TEXT NOT NULL,
	result JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analyses_owner ON analyses (owner_id, created_at DESC);
`)
	return err
}

func (r *AnalysisRepository) Create(ctx context.Context, a analysis.Analysis) (analysis.Analysis, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	resultJSON, err := json.Marshal(a.Result)
	if err != nil {
		return analysis.Analysis{}, err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO analyses (id, owner_id, resume_snapshot, job_description, model, result, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, a.ID, a.OwnerID, a.ResumeSnapshot, a.JobDescription, a.Model, resultJSON, a.CreatedAt)
	if err != nil {
		return analysis.Analysis{}, err
	}
	return a, nil
}

func (r *AnalysisRepository) GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (analysis.Analysis, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, owner_id, resume_snapshot, job_description, model, result, created_at
FROM analyses WHERE id = $1 AND owner_id = $2
`, id, ownerID)
	return scanAnalysis(row)
}

func (r *AnalysisRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]analysis.Analysis, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, owner_id, resume_snapshot, job_description, model, result, created_at
FROM analyses WHERE owner_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []analysis.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *AnalysisRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
DELETE FROM analyses WHERE id = $1 AND owner_id = $2
`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAnalysisNotFound
	}
	return nil
}

func scanAnalysis(row pgx.Row) (analysis.Analysis, error) {
	var a analysis.Analysis
	var resultJSON []byte
	var created time.Time
	if err := row.Scan(&a.ID, &a.OwnerID, &a.ResumeSnapshot, &a.JobDescription, &a.Model, &resultJSON, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return analysis.Analysis{}, ErrAnalysisNotFound
		}
		return analysis.Analysis{}, err
	}
	if err := json.Unmarshal(resultJSON, &a.Result); err != nil {
		return analysis.Analysis{}, err
	}
	a.CreatedAt = created.UTC()
	return a, nil
}
