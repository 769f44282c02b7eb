package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkraev/resumeforge/pkg/application"
)

// ApplicationRepository stores tracked job applications.
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) (*ApplicationRepository, error) {
	r := &ApplicationRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ApplicationRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS applications (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	company TEXT NOT NULL,
	position TEXT NOT NULL,
	job_description TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	notes TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_applications_owner ON applications (owner_id, created_at DESC);
`)
	return err
}

func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO applications (id, owner_id, company, position, job_description, status, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, a.ID, a.OwnerID, a.Company, a.Position, a.JobDescription, a.Status, a.Notes, a.CreatedAt, a.UpdatedAt)
	return err
}

func (r *ApplicationRepository) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (application.Application, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, owner_id, company, position, job_description, status, notes, created_at, updated_at
FROM applications WHERE id = $1 AND owner_id = $2
`, id, ownerID)
	return scanApplication(row)
}

func (r *ApplicationRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]application.Application, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, owner_id, company, position, job_description, status, notes, created_at, updated_at
FROM applications WHERE owner_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []application.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *ApplicationRepository) Update(ctx context.Context, a application.Application) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE applications
SET company = $3, position = $4, job_description = $5, status = $6, notes = $7, updated_at = $8
WHERE id = $1 AND owner_id = $2
`, a.ID, a.OwnerID, a.Company, a.Position, a.JobDescription, a.Status, a.Notes, a.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return application.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
DELETE FROM applications WHERE id = $1 AND owner_id = $2
`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return application.ErrNotFound
	}
	return nil
}

func scanApplication(row pgx.Row) (application.Application, error) {
	var a application.Application
	var created, updated time.Time
	if err := row.Scan(&a.ID, &a.OwnerID, &a.Company, &a.Position, &a.JobDescription, &a.Status, &a.Notes, &created, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	a.CreatedAt = created.UTC()
	a.UpdatedAt = updated.UTC()
	return a, nil
}
