package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/purnalakshitha99/location-app/internal/model"
)

// PgSubmissionRepository is the PostgreSQL implementation of SubmissionRepository.
type PgSubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewPgSubmissionRepository creates a PgSubmissionRepository backed by the given pool.
func NewPgSubmissionRepository(pool *pgxpool.Pool) *PgSubmissionRepository {
	return &PgSubmissionRepository{pool: pool}
}

// Ensure PgSubmissionRepository implements SubmissionRepository at compile time.
var _ SubmissionRepository = (*PgSubmissionRepository)(nil)

// Ping verifies database connectivity (used by the health endpoint).
func (r *PgSubmissionRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Save inserts a new submissions row. The id is assigned by the store
// (gen_random_uuid) and written back via RETURNING. visitor_data is
// stored as jsonb and may be NULL when enrichment failed entirely.
func (r *PgSubmissionRepository) Save(ctx context.Context, sub *model.ContactSubmission) error {
	var visitorData []byte
	if sub.VisitorData != nil {
		b, err := json.Marshal(sub.VisitorData)
		if err != nil {
			return fmt.Errorf("marshal visitor data: %w", err)
		}
		visitorData = b
	}

	err := r.pool.QueryRow(ctx,
		`INSERT INTO submissions (name, email, message, visitor_data, submitted_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		sub.Name, sub.Email, sub.Message, visitorData, sub.SubmittedAt,
	).Scan(&sub.ID)
	return classify(err)
}

// ListAll returns every submission, newest first. A NULL visitor_data
// column yields a nil VisitorData; a missing submitted_at falls back
// to the read time (lenient read).
func (r *PgSubmissionRepository) ListAll(ctx context.Context) ([]*model.ContactSubmission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, message, visitor_data, submitted_at
		 FROM submissions
		 ORDER BY submitted_at DESC`)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	now := time.Now()
	var subs []*model.ContactSubmission
	for rows.Next() {
		var s model.ContactSubmission
		var visitorData []byte
		var submittedAt *time.Time
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Message, &visitorData, &submittedAt); err != nil {
			return nil, err
		}
		if submittedAt != nil {
			s.SubmittedAt = *submittedAt
		}
		s.SubmittedAt = model.NormalizeSubmittedAt(s.SubmittedAt, now)
		if len(visitorData) > 0 {
			var vd model.VisitorData
			if err := json.Unmarshal(visitorData, &vd); err == nil {
				s.VisitorData = &vd
			}
		}
		subs = append(subs, &s)
	}
	return subs, rows.Err()
}

// Delete removes one submission permanently. No soft delete, no audit trail.
func (r *PgSubmissionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
