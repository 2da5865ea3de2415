package repository

import (
	"context"

	"github.com/purnalakshitha99/location-app/internal/model"
)

// SubmissionRepository defines the persistence interface for contact
// submissions. It is defined here (in repository) to avoid an import
// cycle with service.
type SubmissionRepository interface {
	// Save appends one submission and populates sub.ID with the
	// store-assigned identifier. Terminal failures are reported as
	// ErrPermissionDenied / ErrUnauthenticated.
	Save(ctx context.Context, sub *model.ContactSubmission) error

	// ListAll returns every submission ordered by SubmittedAt descending.
	ListAll(ctx context.Context) ([]*model.ContactSubmission, error)

	// Delete removes one submission permanently. Returns ErrNotFound if
	// no row matched.
	Delete(ctx context.Context, id string) error
}
