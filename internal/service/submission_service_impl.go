package service

import (
	"context"
	"time"

	"github.com/purnalakshitha99/location-app/internal/model"
	"github.com/purnalakshitha99/location-app/internal/repository"
	"github.com/purnalakshitha99/location-app/internal/telemetry"
)

// submissionServiceImpl is the production implementation of SubmissionService.
type submissionServiceImpl struct {
	repo     repository.SubmissionRepository
	enricher Enricher
	retry    retryPolicy
}

// NewSubmissionService creates a SubmissionService backed by the given
// repository and enricher.
func NewSubmissionService(repo repository.SubmissionRepository, enricher Enricher) SubmissionService {
	return &submissionServiceImpl{
		repo:     repo,
		enricher: enricher,
		retry:    defaultRetryPolicy(),
	}
}

// Submit runs the enrichment pipeline and persists the record with up
// to 3 attempts and 1s/2s/4s backoff. Permission-denied and
// unauthenticated store failures abort on the first attempt.
func (s *submissionServiceImpl) Submit(ctx context.Context, form SubmissionForm, loc telemetry.Geolocator, device model.DeviceDetails) (*model.ContactSubmission, error) {
	sub := &model.ContactSubmission{
		Name:        form.Name,
		Email:       form.Email,
		Message:     form.Message,
		SubmittedAt: time.Now().UTC(),
	}

	// Enrichment failures are absorbed here; the contact message is
	// still submittable with VisitorData absent.
	sub.VisitorData = s.enricher.Collect(ctx, loc, device)

	err := s.retry.run(ctx, "submission save", func(ctx context.Context) error {
		return s.repo.Save(ctx, sub)
	}, repository.IsTerminal)
	if err != nil {
		return nil, err
	}
	return sub, nil
}
