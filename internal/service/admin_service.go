package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/purnalakshitha99/location-app/internal/model"
	"github.com/purnalakshitha99/location-app/internal/repository"
)

// AdminService exposes the operator-side record set operations: the
// full snapshot the query engine derives views from, and bulk delete.
type AdminService interface {
	// ListAll returns the full record set, newest first.
	ListAll(ctx context.Context) ([]*model.ContactSubmission, error)

	// BulkDelete removes each id from the store. Deletes run
	// concurrently and the call waits for all of them to settle.
	// It returns the ids actually deleted and the per-id failures;
	// successful deletes are never rolled back on partial failure.
	BulkDelete(ctx context.Context, ids []string) (deleted []string, failed map[string]error)
}

// adminServiceImpl is the production implementation of AdminService.
type adminServiceImpl struct {
	repo repository.SubmissionRepository
}

// NewAdminService creates an AdminService backed by the given repository.
func NewAdminService(repo repository.SubmissionRepository) AdminService {
	return &adminServiceImpl{repo: repo}
}

func (s *adminServiceImpl) ListAll(ctx context.Context) ([]*model.ContactSubmission, error) {
	return s.repo.ListAll(ctx)
}

func (s *adminServiceImpl) BulkDelete(ctx context.Context, ids []string) ([]string, map[string]error) {
	errs := make([]error, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			errs[i] = s.repo.Delete(ctx, id)
		}(i, id)
	}
	wg.Wait()

	var deleted []string
	failed := map[string]error{}
	for i, id := range ids {
		if errs[i] == nil {
			deleted = append(deleted, id)
			continue
		}
		failed[id] = errs[i]
	}

	if len(failed) > 0 {
		slog.Error("bulk delete partially failed", "requested", len(ids), "deleted", len(deleted), "failed", len(failed))
	} else {
		slog.Info("bulk delete settled", "requested", len(ids), "deleted", len(deleted))
	}
	return deleted, failed
}
