package service

import (
	"context"

	"github.com/purnalakshitha99/location-app/internal/model"
	"github.com/purnalakshitha99/location-app/internal/telemetry"
)

// SubmissionForm is the visitor-supplied part of a submission.
type SubmissionForm struct {
	Name    string
	Email   string
	Message string
}

// Enricher produces the telemetry bundle for one submission. A nil
// result means enrichment failed and the record is stored without
// telemetry; it never fails the submission itself.
type Enricher interface {
	Collect(ctx context.Context, loc telemetry.Geolocator, device model.DeviceDetails) *model.VisitorData
}

// SubmissionService defines the submission pipeline: enrich the form
// with telemetry, then persist with bounded retry.
type SubmissionService interface {
	// Submit enriches and persists one submission. The returned
	// submission carries the store-assigned ID on success.
	Submit(ctx context.Context, form SubmissionForm, loc telemetry.Geolocator, device model.DeviceDetails) (*model.ContactSubmission, error)
}
