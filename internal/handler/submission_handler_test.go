package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/purnalakshitha99/location-app/internal/model"
	"github.com/purnalakshitha99/location-app/internal/repository"
	"github.com/purnalakshitha99/location-app/internal/service"
	"github.com/purnalakshitha99/location-app/internal/telemetry"
)

// ---------------------------------------------------------------------------
// Mock SubmissionService
// ---------------------------------------------------------------------------

type mockSubmissionService struct {
	submitFunc func(ctx context.Context, form service.SubmissionForm, loc telemetry.Geolocator, device model.DeviceDetails) (*model.ContactSubmission, error)
}

func (m *mockSubmissionService) Submit(ctx context.Context, form service.SubmissionForm, loc telemetry.Geolocator, device model.DeviceDetails) (*model.ContactSubmission, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, form, loc, device)
	}
	return &model.ContactSubmission{ID: "id-1"}, nil
}

func postSubmission(h *SubmissionHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/submissions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)
	return rec
}

// ---------------------------------------------------------------------------
// POST /api/submissions tests
// ---------------------------------------------------------------------------

func TestSubmissionHandler_Submit_Success(t *testing.T) {
	var gotForm service.SubmissionForm
	var gotLoc telemetry.Geolocator
	var gotDevice model.DeviceDetails
	mock := &mockSubmissionService{
		submitFunc: func(_ context.Context, form service.SubmissionForm, loc telemetry.Geolocator, device model.DeviceDetails) (*model.ContactSubmission, error) {
			gotForm, gotLoc, gotDevice = form, loc, device
			return &model.ContactSubmission{ID: "id-9"}, nil
		},
	}
	h := NewSubmissionHandler(mock)

	body := `{"name":"Jane","email":"jane@example.com","message":"Hello!",
		"telemetry":{"position":{"latitude":6.9,"longitude":79.8,"accuracy":15},
		"device":{"user_agent":"UA/1.0","platform":"Linux","online":true}}}`
	rec := postSubmission(h, body)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d — body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"id":"id-9"`) {
		t.Errorf("expected assigned id in response, got %s", rec.Body.String())
	}
	if gotForm.Name != "Jane" || gotForm.Email != "jane@example.com" {
		t.Errorf("unexpected form: %+v", gotForm)
	}
	pos, ok := gotLoc.(telemetry.StaticPosition)
	if !ok {
		t.Fatalf("expected StaticPosition geolocator, got %T", gotLoc)
	}
	if pos.Latitude != 6.9 || pos.Longitude != 79.8 {
		t.Errorf("unexpected position: %+v", pos)
	}
	if gotDevice.UserAgent != "UA/1.0" || gotDevice.Platform != "Linux" || !gotDevice.Online {
		t.Errorf("unexpected device: %+v", gotDevice)
	}
}

func TestSubmissionHandler_Submit_NoPositionWhenRefused(t *testing.T) {
	var gotLoc telemetry.Geolocator
	mock := &mockSubmissionService{
		submitFunc: func(_ context.Context, _ service.SubmissionForm, loc telemetry.Geolocator, _ model.DeviceDetails) (*model.ContactSubmission, error) {
			gotLoc = loc
			return &model.ContactSubmission{ID: "x"}, nil
		},
	}
	h := NewSubmissionHandler(mock)

	rec := postSubmission(h, `{"name":"J","email":"j@x.com","message":"m","telemetry":{"position":null,"device":{}}}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if _, ok := gotLoc.(telemetry.NoPosition); !ok {
		t.Errorf("expected NoPosition geolocator, got %T", gotLoc)
	}
}

func TestSubmissionHandler_Submit_DeviceFallsBackToHeaders(t *testing.T) {
	var gotDevice model.DeviceDetails
	mock := &mockSubmissionService{
		submitFunc: func(_ context.Context, _ service.SubmissionForm, _ telemetry.Geolocator, device model.DeviceDetails) (*model.ContactSubmission, error) {
			gotDevice = device
			return &model.ContactSubmission{ID: "x"}, nil
		},
	}
	h := NewSubmissionHandler(mock)

	req := httptest.NewRequest(http.MethodPost, "/api/submissions",
		strings.NewReader(`{"name":"J","email":"j@x.com","message":"m"}`))
	req.Header.Set("User-Agent", "HeaderUA/2.0")
	req.Header.Set("Accept-Language", "si-LK, en;q=0.8")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if gotDevice.UserAgent != "HeaderUA/2.0" {
		t.Errorf("expected user agent from header, got %q", gotDevice.UserAgent)
	}
	if gotDevice.Language != "si-LK" {
		t.Errorf("expected first Accept-Language entry, got %q", gotDevice.Language)
	}
}

func TestSubmissionHandler_Submit_Validation(t *testing.T) {
	h := NewSubmissionHandler(&mockSubmissionService{})

	cases := []struct {
		body string
		code string
	}{
		{`not json`, "invalid_json"},
		{`{"email":"j@x.com","message":"m"}`, "name_required"},
		{`{"name":"J","message":"m"}`, "email_required"},
		{`{"name":"J","email":"j@x.com","message":"   "}`, "message_required"},
		{fmt.Sprintf(`{"name":"J","email":"j@x.com","message":%q}`, strings.Repeat("x", maxMessageLength+1)), "message_too_long"},
	}
	for _, tc := range cases {
		rec := postSubmission(h, tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tc.code, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), tc.code) {
			t.Errorf("expected error %q, got %s", tc.code, rec.Body.String())
		}
	}
}

func TestSubmissionHandler_Submit_TerminalErrorsDistinct(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{repository.ErrPermissionDenied, "store_permission_denied"},
		{repository.ErrUnauthenticated, "store_unauthenticated"},
	}
	for _, tc := range cases {
		mock := &mockSubmissionService{
			submitFunc: func(context.Context, service.SubmissionForm, telemetry.Geolocator, model.DeviceDetails) (*model.ContactSubmission, error) {
				return nil, fmt.Errorf("save: %w", tc.err)
			},
		}
		rec := postSubmission(NewSubmissionHandler(mock), `{"name":"J","email":"j@x.com","message":"m"}`)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: expected 503, got %d", tc.code, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), tc.code) {
			t.Errorf("expected %q, got %s", tc.code, rec.Body.String())
		}
	}
}

func TestSubmissionHandler_Submit_TransientErrorGeneric(t *testing.T) {
	mock := &mockSubmissionService{
		submitFunc: func(context.Context, service.SubmissionForm, telemetry.Geolocator, model.DeviceDetails) (*model.ContactSubmission, error) {
			return nil, errors.New("timeout after retries")
		},
	}
	rec := postSubmission(NewSubmissionHandler(mock), `{"name":"J","email":"j@x.com","message":"m"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "submit_failed") {
		t.Errorf("expected submit_failed, got %s", rec.Body.String())
	}
}
