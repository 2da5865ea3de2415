package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/purnalakshitha99/location-app/internal/model"
	"github.com/purnalakshitha99/location-app/internal/repository"
	"github.com/purnalakshitha99/location-app/internal/service"
	"github.com/purnalakshitha99/location-app/internal/telemetry"
)

const maxMessageLength = 5000

// SubmissionHandler handles the public contact form endpoint.
type SubmissionHandler struct {
	submissionService service.SubmissionService
}

// NewSubmissionHandler creates a SubmissionHandler with the given service.
func NewSubmissionHandler(submissionService service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// positionPayload is the device geolocation fix the browser gathered
// under the visitor's permission. Absent when refused or timed out.
type positionPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}

// devicePayload mirrors model.DeviceDetails in the request body.
type devicePayload struct {
	UserAgent        string `json:"user_agent"`
	ScreenResolution string `json:"screen_resolution"`
	Language         string `json:"language"`
	Timezone         string `json:"timezone"`
	Platform         string `json:"platform"`
	Vendor           string `json:"vendor"`
	CookiesEnabled   bool   `json:"cookies_enabled"`
	DoNotTrack       bool   `json:"do_not_track"`
	Online           bool   `json:"online"`
}

// submitRequest is the expected JSON body for POST /api/submissions.
type submitRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	Telemetry struct {
		Position *positionPayload `json:"position"`
		Device   devicePayload    `json:"device"`
	} `json:"telemetry"`
}

// Submit handles POST /api/submissions.
// name, email, and message are required; message max 5000 chars.
// Telemetry is best-effort and never fails the request.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name_required")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "email_required")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message_required")
		return
	}
	if len([]rune(req.Message)) > maxMessageLength {
		writeError(w, http.StatusBadRequest, "message_too_long")
		return
	}

	form := service.SubmissionForm{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}

	sub, err := h.submissionService.Submit(r.Context(), form, geolocatorFrom(req), deviceFrom(req, r))
	if err != nil {
		// Terminal store failures get a distinct, actionable code
		// instead of the generic one.
		switch {
		case errors.Is(err, repository.ErrPermissionDenied):
			writeError(w, http.StatusServiceUnavailable, "store_permission_denied")
		case errors.Is(err, repository.ErrUnauthenticated):
			writeError(w, http.StatusServiceUnavailable, "store_unauthenticated")
		default:
			writeError(w, http.StatusInternalServerError, "submit_failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"ok": "true", "id": sub.ID})
}

// geolocatorFrom wraps the client-gathered fix, or the absent-position
// provider when the visitor refused.
func geolocatorFrom(req submitRequest) telemetry.Geolocator {
	if p := req.Telemetry.Position; p != nil {
		return telemetry.StaticPosition{Latitude: p.Latitude, Longitude: p.Longitude, Accuracy: p.Accuracy}
	}
	return telemetry.NoPosition{}
}

// deviceFrom merges the client-reported device details with what the
// request itself shows. Always succeeds.
func deviceFrom(req submitRequest, r *http.Request) model.DeviceDetails {
	d := model.DeviceDetails{
		UserAgent:        req.Telemetry.Device.UserAgent,
		ScreenResolution: req.Telemetry.Device.ScreenResolution,
		Language:         req.Telemetry.Device.Language,
		Timezone:         req.Telemetry.Device.Timezone,
		Platform:         req.Telemetry.Device.Platform,
		Vendor:           req.Telemetry.Device.Vendor,
		CookiesEnabled:   req.Telemetry.Device.CookiesEnabled,
		DoNotTrack:       req.Telemetry.Device.DoNotTrack,
		Online:           req.Telemetry.Device.Online,
	}
	if d.UserAgent == "" {
		d.UserAgent = r.UserAgent()
	}
	if d.Language == "" {
		if lang := r.Header.Get("Accept-Language"); lang != "" {
			d.Language = strings.TrimSpace(strings.SplitN(lang, ",", 2)[0])
		}
	}
	return d
}
