package model

import (
	"fmt"
	"strings"
	"time"
)

// ContactSubmission is one visitor-submitted contact record. It is
// immutable once written; the only later mutation is permanent removal
// by the admin bulk delete.
type ContactSubmission struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Message     string       `json:"message"`
	SubmittedAt time.Time    `json:"submitted_at"`
	VisitorData *VisitorData `json:"visitor_data,omitempty"`
}

// VisitorData is the telemetry captured alongside a submission.
// A submission with no VisitorData at all is valid; every downstream
// view must degrade to blank display rather than fail.
type VisitorData struct {
	// IP is the visitor's public IP. Empty string means the lookup failed.
	IP            string        `json:"ip,omitempty"`
	Location      Location      `json:"location"`
	DeviceDetails DeviceDetails `json:"device_details"`
	// Timestamp is the enrichment capture time, distinct from SubmittedAt.
	Timestamp time.Time `json:"timestamp"`
}

// Location combines device coordinates with IP-derived geo metadata.
// Coordinates are nil when the visitor refused or the fix timed out.
// String fields default to "Unknown" when the geo provider omits them.
type Location struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Accuracy  *float64 `json:"accuracy"`
	City      string   `json:"city"`
	Region    string   `json:"region"`
	Country   string   `json:"country"`
	Postal    string   `json:"postal"`
	Timezone  string   `json:"timezone"`
}

// DeviceDetails is read from the visitor's environment at submit time.
type DeviceDetails struct {
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

// GeoUnknown is the placeholder for geo string fields the provider omitted.
const GeoUnknown = "Unknown"

// Display returns the human-readable place string: city/region/country
// with missing parts filtered out, joined by ", ". Returns "N/A" when
// all three are missing.
func (l Location) Display() string {
	var parts []string
	for _, p := range []string{l.City, l.Region, l.Country} {
		if p != "" && p != GeoUnknown {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "N/A"
	}
	return strings.Join(parts, ", ")
}

// MapLink returns a Google Maps URL for the coordinates, or "" when
// either coordinate is absent. Display convenience only.
func (l Location) MapLink() string {
	if l.Latitude == nil || l.Longitude == nil {
		return ""
	}
	return fmt.Sprintf("https://www.google.com/maps?q=%v, %v", *l.Latitude, *l.Longitude)
}

// NormalizeSubmittedAt is the lenient-read rule: a missing or invalid
// submission time is replaced with now at read time.
func NormalizeSubmittedAt(t time.Time, now time.Time) time.Time {
	if t.IsZero() {
		return now
	}
	return t
}
