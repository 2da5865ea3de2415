package model

import (
	"testing"
	"time"
)

func f64(v float64) *float64 { return &v }

// ---------------------------------------------------------------------------
// Location.Display tests
// ---------------------------------------------------------------------------

func TestLocation_Display_AllPresent(t *testing.T) {
	l := Location{City: "Colombo", Region: "Western", Country: "LK"}
	if got := l.Display(); got != "Colombo, Western, LK" {
		t.Errorf("expected full join, got %q", got)
	}
}

func TestLocation_Display_OnlyCity(t *testing.T) {
	l := Location{City: "Colombo", Region: GeoUnknown, Country: ""}
	if got := l.Display(); got != "Colombo" {
		t.Errorf("expected city only with no stray separators, got %q", got)
	}
}

func TestLocation_Display_AllMissing(t *testing.T) {
	l := Location{City: GeoUnknown, Region: GeoUnknown, Country: GeoUnknown}
	if got := l.Display(); got != "N/A" {
		t.Errorf("expected N/A, got %q", got)
	}
	if got := (Location{}).Display(); got != "N/A" {
		t.Errorf("expected N/A for zero value, got %q", got)
	}
}

// ---------------------------------------------------------------------------
// Location.MapLink tests
// ---------------------------------------------------------------------------

func TestLocation_MapLink_BothCoordinates(t *testing.T) {
	l := Location{Latitude: f64(6.9271), Longitude: f64(79.8612)}
	want := "https://www.google.com/maps?q=6.9271, 79.8612"
	if got := l.MapLink(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLocation_MapLink_MissingCoordinate(t *testing.T) {
	if got := (Location{Latitude: f64(6.9)}).MapLink(); got != "" {
		t.Errorf("expected no link without longitude, got %q", got)
	}
	if got := (Location{Longitude: f64(79.8)}).MapLink(); got != "" {
		t.Errorf("expected no link without latitude, got %q", got)
	}
	if got := (Location{}).MapLink(); got != "" {
		t.Errorf("expected no link for absent location, got %q", got)
	}
}

// ---------------------------------------------------------------------------
// NormalizeSubmittedAt tests
// ---------------------------------------------------------------------------

func TestNormalizeSubmittedAt_ZeroFallsBackToNow(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	if got := NormalizeSubmittedAt(time.Time{}, now); !got.Equal(now) {
		t.Errorf("expected fallback to now, got %v", got)
	}
}

func TestNormalizeSubmittedAt_ValidUnchanged(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	ts := now.Add(-time.Hour)
	if got := NormalizeSubmittedAt(ts, now); !got.Equal(ts) {
		t.Errorf("expected valid timestamp unchanged, got %v", got)
	}
}
