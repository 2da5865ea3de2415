// Package telemetry gathers the signal bundles attached to a contact
// submission: public IP, device geolocation, IP-derived geo metadata,
// and device details. Each provider has its own failure mode; none of
// them may abort the user-visible form submission.
package telemetry

import (
	"context"
	"errors"
	"time"
)

// IPLookup resolves the visitor's public IP address.
type IPLookup interface {
	PublicIP(ctx context.Context) (string, error)
}

// IPGeo is the normalized geo metadata derived from an IP address.
type IPGeo struct {
	City     string `json:"city"`
	Region   string `json:"region"`
	Country  string `json:"country"`
	Postal   string `json:"postal"`
	Timezone string `json:"timezone"`
}

// IPGeoResolver resolves geo metadata for a known IP address.
type IPGeoResolver interface {
	Resolve(ctx context.Context, ip string) (IPGeo, error)
}

// Position is a device geolocation fix.
type Position struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
}

// Options is the fixed acquisition policy for device geolocation.
type Options struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaximumAge   time.Duration
}

// DefaultOptions favors accuracy, allows 5 seconds, and refuses cached fixes.
func DefaultOptions() Options {
	return Options{HighAccuracy: true, Timeout: 5 * time.Second, MaximumAge: 0}
}

// ErrPositionUnavailable is returned when the visitor refused
// geolocation or no fix arrived within the acquisition timeout.
var ErrPositionUnavailable = errors.New("telemetry: position unavailable")

// Geolocator produces the device's current position under the given
// acquisition policy.
type Geolocator interface {
	CurrentPosition(ctx context.Context, opts Options) (Position, error)
}

// StaticPosition is a Geolocator carrying a fix the device already
// obtained (the browser gathers it under the visitor's permission and
// sends it with the form).
type StaticPosition Position

func (p StaticPosition) CurrentPosition(ctx context.Context, opts Options) (Position, error) {
	return Position(p), nil
}

// NoPosition is a Geolocator for requests where the visitor refused or
// the device produced no fix.
type NoPosition struct{}

func (NoPosition) CurrentPosition(ctx context.Context, opts Options) (Position, error) {
	return Position{}, ErrPositionUnavailable
}
