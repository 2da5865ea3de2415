package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/purnalakshitha99/location-app/internal/model"
)

// Collector merges the independent signal bundles into one VisitorData.
//
// Failure policy:
//   - IP lookup failure: proceed with IP absent, IP-geo skipped.
//   - Device geolocation failure: proceed with nil coordinates.
//   - IP-geo failure (when attempted): the whole enrichment is
//     discarded and the submission carries no telemetry at all.
type Collector struct {
	ip  IPLookup
	geo IPGeoResolver
	now func() time.Time
}

// NewCollector creates a Collector over the given providers.
func NewCollector(ip IPLookup, geo IPGeoResolver) *Collector {
	return &Collector{ip: ip, geo: geo, now: time.Now}
}

// Collect gathers all bundles for one submission. IP lookup and device
// geolocation have no ordering dependency and run concurrently; IP-geo
// runs after the IP lookup it depends on. Returns nil when the
// enrichment failed as a whole; the submission itself is still
// submittable.
func (c *Collector) Collect(ctx context.Context, loc Geolocator, device model.DeviceDetails) *model.VisitorData {
	opts := DefaultOptions()

	var (
		wg     sync.WaitGroup
		ip     string
		ipErr  error
		pos    Position
		posErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		ip, ipErr = c.ip.PublicIP(ctx)
	}()
	go func() {
		defer wg.Done()
		posCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
		pos, posErr = loc.CurrentPosition(posCtx, opts)
	}()
	wg.Wait()

	location := model.Location{
		City:     model.GeoUnknown,
		Region:   model.GeoUnknown,
		Country:  model.GeoUnknown,
		Postal:   model.GeoUnknown,
		Timezone: model.GeoUnknown,
	}

	if posErr != nil {
		// Refusal or timeout never aborts the submission.
		slog.Info("device geolocation unavailable", "error", posErr)
	} else {
		lat, lng, acc := pos.Latitude, pos.Longitude, pos.Accuracy
		location.Latitude = &lat
		location.Longitude = &lng
		location.Accuracy = &acc
	}

	if ipErr != nil {
		slog.Warn("ip lookup failed, continuing without ip", "error", ipErr)
	} else {
		geo, geoErr := c.geo.Resolve(ctx, ip)
		if geoErr != nil {
			// Unlike device geolocation, an IP-geo failure discards the
			// whole enrichment rather than partially filling it.
			slog.Warn("ip-geo lookup failed, dropping enrichment", "ip", ip, "error", geoErr)
			return nil
		}
		setIfPresent(&location.City, geo.City)
		setIfPresent(&location.Region, geo.Region)
		setIfPresent(&location.Country, geo.Country)
		setIfPresent(&location.Postal, geo.Postal)
		setIfPresent(&location.Timezone, geo.Timezone)
	}

	return &model.VisitorData{
		IP:            ip,
		Location:      location,
		DeviceDetails: device,
		Timestamp:     c.now(),
	}
}

func setIfPresent(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
