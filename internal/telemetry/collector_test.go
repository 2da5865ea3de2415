package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/purnalakshitha99/location-app/internal/model"
)

// ---------------------------------------------------------------------------
// Provider mocks
// ---------------------------------------------------------------------------

type mockIPLookup struct {
	publicIPFunc func(ctx context.Context) (string, error)
}

func (m *mockIPLookup) PublicIP(ctx context.Context) (string, error) {
	return m.publicIPFunc(ctx)
}

type mockIPGeoResolver struct {
	resolveFunc func(ctx context.Context, ip string) (IPGeo, error)
	calls       int
}

func (m *mockIPGeoResolver) Resolve(ctx context.Context, ip string) (IPGeo, error) {
	m.calls++
	return m.resolveFunc(ctx, ip)
}

func okIP(ip string) *mockIPLookup {
	return &mockIPLookup{publicIPFunc: func(context.Context) (string, error) { return ip, nil }}
}

func failIP() *mockIPLookup {
	return &mockIPLookup{publicIPFunc: func(context.Context) (string, error) {
		return "", errors.New("ip provider down")
	}}
}

var testDevice = model.DeviceDetails{
	UserAgent: "Mozilla/5.0 (X11; Linux x86_64)",
	Platform:  "Linux",
	Language:  "en-US",
	Online:    true,
}

// ---------------------------------------------------------------------------
// Collect tests
// ---------------------------------------------------------------------------

func TestCollector_Collect_AllBundlesSucceed(t *testing.T) {
	geo := &mockIPGeoResolver{resolveFunc: func(_ context.Context, ip string) (IPGeo, error) {
		if ip != "203.0.113.9" {
			t.Errorf("ip-geo keyed on wrong ip: %q", ip)
		}
		return IPGeo{City: "Colombo", Region: "Western", Country: "LK"}, nil
	}}
	c := NewCollector(okIP("203.0.113.9"), geo)

	vd := c.Collect(context.Background(), StaticPosition{Latitude: 6.9, Longitude: 79.8, Accuracy: 20}, testDevice)
	if vd == nil {
		t.Fatal("expected visitor data, got nil")
	}
	if vd.IP != "203.0.113.9" {
		t.Errorf("expected ip, got %q", vd.IP)
	}
	if vd.Location.Latitude == nil || *vd.Location.Latitude != 6.9 {
		t.Errorf("expected latitude 6.9, got %v", vd.Location.Latitude)
	}
	if vd.Location.City != "Colombo" || vd.Location.Region != "Western" {
		t.Errorf("unexpected geo fields: %+v", vd.Location)
	}
	// Fields the provider omitted default to Unknown.
	if vd.Location.Postal != model.GeoUnknown || vd.Location.Timezone != model.GeoUnknown {
		t.Errorf("expected Unknown defaults, got %+v", vd.Location)
	}
	if vd.DeviceDetails != testDevice {
		t.Errorf("device details not carried through: %+v", vd.DeviceDetails)
	}
	if vd.Timestamp.IsZero() {
		t.Error("expected enrichment timestamp to be stamped")
	}
}

func TestCollector_Collect_GeolocationRefusedDoesNotAbort(t *testing.T) {
	geo := &mockIPGeoResolver{resolveFunc: func(context.Context, string) (IPGeo, error) {
		return IPGeo{Country: "LK"}, nil
	}}
	c := NewCollector(okIP("203.0.113.9"), geo)

	vd := c.Collect(context.Background(), NoPosition{}, testDevice)
	if vd == nil {
		t.Fatal("expected visitor data despite refused geolocation")
	}
	if vd.Location.Latitude != nil || vd.Location.Longitude != nil || vd.Location.Accuracy != nil {
		t.Errorf("expected nil coordinates, got %+v", vd.Location)
	}
	if vd.Location.Country != "LK" {
		t.Errorf("expected ip-geo fields to survive, got %+v", vd.Location)
	}
}

func TestCollector_Collect_IPFailureSkipsIPGeo(t *testing.T) {
	geo := &mockIPGeoResolver{resolveFunc: func(context.Context, string) (IPGeo, error) {
		return IPGeo{}, errors.New("should not be called")
	}}
	c := NewCollector(failIP(), geo)

	vd := c.Collect(context.Background(), StaticPosition{Latitude: 1, Longitude: 2}, testDevice)
	if vd == nil {
		t.Fatal("expected visitor data with absent ip")
	}
	if vd.IP != "" {
		t.Errorf("expected absent ip, got %q", vd.IP)
	}
	if geo.calls != 0 {
		t.Errorf("expected ip-geo to be skipped, called %d times", geo.calls)
	}
	if vd.Location.City != model.GeoUnknown {
		t.Errorf("expected Unknown geo fields, got %+v", vd.Location)
	}
	if vd.Location.Latitude == nil {
		t.Error("expected device coordinates to survive ip failure")
	}
}

func TestCollector_Collect_IPGeoFailureDropsEnrichment(t *testing.T) {
	geo := &mockIPGeoResolver{resolveFunc: func(context.Context, string) (IPGeo, error) {
		return IPGeo{}, errors.New("provider 429")
	}}
	c := NewCollector(okIP("203.0.113.9"), geo)

	if vd := c.Collect(context.Background(), StaticPosition{Latitude: 1, Longitude: 2}, testDevice); vd != nil {
		t.Fatalf("expected nil visitor data on ip-geo failure, got %+v", vd)
	}
}

// ---------------------------------------------------------------------------
// CachedResolver tests
// ---------------------------------------------------------------------------

type stubCache struct {
	data    map[string]string
	getErr  error
	setErr  error
	setTTLs []time.Duration
}

func (s *stubCache) Get(ctx context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	if v, ok := s.data[key]; ok {
		return v, nil
	}
	return "", errCacheMiss
}

func (s *stubCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	s.setTTLs = append(s.setTTLs, ttl)
	return nil
}

func TestCachedResolver_MissFillsThenHits(t *testing.T) {
	inner := &mockIPGeoResolver{resolveFunc: func(context.Context, string) (IPGeo, error) {
		return IPGeo{City: "Colombo"}, nil
	}}
	cache := &stubCache{data: map[string]string{}}
	r := &CachedResolver{inner: inner, cache: cache, ttl: time.Hour}

	for i := 0; i < 2; i++ {
		geo, err := r.Resolve(context.Background(), "203.0.113.9")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if geo.City != "Colombo" {
			t.Errorf("unexpected geo: %+v", geo)
		}
	}
	if inner.calls != 1 {
		t.Errorf("expected exactly one provider lookup, got %d", inner.calls)
	}
	if len(cache.setTTLs) != 1 || cache.setTTLs[0] != time.Hour {
		t.Errorf("expected one cache write with 1h ttl, got %v", cache.setTTLs)
	}
}

func TestCachedResolver_CacheFailureFallsThrough(t *testing.T) {
	inner := &mockIPGeoResolver{resolveFunc: func(context.Context, string) (IPGeo, error) {
		return IPGeo{Country: "LK"}, nil
	}}
	cache := &stubCache{data: map[string]string{}, getErr: errors.New("redis down"), setErr: errors.New("redis down")}
	r := &CachedResolver{inner: inner, cache: cache, ttl: time.Hour}

	geo, err := r.Resolve(context.Background(), "203.0.113.9")
	if err != nil {
		t.Fatalf("cache failure must not fail the lookup: %v", err)
	}
	if geo.Country != "LK" {
		t.Errorf("unexpected geo: %+v", geo)
	}
}

func TestCachedResolver_ProviderErrorPropagates(t *testing.T) {
	inner := &mockIPGeoResolver{resolveFunc: func(context.Context, string) (IPGeo, error) {
		return IPGeo{}, errors.New("status 503")
	}}
	r := &CachedResolver{inner: inner, cache: &stubCache{data: map[string]string{}}, ttl: time.Hour}

	if _, err := r.Resolve(context.Background(), "203.0.113.9"); err == nil {
		t.Fatal("expected provider error to propagate")
	}
}
