package telemetry

import (
	"context"

	"github.com/purnalakshitha99/location-app/pkg/geoip"
	"github.com/purnalakshitha99/location-app/pkg/ipinfo"
)

// IPInfoResolver adapts the hosted IP-geo provider client.
type IPInfoResolver struct {
	Client *ipinfo.Client
}

var _ IPGeoResolver = (*IPInfoResolver)(nil)

func (r *IPInfoResolver) Resolve(ctx context.Context, ip string) (IPGeo, error) {
	geo, err := r.Client.Lookup(ctx, ip)
	if err != nil {
		return IPGeo{}, err
	}
	return IPGeo{
		City:     geo.City,
		Region:   geo.Region,
		Country:  geo.Country,
		Postal:   geo.Postal,
		Timezone: geo.Timezone,
	}, nil
}

// GeoIPResolver adapts the offline MaxMind database, used when no
// provider token is configured.
type GeoIPResolver struct {
	Resolver *geoip.Resolver
}

var _ IPGeoResolver = (*GeoIPResolver)(nil)

func (r *GeoIPResolver) Resolve(ctx context.Context, ip string) (IPGeo, error) {
	geo, err := r.Resolver.Lookup(ip)
	if err != nil {
		return IPGeo{}, err
	}
	return IPGeo{
		City:     geo.City,
		Region:   geo.Region,
		Country:  geo.Country,
		Postal:   geo.Postal,
		Timezone: geo.Timezone,
	}, nil
}
