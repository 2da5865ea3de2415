// Package geoip resolves IP geo metadata from a local MaxMind city
// database. It serves as the offline alternative to the hosted IP-geo
// provider when no access token is configured.
package geoip

import (
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// Geo is the subset of city-database fields this service uses.
type Geo struct {
	City     string
	Region   string
	Country  string
	Postal   string
	Timezone string
}

// Resolver wraps an open MaxMind city database.
type Resolver struct {
	reader *geoip2.Reader
}

// Open opens the .mmdb city database at path.
func Open(path string) (*Resolver, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoip: open city database: %w", err)
	}
	return &Resolver{reader: reader}, nil
}

// Close releases the database handle.
func (r *Resolver) Close() error {
	return r.reader.Close()
}

// Lookup resolves geo metadata for ip from the local database.
func (r *Resolver) Lookup(ipAddress string) (Geo, error) {
	ip := net.ParseIP(ipAddress)
	if ip == nil {
		return Geo{}, fmt.Errorf("geoip: invalid ip address: %s", ipAddress)
	}

	record, err := r.reader.City(ip)
	if err != nil {
		return Geo{}, err
	}

	geo := Geo{
		City:     record.City.Names["en"],
		Country:  record.Country.IsoCode,
		Postal:   record.Postal.Code,
		Timezone: record.Location.TimeZone,
	}
	if len(record.Subdivisions) > 0 {
		geo.Region = record.Subdivisions[0].Names["en"]
	}
	return geo, nil
}
