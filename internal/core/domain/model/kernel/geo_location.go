package kernel

import (
	"errors"
	"fmt"
	"math"

	"foodshare/internal/pkg/errs"
	"foodshare/internal/pkg/guard"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	earthRadiusKm = 6371.0
)

var ErrGeoLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewGeoLocation")

// GeoLocation is a WGS84 coordinate with an optional human-readable address.
// It is immutable; the zero value fails Validate.
type GeoLocation struct {
	latitude  float64
	longitude float64
	address   string
	guard     guard.ConstructorGuard
}

// NewGeoLocation validates latitude in [-90, 90] and longitude in [-180, 180].
func NewGeoLocation(latitude, longitude float64, address string) (GeoLocation, error) {
	loc := GeoLocation{address: address, guard: guard.NewConstructorGuard()}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return GeoLocation{}, err
	}
	return loc, nil
}

func (l GeoLocation) Validate() error {
	return l.guard.Validate(ErrGeoLocationIsNotConstructed)
}

func (l GeoLocation) Latitude() float64 {
	return l.latitude
}

func (l GeoLocation) Longitude() float64 {
	return l.longitude
}

func (l GeoLocation) Address() string {
	return l.address
}

func (l GeoLocation) String() string {
	return fmt.Sprintf("GeoLocation(%.6f,%.6f)", l.latitude, l.longitude)
}

// DistanceKm returns the great-circle (haversine) distance between two points.
func (l GeoLocation) DistanceKm(other GeoLocation) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := toRadians(l.latitude)
	lat2 := toRadians(other.latitude)
	dLat := lat2 - lat1
	dLon := toRadians(other.longitude - l.longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a))), nil
}

func (l *GeoLocation) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < MinLatitude || latitude > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}
	l.latitude = latitude
	return nil
}

func (l *GeoLocation) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < MinLongitude || longitude > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}
	l.longitude = longitude
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
