package geo

import (
	"github.com/golang/geo/s2"
	"github.com/shopspring/decimal"

	"foodcart/foodcart-svc/internal/domain"
)

// EarthRadiusKm is the IUGG mean Earth radius.
const EarthRadiusKm = 6371.0088

// DistanceKm returns the great-circle distance between a and b in kilometers,
// rounded half-up to two decimal places.
func DistanceKm(a, b domain.Coordinates) float64 {
	from := s2.LatLngFromDegrees(a.Lat, a.Lon)
	to := s2.LatLngFromDegrees(b.Lat, b.Lon)
	km := from.Distance(to).Radians() * EarthRadiusKm

	rounded, _ := decimal.NewFromFloat(km).Round(2).Float64()
	return rounded
}
