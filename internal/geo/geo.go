// Package geo provides the coordinate types and great-circle math behind
// geofenced attendance checks.
package geo

import (
	"math"

	dErrors "vokasia/pkg/domain-errors"
)

// EarthRadiusM is the mean Earth radius used by the Haversine formula.
const EarthRadiusM = 6371000.0

// Point is a WGS-84 coordinate in decimal degrees. Immutable once captured.
type Point struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Validate rejects non-finite or out-of-range coordinates. Verification must
// fail fast on malformed input rather than silently producing a distance.
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || p.Lat < -90 || p.Lat > 90 {
		return dErrors.New(dErrors.CodeBadRequest, "latitude must be a finite value in [-90, 90]")
	}
	if math.IsNaN(p.Lon) || math.IsInf(p.Lon, 0) || p.Lon < -180 || p.Lon > 180 {
		return dErrors.New(dErrors.CodeBadRequest, "longitude must be a finite value in [-180, 180]")
	}
	return nil
}

// Distance returns the great-circle distance between two points in meters
// (Haversine). Terrestrial workshop venues never approach the antipodal or
// polar degenerate cases, so no special handling is applied.
func Distance(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusM * c
}

// Fence is a circular geofence: center plus radius in meters.
type Fence struct {
	Center  Point   `json:"center"`
	RadiusM float64 `json:"radius_m"`
}

// Validate checks the fence geometry.
func (f Fence) Validate() error {
	if err := f.Center.Validate(); err != nil {
		return err
	}
	if math.IsNaN(f.RadiusM) || f.RadiusM <= 0 {
		return dErrors.New(dErrors.CodeBadRequest, "geofence radius must be positive")
	}
	return nil
}

// Check returns the distance from p to the fence center and whether p falls
// inside. A point exactly on the boundary counts as inside.
func (f Fence) Check(p Point) (distanceM float64, inside bool) {
	distanceM = Distance(f.Center, p)
	return distanceM, distanceM <= f.RadiusM
}

// Contains reports whether p falls inside the fence.
func (f Fence) Contains(p Point) bool {
	_, inside := f.Check(p)
	return inside
}
