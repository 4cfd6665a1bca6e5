// ABOUTME: Pure spherical-geometry engine for proximity readings
// ABOUTME: Computes distance, initial bearing, and proximity band between two points

package geo

import (
	"fmt"
	"math"
)

// EarthRadiusMeters is the mean Earth radius used by the package-level
// functions.
const EarthRadiusMeters = 6371000.0

// Point is a location on the sphere in decimal degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that the point's coordinates are finite and within
// WGS-84 ranges. All engine operations validate their inputs with it.
func (p Point) Validate() error {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) {
		return fmt.Errorf("%w: coordinates cannot be NaN", ErrInvalidCoordinate)
	}
	if math.IsInf(p.Latitude, 0) || math.IsInf(p.Longitude, 0) {
		return fmt.Errorf("%w: coordinates cannot be infinite", ErrInvalidCoordinate)
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90, got %v", ErrInvalidCoordinate, p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180, got %v", ErrInvalidCoordinate, p.Longitude)
	}
	return nil
}

// Reading is one proximity evaluation of an observer against a target.
// Readings are computed fresh per query and never cached.
type Reading struct {
	DistanceMeters float64 `json:"distance_meters"`
	BearingDegrees float64 `json:"bearing_degrees"`
	Band           Band    `json:"band"`
}

// Engine computes readings on a sphere. It is stateless and safe for
// concurrent use. The zero value uses the mean Earth radius; set Radius
// to compute on a different sphere.
type Engine struct {
	// Radius is the sphere radius in meters. Zero means EarthRadiusMeters.
	Radius float64
}

func (e Engine) radius() float64 {
	if e.Radius > 0 {
		return e.Radius
	}
	return EarthRadiusMeters
}

// Distance returns the great-circle distance between two points in
// meters, computed with the haversine formula. It is symmetric, zero
// for identical points, and never exceeds half the sphere circumference.
func (e Engine) Distance(a, b Point) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}
	return e.distance(a, b), nil
}

func (e Engine) distance(a, b Point) float64 {
	dLat := toRad(b.Latitude - a.Latitude)
	dLng := toRad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Latitude))*math.Cos(toRad(b.Latitude))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	if h > 1 {
		h = 1 // float drift near antipodal points
	}

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return e.radius() * c
}

// Bearing returns the initial compass bearing in degrees from one point
// toward another: 0 is geographic north, increasing clockwise, always in
// [0, 360). The bearing is meaningless when the points coincide; it
// returns 0 and callers should key off the distance instead.
func (e Engine) Bearing(from, to Point) (float64, error) {
	if err := from.Validate(); err != nil {
		return 0, err
	}
	if err := to.Validate(); err != nil {
		return 0, err
	}
	return bearing(from, to), nil
}

func bearing(from, to Point) float64 {
	lat1 := toRad(from.Latitude)
	lat2 := toRad(to.Latitude)
	dLng := toRad(to.Longitude - from.Longitude)

	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)

	deg := toDeg(math.Atan2(y, x))
	return math.Mod(deg+360, 360)
}

// Evaluate computes the full reading for an observer looking for a
// target: distance, initial bearing, and proximity band. This is the
// call a tracking loop makes on every tick.
func (e Engine) Evaluate(observer, target Point) (Reading, error) {
	if err := observer.Validate(); err != nil {
		return Reading{}, fmt.Errorf("observer: %w", err)
	}
	if err := target.Validate(); err != nil {
		return Reading{}, fmt.Errorf("target: %w", err)
	}

	meters := e.distance(observer, target)
	band, err := Classify(meters)
	if err != nil {
		return Reading{}, err
	}

	return Reading{
		DistanceMeters: meters,
		BearingDegrees: bearing(observer, target),
		Band:           band,
	}, nil
}

// Distance is Engine.Distance on an Earth-radius sphere.
func Distance(a, b Point) (float64, error) {
	return Engine{}.Distance(a, b)
}

// Bearing is Engine.Bearing on an Earth-radius sphere.
func Bearing(from, to Point) (float64, error) {
	return Engine{}.Bearing(from, to)
}

// Evaluate is Engine.Evaluate on an Earth-radius sphere.
func Evaluate(observer, target Point) (Reading, error) {
	return Engine{}.Evaluate(observer, target)
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
