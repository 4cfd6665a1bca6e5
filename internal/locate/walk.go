// ABOUTME: Simulated walking provider for demoing proximity readouts
// ABOUTME: Deterministic seeded movement from a start point toward a target

package locate

import (
	"context"
	"math"
	"math/rand"

	"github.com/maxboss2005/item-radar/internal/geo"
)

const (
	// DefaultStepMeters is the distance covered between consecutive fixes.
	DefaultStepMeters = 10.0

	// bearingJitterSigmaDeg is the standard deviation of the heading noise,
	// in degrees. Enough wander to look like a person, not a drone.
	bearingJitterSigmaDeg = 10.0
)

// Walk simulates an observer moving from a start point toward a target with
// a constant step length and seeded Gaussian heading noise. The same seed
// always produces the same sequence of fixes.
type Walk struct {
	current geo.Point
	target  geo.Point
	step    float64
	rng     *rand.Rand
	started bool
}

var _ Provider = (*Walk)(nil)

// NewWalk creates a walker at start heading toward target. stepMeters <= 0
// selects DefaultStepMeters.
func NewWalk(start, target geo.Point, stepMeters float64, seed int64) *Walk {
	if stepMeters <= 0 {
		stepMeters = DefaultStepMeters
	}
	return &Walk{
		current: start,
		target:  target,
		step:    stepMeters,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Next returns the start point on the first call and one step of movement on
// each call after that. The step never overshoots the target.
func (w *Walk) Next(ctx context.Context) (geo.Point, error) {
	if err := ctx.Err(); err != nil {
		return geo.Point{}, err
	}

	if !w.started {
		w.started = true
		return w.current, nil
	}

	remaining, err := geo.Distance(w.current, w.target)
	if err != nil {
		return geo.Point{}, err
	}
	if remaining == 0 {
		return w.current, nil
	}

	heading, err := geo.Bearing(w.current, w.target)
	if err != nil {
		return geo.Point{}, err
	}
	heading += w.rng.NormFloat64() * bearingJitterSigmaDeg

	step := w.step
	if step > remaining {
		step = remaining
	}

	w.current = move(w.current, heading, step)
	return w.current, nil
}

// move displaces a point by the given distance along a compass heading using
// a local flat-earth approximation. Fine for step lengths measured in meters.
func move(p geo.Point, headingDeg, meters float64) geo.Point {
	const metersPerDegree = geo.EarthRadiusMeters * math.Pi / 180

	headingRad := headingDeg * math.Pi / 180
	latRad := p.Latitude * math.Pi / 180

	dLat := meters * math.Cos(headingRad) / metersPerDegree

	dLng := 0.0
	if cosLat := math.Cos(latRad); math.Abs(cosLat) > 1e-12 {
		dLng = meters * math.Sin(headingRad) / (metersPerDegree * cosLat)
	}

	return geo.Point{
		Latitude:  clampLatitude(p.Latitude + dLat),
		Longitude: wrapLongitude(p.Longitude + dLng),
	}
}

func clampLatitude(lat float64) float64 {
	if lat > 90 {
		return 90
	}
	if lat < -90 {
		return -90
	}
	return lat
}

func wrapLongitude(lng float64) float64 {
	// Normalize into [-180, 180).
	lng = math.Mod(lng+180, 360)
	if lng < 0 {
		lng += 360
	}
	return lng - 180
}
