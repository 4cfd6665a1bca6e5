// ABOUTME: Proximity band enum and distance classification
// ABOUTME: Bands partition [0, inf) meters with inclusive-low exclusive-high thresholds

package geo

import (
	"fmt"
	"math"
)

// Band is how close an observer is to a target, ordered from closest
// to farthest. Every non-negative distance maps to exactly one band.
type Band int

const (
	// AtTarget covers [0m, 1m): the item should be within reach.
	AtTarget Band = iota
	// VeryClose covers [1m, 5m).
	VeryClose
	// Nearby covers [5m, 20m).
	Nearby
	// Moderate covers [20m, 100m).
	Moderate
	// Far covers [100m, inf).
	Far
)

// Band thresholds in meters. Each band owns its lower bound and
// excludes its upper bound, so exact values like 1.0 land in the
// closer-to-far side.
const (
	atTargetMax  = 1.0
	veryCloseMax = 5.0
	nearbyMax    = 20.0
	moderateMax  = 100.0
)

// Classify maps a distance in meters to its proximity band.
// Rules:
//   - AtTarget: distance < 1m
//   - VeryClose: 1m <= distance < 5m
//   - Nearby: 5m <= distance < 20m
//   - Moderate: 20m <= distance < 100m
//   - Far: distance >= 100m
func Classify(meters float64) (Band, error) {
	if math.IsNaN(meters) || math.IsInf(meters, 0) {
		return 0, fmt.Errorf("%w: distance must be finite, got %v", ErrInvalidDistance, meters)
	}
	if meters < 0 {
		return 0, fmt.Errorf("%w: distance cannot be negative, got %v", ErrInvalidDistance, meters)
	}

	switch {
	case meters < atTargetMax:
		return AtTarget, nil
	case meters < veryCloseMax:
		return VeryClose, nil
	case meters < nearbyMax:
		return Nearby, nil
	case meters < moderateMax:
		return Moderate, nil
	default:
		return Far, nil
	}
}

var bandNames = map[Band]string{
	AtTarget:  "at_target",
	VeryClose: "very_close",
	Nearby:    "nearby",
	Moderate:  "moderate",
	Far:       "far",
}

// String returns the band's canonical name, e.g. "very_close".
func (b Band) String() string {
	if name, ok := bandNames[b]; ok {
		return name
	}
	return fmt.Sprintf("band(%d)", int(b))
}

// MarshalText encodes the band as its canonical name, so JSON and YAML
// carry "nearby" instead of 2.
func (b Band) MarshalText() ([]byte, error) {
	name, ok := bandNames[b]
	if !ok {
		return nil, fmt.Errorf("unknown band %d", int(b))
	}
	return []byte(name), nil
}

// UnmarshalText parses a canonical band name.
func (b *Band) UnmarshalText(text []byte) error {
	for band, name := range bandNames {
		if name == string(text) {
			*b = band
			return nil
		}
	}
	return fmt.Errorf("unknown band %q", string(text))
}
