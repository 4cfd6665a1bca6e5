// ABOUTME: Simulated Bluetooth signal strength derived from distance
// ABOUTME: Log-distance path loss model with seeded Gaussian noise

package rssi

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	// DefaultMeasuredPower is the signal strength in dBm at one meter,
	// typical for a BLE beacon.
	DefaultMeasuredPower = -59.0

	// DefaultPathLossExponent models indoor propagation with obstacles.
	// Free space is 2.0; cluttered indoor environments run 2.5-4.0.
	DefaultPathLossExponent = 2.5

	// DefaultNoiseSigma is the standard deviation of the reading noise in dBm.
	DefaultNoiseSigma = 2.0
)

// Simulator produces fake RSSI readings for a given distance using the
// log-distance path loss model. The same seed always produces the same
// noise sequence. Readings are display flavor only; proximity math never
// consumes them.
type Simulator struct {
	MeasuredPower    float64
	PathLossExponent float64
	NoiseSigma       float64
	rng              *rand.Rand
}

// NewSimulator creates a simulator with typical BLE beacon characteristics.
func NewSimulator(seed int64) *Simulator {
	return &Simulator{
		MeasuredPower:    DefaultMeasuredPower,
		PathLossExponent: DefaultPathLossExponent,
		NoiseSigma:       DefaultNoiseSigma,
		rng:              rand.New(rand.NewSource(seed)),
	}
}

// DBm returns a simulated signal strength reading for a transmitter at the
// given distance in meters. Distance must be positive and finite.
func (s *Simulator) DBm(meters float64) (float64, error) {
	if math.IsNaN(meters) || math.IsInf(meters, 0) {
		return 0, fmt.Errorf("distance must be finite, got %v", meters)
	}
	if meters <= 0 {
		return 0, fmt.Errorf("distance must be positive, got %v", meters)
	}

	dbm := s.MeasuredPower - 10*s.PathLossExponent*math.Log10(meters)
	if s.NoiseSigma > 0 {
		dbm += s.rng.NormFloat64() * s.NoiseSigma
	}
	return dbm, nil
}

// Distance inverts the path loss model without noise: the distance in meters
// at which a noiseless reading would equal dbm.
func (s *Simulator) Distance(dbm float64) float64 {
	return math.Pow(10, (s.MeasuredPower-dbm)/(10*s.PathLossExponent))
}

// DBmToMilliwatts converts a dBm level to absolute power in milliwatts.
func DBmToMilliwatts(dbm float64) float64 {
	return math.Pow(10, dbm/10)
}

// MilliwattsToDBm converts absolute power in milliwatts to a dBm level.
// mw must be positive; zero or negative power has no dBm representation.
func MilliwattsToDBm(mw float64) float64 {
	return 10 * math.Log10(mw)
}
