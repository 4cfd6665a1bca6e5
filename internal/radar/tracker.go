// ABOUTME: Tracking loop that periodically evaluates observer-to-item proximity
// ABOUTME: Composes a location provider, the geo engine, and a readout sink

package radar

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/maxboss2005/item-radar/internal/geo"
	"github.com/maxboss2005/item-radar/internal/locate"
)

// DefaultInterval is the readout cadence when none is configured.
const DefaultInterval = time.Second

// Tracker repeatedly pulls an observer fix from a Provider, evaluates it
// against the target, and hands the reading to OnReading. Readings are
// produced one at a time by the loop goroutine.
type Tracker struct {
	Provider locate.Provider
	Target   geo.Point

	// Engine computes the readings. The zero value uses the standard
	// Earth radius.
	Engine geo.Engine

	// Interval between readouts. Zero or negative selects DefaultInterval.
	Interval time.Duration

	// StopAtTarget ends the loop once a reading lands in the AtTarget band.
	StopAtTarget bool

	// OnReading receives each successful reading along with the fix that
	// produced it.
	OnReading func(fix geo.Point, reading geo.Reading)
}

// Run drives the loop until the context is cancelled, the provider is
// exhausted, or (with StopAtTarget) the observer reaches the target. The
// first reading happens immediately rather than one interval in.
func (t *Tracker) Run(ctx context.Context) error {
	if t.Provider == nil {
		return errors.New("no location provider")
	}
	if t.OnReading == nil {
		return errors.New("no reading sink")
	}
	if err := t.Target.Validate(); err != nil {
		return fmt.Errorf("target: %w", err)
	}

	interval := t.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if done, err := t.tick(ctx); done {
		return err
	}

	for {
		select {
		case <-ticker.C:
			if done, err := t.tick(ctx); done {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// tick takes one fix and produces one reading. A bad fix is logged and
// skipped; only exhaustion, cancellation, or reaching the target end the loop.
func (t *Tracker) tick(ctx context.Context) (done bool, err error) {
	fix, err := t.Provider.Next(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return true, ctxErr
		}
		if errors.Is(err, locate.ErrExhausted) {
			return true, nil
		}
		log.WithFields(log.Fields{"error": err}).Warn("location provider failed, skipping fix")
		return false, nil
	}

	reading, err := t.Engine.Evaluate(fix, t.Target)
	if err != nil {
		log.WithFields(log.Fields{
			"latitude":  fix.Latitude,
			"longitude": fix.Longitude,
			"error":     err,
		}).Warn("skipping invalid fix")
		return false, nil
	}

	t.OnReading(fix, reading)

	if t.StopAtTarget && reading.Band == geo.AtTarget {
		return true, nil
	}
	return false, nil
}
