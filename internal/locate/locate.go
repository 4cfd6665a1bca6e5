// ABOUTME: Location providers that feed observer fixes to the tracking loop
// ABOUTME: Defines the Provider interface and the fixed-point Static provider

package locate

import (
	"context"
	"errors"

	"github.com/maxboss2005/item-radar/internal/geo"
)

// ErrExhausted is returned by a Provider that has no more fixes to give.
// The tracking loop treats it as a clean end of input.
var ErrExhausted = errors.New("no more fixes")

// Provider yields successive observer fixes. Implementations do not need to
// guarantee valid coordinates; callers range-check every fix they consume.
type Provider interface {
	Next(ctx context.Context) (geo.Point, error)
}

// Static always reports the same point. It backs one-shot readouts and
// tracking from a stationary observer.
type Static struct {
	Point geo.Point
}

var _ Provider = (*Static)(nil)

func (s *Static) Next(ctx context.Context) (geo.Point, error) {
	if err := ctx.Err(); err != nil {
		return geo.Point{}, err
	}
	return s.Point, nil
}
