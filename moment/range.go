package moment

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-cube/units"
)

var (
	ErrNoRange       = errors.New("moment: no channel or velocity range")
	ErrVelocityRange = errors.New("moment: velocity range needs two values")
)

// Range selects a spectral sub-range by channel or by radio velocity.
// A velocity range takes precedence when both are set.
type Range struct {
	lo, hi   float64
	hasChan  bool
	velocity units.Quantity
	hasVel   bool
}

// Channels selects channels lo (inclusive) to hi (exclusive). Fractional
// bounds are widened to whole channels.
func Channels(lo, hi float64) Range {
	return Range{lo: lo, hi: hi, hasChan: true}
}

// Velocities selects the channels between two radio velocities, both ends
// included.
func Velocities(q units.Quantity) Range {
	return Range{velocity: q, hasVel: true}
}

// WithChannels returns r with a channel range added.
func (r Range) WithChannels(lo, hi float64) Range {
	r.lo, r.hi, r.hasChan = lo, hi, true
	return r
}

// IsZero reports whether neither range is set.
func (r Range) IsZero() bool { return !r.hasChan && !r.hasVel }

func (r Range) String() string {
	switch {
	case r.hasVel:
		return fmt.Sprintf("velocities %v", r.velocity)
	case r.hasChan:
		return fmt.Sprintf("channels [%g, %g)", r.lo, r.hi)
	default:
		return "no range"
	}
}

// bounds resolves r to a half-open channel slice clamped to [0, n].
func (r Range) bounds(src Source, n int) (int, int, error) {
	lo, hi := r.lo, r.hi
	switch {
	case r.hasVel:
		if r.velocity.Len() != 2 {
			return 0, 0, fmt.Errorf("%w: got %d", ErrVelocityRange, r.velocity.Len())
		}
		chans, at, err := src.RadioVelocitiesToChannels(r.velocity)
		if err != nil {
			return 0, 0, fmt.Errorf("moment: velocity range: %w", err)
		}
		above, err := beyondAxis(r.velocity, at)
		if err != nil {
			return 0, 0, fmt.Errorf("moment: velocity range: %w", err)
		}
		if above {
			return 0, 0, nil
		}
		a, b := chans[0], chans[1]
		if a > b {
			a, b = b, a
		}
		lo, hi = float64(a), float64(b+1)
	case r.hasChan:
	default:
		return 0, 0, ErrNoRange
	}

	return clamp(int(math.Floor(lo)), n), clamp(int(math.Ceil(hi)), n), nil
}

// beyondAxis reports whether both query velocities lie above the fastest
// channel. The lookup only returns a channel slower than the query when it
// clamps at the end of the axis.
func beyondAxis(query, at units.Quantity) (bool, error) {
	values := query.Values
	if !query.Unit.IsDimensionless() {
		conv, err := query.To(at.Unit)
		if err != nil {
			return false, err
		}
		values = conv.Values
	}
	return values[0] > at.Values[0] && values[1] > at.Values[1], nil
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
