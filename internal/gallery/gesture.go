package gallery

import "math"

// DefaultSwipeThreshold is the minimum swipe distance in distance units.
const DefaultSwipeThreshold = 50

// GestureConfig maps swipe deltas onto intents.
type GestureConfig struct {
	Threshold float64
}

// DefaultGesture returns the reference swipe configuration.
func DefaultGesture() GestureConfig {
	return GestureConfig{Threshold: DefaultSwipeThreshold}
}

// Classify maps a swipe from start to end (dx = endX-startX, dy = endY-startY)
// onto an intent. A horizontal swipe toward the start of the sequence (dx > 0)
// is Previous, toward the end is Next. A downward swipe with little horizontal
// travel is Close. Anything else yields no intent.
func (g GestureConfig) Classify(dx, dy float64) (Intent, bool) {
	threshold := g.Threshold
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	absX, absY := math.Abs(dx), math.Abs(dy)

	if absX > absY && absX >= threshold {
		if dx > 0 {
			return Previous{}, true
		}
		return Next{}, true
	}
	if dy >= threshold && absX < threshold {
		return Close{}, true
	}
	return nil, false
}
