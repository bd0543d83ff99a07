package flow

// DefaultSwipeThreshold is the horizontal drag distance, in pointer units,
// a swipe must exceed.
const DefaultSwipeThreshold = 50

// Gesture is a navigation intent read from a pointer drag.
type Gesture int

const (
	GestureNone Gesture = iota
	GestureNext         // drag left
	GesturePrev         // drag right
)

// Swipe classifies a horizontal drag from startX to endX. Movements that do
// not exceed threshold are ignored.
func Swipe(startX, endX, threshold int) Gesture {
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	dx := endX - startX
	switch {
	case dx < -threshold:
		return GestureNext
	case dx > threshold:
		return GesturePrev
	}
	return GestureNone
}
