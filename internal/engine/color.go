package engine

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// sessionColors picks the two player colors for a session: a random base
// hue and its complement, at fixed saturation and value so both stay
// readable on a dark background. Regenerated each session, never stored.
func sessionColors() [2]string {
	base := rand.Float64() * 360
	first := colorful.Hsv(base, 0.55, 0.95)
	second := colorful.Hsv(math.Mod(base+180, 360), 0.55, 0.95)
	return [2]string{first.Hex(), second.Hex()}
}
