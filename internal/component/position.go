package component

import "math"

// Position is an actor's location. Y is height and never used for range checks.
type Position struct {
	X, Y, Z float64
}

// Location implements action.Locator.
func (p *Position) Location() (x, z float64) { return p.X, p.Z }

// HorizontalDistance ignores height, matching the combat range rule.
func HorizontalDistance(ax, az, bx, bz float64) float64 {
	return math.Hypot(ax-bx, az-bz)
}
