package pong

// Rect is an axis-aligned box anchored at its top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Collides reports whether the ball's bounding box overlaps r. All four
// comparisons are strict, so boxes that only touch along an edge do not collide.
func Collides(b Ball, r Rect) bool {
	top := b.Y - b.Radius
	bottom := b.Y + b.Radius
	left := b.X - b.Radius
	right := b.X + b.Radius

	return right > r.X && bottom > r.Y && left < r.X+r.W && top < r.Y+r.H
}
