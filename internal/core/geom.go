// Package core provides fundamental types and utilities for the lightpath platform.
// It stays free of Bubble Tea so game logic remains pure and testable.
package core

import "cmp"

// Rect is an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Centered returns a w x h rectangle centered in r. w and h are clipped to r.
func (r Rect) Centered(w, h int) Rect {
	w, h = min(w, r.W), min(h, r.H)
	return NewRect(r.X+(r.W-w)/2, r.Y+(r.H-h)/2, w, h)
}

// Cell maps (x, y) to the cell of a cellW x cellH tiling laid over r.
func (r Rect) Cell(x, y, cellW, cellH int) (col, row int, ok bool) {
	if cellW <= 0 || cellH <= 0 || !r.Contains(x, y) {
		return 0, 0, false
	}
	return (x - r.X) / cellW, (y - r.Y) / cellH, true
}

// Clamp restricts v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
