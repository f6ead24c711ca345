package math

import (
	m "math"
)

const (
	/** @brief An approximate representation of PI. */
	K_PI float32 = 3.14159265358979323846
	/** @brief An approximate representation of PI multiplied by 2. */
	K_PI_2 float32 = 2.0 * K_PI
)

func ksin(x float32) float32 {
	return float32(m.Sin(float64(x)))
}

func kcos(x float32) float32 {
	return float32(m.Cos(float64(x)))
}

func ksqrt(x float32) float32 {
	return float32(m.Sqrt(float64(x)))
}

// Sin and Cos are float32 shorthands used by the tessellator.
func Sin(x float32) float32 { return ksin(x) }
func Cos(x float32) float32 { return kcos(x) }

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// ------------------------------------------
// Vector 2
// ------------------------------------------

/**
 * @brief Creates and returns a new 2-element vector using the supplied values.
 */
func NewVec2(x, y float32) Vec2 {
	return Vec2{
		X: x,
		Y: y,
	}
}

/**
 * @brief Creates and returns a 2-component vector with all components set to 0.0f.
 */
func NewVec2Zero() Vec2 {
	return Vec2{X: 0.0, Y: 0.0}
}

/**
 *  Adds other to v and returns a copy of the result.
 */
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

/**
 * Subtracts other from v and returns a copy of the result.
 */
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

/**
 * Returns the squared length of the provided vector.
 */
func (v Vec2) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Length() float32 {
	return ksqrt(v.LengthSquared())
}

/**
 * @brief Returns a unit copy of v. The zero vector is returned unchanged.
 */
func (v Vec2) Normalized() Vec2 {
	length := v.Length()
	if length == 0 {
		return v
	}
	return Vec2{v.X / length, v.Y / length}
}

// Perp returns v rotated by 90 degrees.
func (v Vec2) Perp() Vec2 {
	return Vec2{-v.Y, v.X}
}

// ------------------------------------------
// Rect
// ------------------------------------------

func NewRect(min, max Vec2) Rect {
	return Rect{Min: min, Max: max}
}

// NewRectFromSize builds a rectangle with its top-left corner at pos.
func NewRectFromSize(pos, size Vec2) Rect {
	return Rect{Min: pos, Max: pos.Add(size)}
}

func (r Rect) Width() float32 {
	return r.Max.X - r.Min.X
}

func (r Rect) Height() float32 {
	return r.Max.Y - r.Min.Y
}

func (r Rect) Size() Vec2 {
	return Vec2{r.Width(), r.Height()}
}

func (r Rect) Center() Vec2 {
	return Vec2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Shrink moves every edge inwards by amount.
func (r Rect) Shrink(amount float32) Rect {
	return Rect{
		Min: Vec2{r.Min.X + amount, r.Min.Y + amount},
		Max: Vec2{r.Max.X - amount, r.Max.Y - amount},
	}
}

// Intersect returns the overlap of r and other. The result is empty
// (zero or negative size) when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	return Rect{
		Min: Vec2{max(r.Min.X, other.Min.X), max(r.Min.Y, other.Min.Y)},
		Max: Vec2{min(r.Max.X, other.Max.X), min(r.Max.Y, other.Max.Y)},
	}
}

func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}
