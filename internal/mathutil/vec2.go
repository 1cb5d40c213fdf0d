package mathutil

import "math"

// Vec2i is an integer 2D vector, used for pixel coordinates and canvas sizes.
type Vec2i struct {
	X, Y int
}

func (a Vec2i) Add(b Vec2i) Vec2i {
	return Vec2i{a.X + b.X, a.Y + b.Y}
}

func (a Vec2i) Sub(b Vec2i) Vec2i {
	return Vec2i{a.X - b.X, a.Y - b.Y}
}

func (v Vec2i) Scale(s int) Vec2i {
	return Vec2i{v.X * s, v.Y * s}
}

// Mul is the elementwise product.
func (a Vec2i) Mul(b Vec2i) Vec2i {
	return Vec2i{a.X * b.X, a.Y * b.Y}
}

// Div is the elementwise quotient, truncated toward zero. A zero component
// in b panics like any integer division.
func (a Vec2i) Div(b Vec2i) Vec2i {
	return Vec2i{a.X / b.X, a.Y / b.Y}
}

func (v Vec2i) DivScalar(s int) Vec2i {
	return Vec2i{v.X / s, v.Y / s}
}

// Float converts to a Vec2.
func (v Vec2i) Float() Vec2 {
	return Vec2{float64(v.X), float64(v.Y)}
}

// Area returns X*Y.
func (v Vec2i) Area() int {
	return v.X * v.Y
}

// Vec2 is a 2-component float vector (value type, stack-allocated).
type Vec2 struct {
	X, Y float64
}

func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Mul is the elementwise product.
func (a Vec2) Mul(b Vec2) Vec2 {
	return Vec2{a.X * b.X, a.Y * b.Y}
}

// Div is the elementwise quotient. Zero components follow IEEE division.
func (a Vec2) Div(b Vec2) Vec2 {
	return Vec2{a.X / b.X, a.Y / b.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) DivScalar(s float64) Vec2 {
	return Vec2{v.X / s, v.Y / s}
}

// Len is the 2D Euclidean norm.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}
