// Package pattern holds the closed-form pattern functions sampled by the
// resolver. Every pattern maps an aspect-corrected UV coordinate to a color.
package pattern

import (
	"errors"
	"fmt"
	"strings"

	"pattern-renderer/internal/mathutil"
)

// ErrUnknownKind is returned by ParseKind for unrecognized names.
var ErrUnknownKind = errors.New("pattern: unknown kind")

// Kind selects one of the four built-in patterns.
type Kind int

const (
	UV Kind = iota
	Checkerboard
	Circle
	Voronoi
)

var kindNames = [...]string{
	UV:           "uv",
	Checkerboard: "checkerboard",
	Circle:       "circle",
	Voronoi:      "voronoi",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a case-insensitive name to a Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Domain describes the canvas a pattern is evaluated on. For supersampling
// Size is the output size multiplied by Scale.
type Domain struct {
	Size  mathutil.Vec2i
	Scale int
}

// Evaluator samples a pattern at one UV coordinate. uv.X spans [0,1) across
// the width and uv.Y has already been multiplied by height/width.
// Implementations are safe for concurrent use.
type Evaluator interface {
	Evaluate(uv mathutil.Vec2, d Domain) mathutil.Vec3
}

// Params carries the spatial parameters for every pattern kind, in output
// pixels. Fields a kind does not use are ignored.
type Params struct {
	Kind      Kind
	TileSize  float64 // checkerboard cell edge
	Thickness float64 // circle ring width
	Gap       float64 // circle spacing between rings
	Points    int     // voronoi site count
	Seed      uint64  // voronoi scatter seed
}

// New builds the evaluator for p on an output canvas of the given size.
// Randomized setup (the Voronoi scatter) happens here, once per image.
func New(p Params, size mathutil.Vec2i) (Evaluator, error) {
	switch p.Kind {
	case UV:
		return uvPattern{}, nil
	case Checkerboard:
		return newCheckerboard(p.TileSize), nil
	case Circle:
		return circles{thickness: p.Thickness, gap: p.Gap}, nil
	case Voronoi:
		return newVoronoi(size, p.Points, p.Seed), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownKind, p.Kind)
}

// toDomain converts an aspect-corrected UV into domain pixels. Both axes use
// the domain width because uv.Y already carries the aspect ratio.
func toDomain(uv mathutil.Vec2, d Domain) mathutil.Vec2 {
	return uv.Scale(float64(d.Size.X))
}

func scale(d Domain) float64 {
	if d.Scale < 1 {
		return 1
	}
	return float64(d.Scale)
}
