package raster

import (
	"errors"
	"fmt"
	"strings"

	"pattern-renderer/internal/mathutil"
)

// ErrUnknownMode is returned by ParseMode for unrecognized names.
var ErrUnknownMode = errors.New("raster: unknown antialiasing mode")

// Mode is the antialiasing strategy.
type Mode int

const (
	None Mode = iota
	SSAA
	MSAA
	FXAA
)

const (
	MinLevel = 1
	MaxLevel = 8
)

var modeNames = [...]string{
	None: "none",
	SSAA: "ssaa",
	MSAA: "msaa",
	FXAA: "fxaa",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode maps a case-insensitive name to a Mode.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == s {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// ClampLevel limits an antialiasing level to [MinLevel, MaxLevel].
func ClampLevel(level int) int {
	return mathutil.Clamp(level, MinLevel, MaxLevel)
}
