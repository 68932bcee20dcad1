package physics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrUnknownDetectionMode is returned by ParseDetectionMode.
var ErrUnknownDetectionMode = errors.New("unknown detection mode")

// DetectionMode selects how narrowphase tests sphere pairs.
type DetectionMode int

const (
	// DetectStatic tests overlap at the current positions only.
	DetectStatic DetectionMode = iota
	// DetectDynamic sweeps the relative motion over the frame and reports the
	// time of impact.
	DetectDynamic
)

func (m DetectionMode) String() string {
	switch m {
	case DetectStatic:
		return "static"
	case DetectDynamic:
		return "dynamic"
	}
	return fmt.Sprintf("DetectionMode(%d)", int(m))
}

// ParseDetectionMode accepts "static" or "dynamic", case-insensitively.
func ParseDetectionMode(s string) (DetectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "static":
		return DetectStatic, nil
	case "dynamic", "continuous":
		return DetectDynamic, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDetectionMode, s)
}

// Config is passed to every Step. Nothing but Debug-gated logging happens
// when Enabled is false.
type Config struct {
	Enabled   bool
	Detection DetectionMode
	Debug     bool
	Gravity   mgl32.Vec3
}

func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Detection: DetectDynamic,
		Debug:     true,
		Gravity:   mgl32.Vec3{0, -10, 0},
	}
}
