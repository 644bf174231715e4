package gems

import (
	"fmt"
	"math"
	"strings"
)

// Easing selects the curve a moving piece follows from start to target.
type Easing int

const (
	EaseLinear Easing = iota
	EaseIn
	EaseOut
	EaseSmoothStep
	EaseSmootherStep
)

// DefaultEasing is the curve used when none is configured.
const DefaultEasing = EaseSmootherStep

var easingNames = map[Easing]string{
	EaseLinear:       "linear",
	EaseIn:           "ease-in",
	EaseOut:          "ease-out",
	EaseSmoothStep:   "smoothstep",
	EaseSmootherStep: "smootherstep",
}

// String returns the flag name of the curve.
func (e Easing) String() string {
	if s, ok := easingNames[e]; ok {
		return s
	}
	return "unknown"
}

// ParseEasing converts a flag value to an Easing. Empty selects the default.
func ParseEasing(s string) (Easing, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultEasing, nil
	}
	for e, name := range easingNames {
		if name == s {
			return e, nil
		}
	}
	return DefaultEasing, fmt.Errorf("gems: unknown easing %q", s)
}

// Apply maps linear progress t in [0, 1] onto the curve.
func (e Easing) Apply(t float64) float64 {
	switch e {
	case EaseIn:
		return 1 - math.Cos(t*math.Pi/2)
	case EaseOut:
		return math.Sin(t * math.Pi / 2)
	case EaseSmoothStep:
		return t * t * (3 - 2*t)
	case EaseSmootherStep:
		return t * t * t * (t*(t*6-15) + 10)
	default:
		return t
	}
}
