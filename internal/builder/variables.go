package builder

import (
	"math"

	"github.com/claude/optcoach/internal/models"
)

// LevelMultiplier returns the scale applied to guideline minimums for an
// experience level. Unknown levels scale by 1.
func LevelMultiplier(level models.Level) float64 {
	switch level {
	case models.LevelBeginner:
		return 0.8
	case models.LevelAdvanced:
		return 1.2
	}
	return 1.0
}

// ComputeVariables prescribes acute variables for ex in the given phase.
//
// Without a guideline for phase the exercise defaults are returned as is.
// Otherwise sets, reps, intensity, rest and RPE are the guideline minimum
// times the level multiplier, rounded half up. A zero minimum leaves the
// field unset; sets and rest are mandatory and keep the exercise default
// instead. Tempo comes from the guideline. Load and cardio parameters pass
// through from the exercise.
func ComputeVariables(ex models.Exercise, phase models.Phase, level models.Level, guidelines map[models.Phase]models.PhaseGuideline) models.AcuteVariables {
	out := ex.Defaults.Clone()
	g, ok := guidelines[phase]
	if !ok {
		return out
	}
	m := LevelMultiplier(level)

	if sets := scale(g.Sets.Min, m); sets != nil {
		out.Sets = *sets
	}
	if out.Sets < 1 {
		out.Sets = 1
	}
	if rest := scale(g.RestTime.Min, m); rest != nil {
		out.RestTime = *rest
	}
	out.Reps = scale(g.Reps.Min, m)
	out.Intensity = clamp(scale(g.Intensity.Min, m), 1, 100)
	out.RPE = clamp(scale(g.RPE.Min, m), 1, 10)
	out.Tempo = g.Tempo
	return out
}

func scale(min int, m float64) *int {
	if min <= 0 {
		return nil
	}
	return models.Int(roundHalfUp(float64(min) * m))
}

// roundHalfUp rounds x to the nearest integer with .5 going up. Guideline
// values are never negative.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func clamp(v *int, lo, hi int) *int {
	if v == nil {
		return nil
	}
	switch {
	case *v < lo:
		*v = lo
	case *v > hi:
		*v = hi
	}
	return v
}
