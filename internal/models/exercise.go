package models

import "strings"

// Category is one of the eight fixed training-style tags of a catalog exercise.
type Category string

const (
	CategoryStrength    Category = "STRENGTH"
	CategoryPower       Category = "POWER"
	CategoryCardio      Category = "CARDIO"
	CategoryMobility    Category = "MOBILITY"
	CategoryFlexibility Category = "FLEXIBILITY"
	CategoryBalance     Category = "BALANCE"
	CategoryCore        Category = "CORE"
	CategorySAQ         Category = "SAQ"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryStrength, CategoryPower, CategoryCardio, CategoryMobility,
	CategoryFlexibility, CategoryBalance, CategoryCore, CategorySAQ,
}

// Valid reports whether c is one of the eight known categories.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// Level is a difficulty tier for exercises and an experience level for clients.
type Level string

const (
	LevelBeginner     Level = "BEGINNER"
	LevelIntermediate Level = "INTERMEDIATE"
	LevelAdvanced     Level = "ADVANCED"
)

// ParseLevel normalizes a free-form level string. Unknown values return "".
func ParseLevel(s string) Level {
	switch Level(strings.ToUpper(strings.TrimSpace(s))) {
	case LevelBeginner:
		return LevelBeginner
	case LevelIntermediate:
		return LevelIntermediate
	case LevelAdvanced:
		return LevelAdvanced
	}
	return ""
}

// Exercise is an immutable catalog entry.
type Exercise struct {
	ID           string         `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	Category     Category       `json:"category" yaml:"category"`
	MuscleGroups []string       `json:"muscleGroups" yaml:"muscle_groups"`
	Equipment    []string       `json:"equipment" yaml:"equipment"`
	Difficulty   Level          `json:"difficulty" yaml:"difficulty"`
	Instructions string         `json:"instructions,omitempty" yaml:"instructions"`
	Defaults     AcuteVariables `json:"defaults" yaml:"defaults"`
}

// AcuteVariables is the prescription for one exercise in one session.
// Pointer fields are optional; nil means "not applicable to this exercise".
// Duration and RestTime are seconds, Intensity is %1RM and Tempo is an
// eccentric-pause-concentric pattern such as "4-2-1".
type AcuteVariables struct {
	Sets       int      `json:"sets" yaml:"sets"`
	Reps       *int     `json:"reps,omitempty" yaml:"reps"`
	Duration   *int     `json:"duration,omitempty" yaml:"duration"`
	RestTime   int      `json:"restTime" yaml:"rest_time"`
	Intensity  *int     `json:"intensity,omitempty" yaml:"intensity"`
	RPE        *int     `json:"rpe,omitempty" yaml:"rpe"`
	Tempo      string   `json:"tempo,omitempty" yaml:"tempo"`
	Weight     *float64 `json:"weight,omitempty" yaml:"weight"`
	Distance   *float64 `json:"distance,omitempty" yaml:"distance"`
	Speed      *float64 `json:"speed,omitempty" yaml:"speed"`
	Incline    *float64 `json:"incline,omitempty" yaml:"incline"`
	Resistance *int     `json:"resistance,omitempty" yaml:"resistance"`
}

// Clone returns a deep copy so callers never share pointer fields between exercises.
func (v AcuteVariables) Clone() AcuteVariables {
	out := v
	out.Reps = cloneInt(v.Reps)
	out.Duration = cloneInt(v.Duration)
	out.Intensity = cloneInt(v.Intensity)
	out.RPE = cloneInt(v.RPE)
	out.Resistance = cloneInt(v.Resistance)
	out.Weight = cloneFloat(v.Weight)
	out.Distance = cloneFloat(v.Distance)
	out.Speed = cloneFloat(v.Speed)
	out.Incline = cloneFloat(v.Incline)
	return out
}

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
