package models

import "strings"

// Phase is one of the five OPT model training phases.
type Phase string

const (
	PhaseStabilizationEndurance Phase = "STABILIZATION_ENDURANCE"
	PhaseStrengthEndurance      Phase = "STRENGTH_ENDURANCE"
	PhaseMuscularDevelopment    Phase = "MUSCULAR_DEVELOPMENT"
	PhaseMaximalStrength        Phase = "MAXIMAL_STRENGTH"
	PhasePower                  Phase = "POWER"

	// PhaseHypertrophyAlias is the legacy label for MUSCULAR_DEVELOPMENT.
	// It is accepted on input and never emitted.
	PhaseHypertrophyAlias = "HYPERTROPHY"
)

// Phases lists the OPT phases in their sequential order.
var Phases = []Phase{
	PhaseStabilizationEndurance,
	PhaseStrengthEndurance,
	PhaseMuscularDevelopment,
	PhaseMaximalStrength,
	PhasePower,
}

// ParsePhase normalizes a phase label, mapping HYPERTROPHY to
// MUSCULAR_DEVELOPMENT. Unknown labels return "".
func ParsePhase(s string) Phase {
	label := strings.ToUpper(strings.TrimSpace(s))
	if label == PhaseHypertrophyAlias {
		return PhaseMuscularDevelopment
	}
	for _, p := range Phases {
		if Phase(label) == p {
			return p
		}
	}
	return ""
}

// Range is an inclusive min/max bound. A zero Min means the bound is undefined.
type Range struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// PhaseGuideline holds the acute-variable ranges of one OPT phase.
// Intensity is %1RM, RestTime is seconds.
type PhaseGuideline struct {
	Phase     Phase  `json:"phase" yaml:"phase"`
	Sets      Range  `json:"sets" yaml:"sets"`
	Reps      Range  `json:"reps" yaml:"reps"`
	Intensity Range  `json:"intensity" yaml:"intensity"`
	RestTime  Range  `json:"restTime" yaml:"rest_time"`
	RPE       Range  `json:"rpe" yaml:"rpe"`
	Tempo     string `json:"tempo" yaml:"tempo"`
}
