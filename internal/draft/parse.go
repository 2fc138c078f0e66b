package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/claude/optcoach/internal/models"
)

// Plan is the JSON document the model is asked to return.
type Plan struct {
	ProgramName string      `json:"programName"`
	OptPhase    string      `json:"optPhase"`
	Notes       string      `json:"notes"`
	Phases      []PlanPhase `json:"phases"`
}

// PlanPhase is one labelled phase of the model's plan.
type PlanPhase struct {
	Name        string       `json:"name"`
	WeeklyPlans []WeeklyPlan `json:"weeklyPlans"`
}

// WeeklyPlan holds the workouts of one week.
type WeeklyPlan struct {
	Week     int           `json:"week"`
	Workouts []PlanWorkout `json:"workouts"`
}

// PlanWorkout is one training day.
type PlanWorkout struct {
	Day       string         `json:"day"`
	Exercises []PlanExercise `json:"exercises"`
}

// PlanExercise uses pointers so missing and null values stay distinguishable
// from zero.
type PlanExercise struct {
	Name      string `json:"name"`
	Block     string `json:"block"`
	Sets      *int   `json:"sets"`
	Reps      *int   `json:"reps"`
	Duration  *int   `json:"duration"`
	RestTime  *int   `json:"restTime"`
	Intensity *int   `json:"intensity"`
	RPE       *int   `json:"rpe"`
	Tempo     string `json:"tempo"`
	Notes     string `json:"notes"`
}

// Outcome tags a parse Result.
type Outcome int

const (
	Unparseable Outcome = iota
	Parsed
)

func (o Outcome) String() string {
	if o == Parsed {
		return "parsed"
	}
	return "unparseable"
}

// Result is the tagged outcome of Parse. Plan is only meaningful when
// Outcome is Parsed; Reason is only set when it is Unparseable.
type Result struct {
	Outcome  Outcome
	Plan     Plan
	Reason   string
	Repaired bool
}

var (
	errNoJSON   = errors.New("no JSON object in reply")
	errNoPhases = errors.New("phases missing or empty")
	errNoWeeks  = errors.New("phases[0].weeklyPlans missing or empty")
)

// Parse extracts the first balanced JSON object from a model reply, decodes
// it with one repair attempt, checks its shape and normalizes phase labels.
func Parse(reply string) Result {
	block, ok := extractObject(reply)
	if !ok {
		return Result{Outcome: Unparseable, Reason: errNoJSON.Error()}
	}

	var plan Plan
	repaired := false
	if err := json.Unmarshal([]byte(block), &plan); err != nil {
		fixed, ok := repair(block)
		if !ok {
			return Result{Outcome: Unparseable, Reason: fmt.Sprintf("decoding reply: %v", err)}
		}
		plan = Plan{}
		if err := json.Unmarshal([]byte(fixed), &plan); err != nil {
			return Result{Outcome: Unparseable, Reason: fmt.Sprintf("decoding repaired reply: %v", err)}
		}
		repaired = true
	}

	if err := validate(plan); err != nil {
		return Result{Outcome: Unparseable, Reason: err.Error(), Repaired: repaired}
	}
	normalize(&plan)
	return Result{Outcome: Parsed, Plan: plan, Repaired: repaired}
}

// extractObject returns the first balanced {...} block in s. Braces inside
// JSON string literals are ignored. An object that never balances is
// returned from its opening brace to the end of s.
func extractObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return s[start:], true
}

// repair truncates s just after its last closing brace. It reports false
// when that would not change s.
func repair(s string) (string, bool) {
	end := strings.LastIndexByte(s, '}')
	if end < 0 || end == len(s)-1 {
		return "", false
	}
	return s[:end+1], true
}

func validate(p Plan) error {
	if len(p.Phases) == 0 {
		return errNoPhases
	}
	weeks := p.Phases[0].WeeklyPlans
	if len(weeks) == 0 {
		return errNoWeeks
	}
	for i, w := range weeks {
		if len(w.Workouts) == 0 {
			return fmt.Errorf("phases[0].weeklyPlans[%d] has no workouts", i)
		}
		for j, wo := range w.Workouts {
			if len(wo.Exercises) == 0 {
				return fmt.Errorf("phases[0].weeklyPlans[%d].workouts[%d] has no exercises", i, j)
			}
			for k, ex := range wo.Exercises {
				if strings.TrimSpace(ex.Name) == "" {
					return fmt.Errorf("phases[0].weeklyPlans[%d].workouts[%d].exercises[%d] has no name", i, j, k)
				}
			}
		}
	}
	return nil
}

// normalize rewrites the legacy HYPERTROPHY label wherever a phase is named.
func normalize(p *Plan) {
	p.OptPhase = normalizePhase(p.OptPhase)
	for i := range p.Phases {
		p.Phases[i].Name = normalizePhase(p.Phases[i].Name)
	}
}

func normalizePhase(label string) string {
	if strings.EqualFold(strings.TrimSpace(label), models.PhaseHypertrophyAlias) {
		return string(models.PhaseMuscularDevelopment)
	}
	return label
}
