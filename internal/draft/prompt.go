// Package draft asks a chat-completion model for a program draft and turns
// its reply into workout days, falling back to the deterministic assembler
// whenever the reply cannot be used.
package draft

import (
	"fmt"
	"strings"

	"github.com/claude/optcoach/internal/builder"
	"github.com/claude/optcoach/internal/models"
)

// Input is everything one draft request needs. It is built per request and
// never shared.
type Input struct {
	Profile  models.ClientProfile
	Request  models.GenerateRequest
	Template models.ProgramTemplate
	Split    models.SplitType
	Phase    models.Phase
	Level    models.Level
	Weeks    int
	UseAI    bool
}

const systemPrompt = `You are a certified personal trainer who designs programs with the NASM OPT model.
Reply with a single JSON object and nothing else. Use this shape:
{
  "programName": "string",
  "optPhase": "STABILIZATION_ENDURANCE | STRENGTH_ENDURANCE | MUSCULAR_DEVELOPMENT | MAXIMAL_STRENGTH | POWER",
  "notes": "string",
  "phases": [
    {
      "name": "phase label",
      "weeklyPlans": [
        {
          "week": 1,
          "workouts": [
            {
              "day": "workout name",
              "exercises": [
                {"name": "exercise", "block": "warmup | main | accessory | cooldown", "sets": 3, "reps": 10, "duration": null, "restTime": 60, "intensity": 70, "rpe": 7, "tempo": "2-0-2", "notes": ""}
              ]
            }
          ]
        }
      ]
    }
  ]
}
Use null for fields that do not apply. Durations and rest times are seconds.`

// BuildPrompt renders the system and user messages for in.
func BuildPrompt(in Input, guideline models.PhaseGuideline, hasGuideline bool) (system, user string) {
	var b strings.Builder
	c := in.Profile.Client

	b.WriteString("Design a training program for this client.\n\n")
	b.WriteString("Client:\n")
	if c.Name != "" {
		fmt.Fprintf(&b, "- Name: %s\n", c.Name)
	}
	if age := clientAge(in); age > 0 {
		fmt.Fprintf(&b, "- Age: %d\n", age)
	}
	if c.Gender != "" {
		fmt.Fprintf(&b, "- Gender: %s\n", c.Gender)
	}
	fmt.Fprintf(&b, "- Experience level: %s\n", in.Level)

	if a := in.Profile.LatestAssessment; a != nil {
		fmt.Fprintf(&b, "- Latest assessment (%s, %s): %s\n", a.Kind, a.AssessedAt.Format("2006-01-02"), a.Findings)
	}
	if p := in.Profile.LatestProgress; p != nil {
		var parts []string
		if p.WeightKg != nil {
			parts = append(parts, fmt.Sprintf("weight %.1f kg", *p.WeightKg))
		}
		if p.BodyFatPct != nil {
			parts = append(parts, fmt.Sprintf("body fat %.1f%%", *p.BodyFatPct))
		}
		if p.Notes != "" {
			parts = append(parts, p.Notes)
		}
		if len(parts) > 0 {
			fmt.Fprintf(&b, "- Latest progress (%s): %s\n", p.RecordedAt.Format("2006-01-02"), strings.Join(parts, ", "))
		}
	}

	b.WriteString("\nGoals:\n")
	fmt.Fprintf(&b, "- Primary: %s\n", in.Request.PrimaryGoal)
	if len(in.Request.SecondaryGoals) > 0 {
		fmt.Fprintf(&b, "- Secondary: %s\n", strings.Join(in.Request.SecondaryGoals, ", "))
	}

	b.WriteString("\nTraining phase:\n")
	fmt.Fprintf(&b, "- OPT phase: %s\n", in.Phase)
	if hasGuideline {
		m := builder.LevelMultiplier(in.Level)
		fmt.Fprintf(&b, "- Sets: %s\n", scaledRange(guideline.Sets, m))
		fmt.Fprintf(&b, "- Reps: %s\n", scaledRange(guideline.Reps, m))
		fmt.Fprintf(&b, "- Intensity: %s %%1RM\n", scaledRange(guideline.Intensity, m))
		fmt.Fprintf(&b, "- Rest: %s seconds\n", scaledRange(guideline.RestTime, m))
		fmt.Fprintf(&b, "- RPE: %s\n", scaledRange(guideline.RPE, m))
		fmt.Fprintf(&b, "- Tempo: %s\n", guideline.Tempo)
	}

	b.WriteString("\nStructure:\n")
	fmt.Fprintf(&b, "- Duration: %d weeks\n", in.Weeks)
	fmt.Fprintf(&b, "- Split: %s\n", in.Split)
	if in.Template.WorkoutsPerWeek > 0 {
		fmt.Fprintf(&b, "- Workouts per week: %d\n", in.Template.WorkoutsPerWeek)
	}
	if len(in.Template.Equipment) > 0 {
		fmt.Fprintf(&b, "- Available equipment: %s\n", strings.Join(in.Template.Equipment, ", "))
	}
	if len(in.Template.FocusAreas) > 0 {
		fmt.Fprintf(&b, "- Focus: %s\n", strings.Join(in.Template.FocusAreas, ", "))
	}
	b.WriteString("\nEvery workout starts with a warm-up block and ends with a cooldown block.")

	return systemPrompt, b.String()
}

func clientAge(in Input) int {
	if in.Request.ClientAge != nil {
		return *in.Request.ClientAge
	}
	if in.Profile.Client.Age != nil {
		return *in.Profile.Client.Age
	}
	return 0
}

// scaledRange renders a guideline range with the level multiplier applied to
// both bounds. Undefined minimums render the maximum only.
func scaledRange(r models.Range, m float64) string {
	hi := int(float64(r.Max)*m + 0.5)
	if r.Min <= 0 {
		return fmt.Sprintf("up to %d", hi)
	}
	lo := int(float64(r.Min)*m + 0.5)
	if lo >= hi {
		return fmt.Sprintf("%d", lo)
	}
	return fmt.Sprintf("%d-%d", lo, hi)
}
