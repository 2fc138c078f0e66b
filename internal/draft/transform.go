package draft

import (
	"fmt"
	"sort"
	"strings"

	"github.com/claude/optcoach/internal/catalog"
	"github.com/claude/optcoach/internal/models"
)

// aiIDPrefix marks exercises the model named that are not in the catalog.
const aiIDPrefix = "ai:"

// Workouts converts a parsed plan into workout days. Weekly plans across all
// phases are numbered consecutively from week 1. Exercise names are resolved
// against the catalog; unknown names keep the model's wording under an
// "ai:" ID. Within a day entries are ordered warm-up, main and accessory,
// then cooldown.
func Workouts(p Plan, cat *catalog.Catalog) []models.WorkoutDay {
	var days []models.WorkoutDay
	week := 0
	for _, phase := range p.Phases {
		for _, wp := range phase.WeeklyPlans {
			if len(wp.Workouts) == 0 {
				continue
			}
			week++
			for i, wo := range wp.Workouts {
				day := models.WorkoutDay{Week: week, Name: strings.TrimSpace(wo.Day)}
				if day.Name == "" {
					day.Name = fmt.Sprintf("Workout %d", i+1)
				}
				for _, pe := range wo.Exercises {
					if strings.TrimSpace(pe.Name) == "" {
						continue
					}
					day.Exercises = append(day.Exercises, exercise(pe, cat))
				}
				if len(day.Exercises) == 0 {
					continue
				}
				sort.SliceStable(day.Exercises, func(a, b int) bool {
					return blockRank(day.Exercises[a].Block) < blockRank(day.Exercises[b].Block)
				})
				for j := range day.Exercises {
					day.Exercises[j].Order = j + 1
				}
				days = append(days, day)
			}
		}
	}
	return days
}

// Weeks reports how many distinct weeks days span.
func Weeks(days []models.WorkoutDay) int {
	n := 0
	for _, d := range days {
		if d.Week > n {
			n = d.Week
		}
	}
	return n
}

func exercise(pe PlanExercise, cat *catalog.Catalog) models.WorkoutExercise {
	name := strings.TrimSpace(pe.Name)
	we := models.WorkoutExercise{
		ExerciseID:   aiIDPrefix + slug(name),
		ExerciseName: name,
		Block:        parseBlock(pe.Block),
		Notes:        strings.TrimSpace(pe.Notes),
		Variables:    models.AcuteVariables{Sets: 1},
	}
	if ex, ok := cat.FindExercise(name); ok {
		we.ExerciseID = ex.ID
		we.ExerciseName = ex.Name
		we.Variables = ex.Defaults.Clone()
	}

	v := &we.Variables
	if pe.Sets != nil && *pe.Sets > 0 {
		v.Sets = *pe.Sets
	}
	if v.Sets < 1 {
		v.Sets = 1
	}
	if pe.Reps != nil && *pe.Reps > 0 {
		v.Reps = models.Int(*pe.Reps)
	}
	if pe.Duration != nil && *pe.Duration > 0 {
		v.Duration = models.Int(*pe.Duration)
	}
	if pe.RestTime != nil && *pe.RestTime >= 0 {
		v.RestTime = *pe.RestTime
	}
	if pe.Intensity != nil && *pe.Intensity > 0 && *pe.Intensity <= 100 {
		v.Intensity = models.Int(*pe.Intensity)
	}
	if pe.RPE != nil && *pe.RPE >= 1 && *pe.RPE <= 10 {
		v.RPE = models.Int(*pe.RPE)
	}
	if t := strings.TrimSpace(pe.Tempo); t != "" {
		v.Tempo = t
	}
	return we
}

func parseBlock(s string) models.Block {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warmup", "warm-up", "warm up":
		return models.BlockWarmup
	case "accessory":
		return models.BlockAccessory
	case "cooldown", "cool-down", "cool down":
		return models.BlockCooldown
	}
	return models.BlockMain
}

func blockRank(b models.Block) int {
	switch b {
	case models.BlockWarmup:
		return 0
	case models.BlockCooldown:
		return 2
	}
	return 1
}

func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
