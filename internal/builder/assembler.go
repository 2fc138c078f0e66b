package builder

import (
	"github.com/claude/optcoach/internal/catalog"
	"github.com/claude/optcoach/internal/models"
)

// Prescription is the training context main lifts are prescribed for.
// An empty or unknown Phase leaves the split's own sets×reps scheme in place.
type Prescription struct {
	Phase models.Phase
	Level models.Level
}

// scheme is a fixed sets×reps pair.
type scheme struct {
	sets int
	reps int
}

// daySpec describes one day of a split.
type daySpec struct {
	name     string
	main     Criteria
	mainSets scheme
	acc      Criteria
	accSets  scheme
}

const circuitRest = 30

var (
	strengthOnly     = []models.Category{models.CategoryStrength}
	accessoryCats    = []models.Category{models.CategoryStrength, models.CategoryCore}
	fullBodyCats     = []models.Category{models.CategoryStrength, models.CategoryPower, models.CategoryCore}
	mobilityCats     = []models.Category{models.CategoryMobility}
	dynamicCats      = []models.Category{models.CategoryMobility, models.CategorySAQ}
	flexibilityCats  = []models.Category{models.CategoryFlexibility}
	cardioCats       = []models.Category{models.CategoryCardio}
	fullBodyKeywords = []string{"squat", "deadlift", "press", "row", "pull-up", "lunge", "push-up", "swing", "thruster"}
)

var pushPullLegs = []daySpec{
	{
		name:     "Push Day",
		main:     Criteria{Keywords: []string{"bench press", "overhead press", "dip"}, Muscles: []string{"chest"}, Max: 3},
		mainSets: scheme{4, 6},
		acc:      Criteria{Keywords: []string{"fly", "lateral raise", "triceps"}, Max: 2},
		accSets:  scheme{3, 8},
	},
	{
		name:     "Pull Day",
		main:     Criteria{Keywords: []string{"deadlift", "row", "pull-up", "pulldown"}, Muscles: []string{"back", "lats"}, Max: 3},
		mainSets: scheme{4, 6},
		acc:      Criteria{Keywords: []string{"curl", "face pull", "rear delt"}, Max: 2},
		accSets:  scheme{3, 8},
	},
	{
		name:     "Legs Day",
		main:     Criteria{Keywords: []string{"squat", "leg press", "lunge", "romanian deadlift"}, Muscles: []string{"quadriceps", "glutes", "hamstrings"}, Max: 3},
		mainSets: scheme{4, 6},
		acc:      Criteria{Keywords: []string{"leg curl", "leg extension", "calf raise", "hip thrust"}, Max: 2},
		accSets:  scheme{3, 8},
	},
}

var upperLower = []daySpec{
	{
		name:     "Upper Body",
		main:     Criteria{Keywords: []string{"bench press", "overhead press", "row", "pull-up", "pulldown"}, Muscles: []string{"chest", "back", "shoulders", "lats"}, Max: 4},
		mainSets: scheme{4, 8},
		acc:      Criteria{Keywords: []string{"curl", "triceps", "lateral raise", "fly"}, Max: 2},
		accSets:  scheme{3, 10},
	},
	{
		name:     "Lower Body",
		main:     Criteria{Keywords: []string{"squat", "deadlift", "leg press", "lunge"}, Muscles: []string{"quadriceps", "glutes", "hamstrings"}, Max: 4},
		mainSets: scheme{4, 8},
		acc:      Criteria{Keywords: []string{"leg curl", "leg extension", "calf raise", "hip thrust"}, Max: 2},
		accSets:  scheme{3, 12},
	},
}

// InferSplit maps free-text goal text to a split strategy.
func InferSplit(goal string) models.SplitType {
	switch catalog.GoalTag(goal) {
	case catalog.GoalStrength, catalog.GoalPower:
		return models.SplitPushPullLegs
	case catalog.GoalHypertrophy:
		return models.SplitUpperLower
	}
	return models.SplitFullBody
}

// ResolveSplit decides which strategy assembles tmpl. An empty request uses
// the template's own split, "auto" infers one from the template goal, and
// bro-split or custom use the full-body strategy.
func ResolveSplit(tmpl models.ProgramTemplate, requested models.SplitType) models.SplitType {
	split := requested
	if split == "" {
		split = tmpl.SplitType
	}
	switch split {
	case models.SplitPushPullLegs, models.SplitUpperLower, models.SplitFullBody:
		return split
	case "", models.SplitAuto:
		return InferSplit(tmpl.Goal)
	}
	return models.SplitFullBody
}

// Assemble builds one week of workout days for tmpl. Selection only depends
// on catalog order and the used set of this call, so identical inputs always
// produce identical days and no exercise appears twice.
func Assemble(tmpl models.ProgramTemplate, cat *catalog.Catalog, split models.SplitType, rx Prescription) []models.WorkoutDay {
	a := &assembly{cat: cat, rx: rx, used: NewUsedSet()}

	switch ResolveSplit(tmpl, split) {
	case models.SplitPushPullLegs:
		return a.split(pushPullLegs)
	case models.SplitUpperLower:
		return a.split(upperLower)
	}
	return []models.WorkoutDay{a.fullBody(catalog.GoalTag(tmpl.Goal))}
}

// ExpandWeeks repeats a split for each week of a program, numbering weeks
// from 1. Every day is a deep copy. weeks below 1 yields a single week.
func ExpandWeeks(days []models.WorkoutDay, weeks int) []models.WorkoutDay {
	if weeks < 1 {
		weeks = 1
	}
	out := make([]models.WorkoutDay, 0, len(days)*weeks)
	for w := 1; w <= weeks; w++ {
		for _, d := range days {
			wd := models.WorkoutDay{
				Week:      w,
				Name:      d.Name,
				Exercises: make([]models.WorkoutExercise, len(d.Exercises)),
			}
			for i, we := range d.Exercises {
				we.Variables = we.Variables.Clone()
				wd.Exercises[i] = we
			}
			out = append(out, wd)
		}
	}
	return out
}

type assembly struct {
	cat  *catalog.Catalog
	rx   Prescription
	used UsedSet
}

// day accumulates entries and keeps order values increasing across blocks.
type day struct {
	models.WorkoutDay
}

func (d *day) add(ex models.Exercise, block models.Block, vars models.AcuteVariables, notes string) {
	d.Exercises = append(d.Exercises, models.WorkoutExercise{
		ExerciseID:   ex.ID,
		ExerciseName: ex.Name,
		Block:        block,
		Order:        len(d.Exercises) + 1,
		Variables:    vars,
		Notes:        notes,
	})
}

func (a *assembly) split(specs []daySpec) []models.WorkoutDay {
	days := make([]models.WorkoutDay, 0, len(specs))
	for _, spec := range specs {
		d := &day{WorkoutDay: models.WorkoutDay{Name: spec.name}}
		a.warmup(d)

		lifts := spec.main
		lifts.Categories = strengthOnly
		for _, ex := range Select(a.cat.Exercises, lifts, a.used) {
			d.add(ex, models.BlockMain, a.mainLift(ex, spec.mainSets), "")
		}

		acc := spec.acc
		acc.Categories = accessoryCats
		for _, ex := range Select(a.cat.Exercises, acc, a.used) {
			d.add(ex, models.BlockAccessory, withScheme(ex.Defaults, spec.accSets), "")
		}

		a.cooldown(d)
		days = append(days, d.WorkoutDay)
	}
	return days
}

func (a *assembly) fullBody(goal string) models.WorkoutDay {
	name, count, s, notes := "Full Body", 4, scheme{3, 10}, ""
	switch goal {
	case catalog.GoalEndurance:
		count, s = 6, scheme{3, 15}
	case catalog.GoalWeightLoss:
		name, count, s = "Full Body Circuit", 8, scheme{3, 12}
		notes = "Circuit: move straight to the next exercise, rest after each round."
	}

	d := &day{WorkoutDay: models.WorkoutDay{Name: name}}
	a.warmup(d)
	c := Criteria{Keywords: fullBodyKeywords, Categories: fullBodyCats, Max: count}
	for _, ex := range Select(a.cat.Exercises, c, a.used) {
		vars := a.phased(ex, ex.Defaults)
		vars.Sets, vars.Reps = s.sets, models.Int(s.reps)
		if goal == catalog.GoalWeightLoss {
			vars.RestTime = circuitRest
		}
		d.add(ex, models.BlockMain, vars, notes)
	}
	a.cooldown(d)
	return d.WorkoutDay
}

func (a *assembly) warmup(d *day) {
	slots := []Criteria{
		{Keywords: []string{"treadmill", "bike", "rower", "rowing", "jump rope", "elliptical"}, Categories: cardioCats, Max: 1},
		{Keywords: []string{"circles", "cat-cow", "opener", "rotation", "mobility"}, Categories: mobilityCats, Max: 2},
		{Keywords: []string{"swing", "inchworm", "high knees", "butt kicks", "skip"}, Categories: dynamicCats, Max: 1},
	}
	for _, c := range slots {
		for _, ex := range Select(a.cat.Exercises, c, a.used) {
			d.add(ex, models.BlockWarmup, ex.Defaults.Clone(), "")
		}
	}
}

func (a *assembly) cooldown(d *day) {
	slots := []Criteria{
		{Keywords: []string{"stretch"}, Categories: flexibilityCats, Max: 3},
		{Keywords: []string{"foam roll"}, Categories: flexibilityCats, Max: 1},
	}
	for _, c := range slots {
		for _, ex := range Select(a.cat.Exercises, c, a.used) {
			d.add(ex, models.BlockCooldown, ex.Defaults.Clone(), "")
		}
	}
}

// mainLift overlays the split scheme on the exercise defaults and then
// applies the phase prescription on top.
func (a *assembly) mainLift(ex models.Exercise, s scheme) models.AcuteVariables {
	return a.phased(ex, withScheme(ex.Defaults, s))
}

func (a *assembly) phased(ex models.Exercise, base models.AcuteVariables) models.AcuteVariables {
	ex.Defaults = base
	return ComputeVariables(ex, a.rx.Phase, a.rx.Level, a.cat.Guidelines)
}

func withScheme(defaults models.AcuteVariables, s scheme) models.AcuteVariables {
	v := defaults.Clone()
	v.Sets = s.sets
	v.Reps = models.Int(s.reps)
	return v
}
