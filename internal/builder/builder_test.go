package builder

import (
	"reflect"
	"testing"

	"github.com/claude/optcoach/internal/catalog"
	"github.com/claude/optcoach/internal/models"
)

func template(t *testing.T, cat *catalog.Catalog, id string) models.ProgramTemplate {
	t.Helper()
	tmpl, ok := cat.Template(id)
	if !ok {
		t.Fatalf("template %q not in catalog", id)
	}
	return tmpl
}

// TestSelectMatchesKeywordOrMuscle verifies an exercise qualifies by keyword or
// muscle within the allowed categories.
func TestSelectMatchesKeywordOrMuscle(t *testing.T) {
	library := []models.Exercise{
		{ID: "a", Name: "Barbell Bench Press", Category: models.CategoryStrength, MuscleGroups: []string{"chest"}},
		{ID: "b", Name: "Cable Row", Category: models.CategoryStrength, MuscleGroups: []string{"back"}},
		{ID: "c", Name: "Push-Up", Category: models.CategoryStrength, MuscleGroups: []string{"Chest", "triceps"}},
		{ID: "d", Name: "Chest Stretch", Category: models.CategoryFlexibility, MuscleGroups: []string{"chest"}},
	}
	used := NewUsedSet()
	got := Select(library, Criteria{
		Keywords:   []string{"BENCH"},
		Muscles:    []string{"chest"},
		Categories: []models.Category{models.CategoryStrength},
		Max:        5,
	}, used)

	var ids []string
	for _, ex := range got {
		ids = append(ids, ex.ID)
	}
	if !reflect.DeepEqual(ids, []string{"a", "c"}) {
		t.Errorf("selected %v, want [a c]", ids)
	}
	if !used.Has("a") || !used.Has("c") || used.Has("b") {
		t.Errorf("used set = %v", used)
	}
}

// TestSelectSkipsUsed verifies that an exercise selected once is never returned
// again from the same used set.
func TestSelectSkipsUsed(t *testing.T) {
	library := catalog.Default().Exercises
	used := NewUsedSet()
	c := Criteria{Keywords: []string{"squat"}, Max: 10}

	first := Select(library, c, used)
	if len(first) == 0 {
		t.Fatal("expected squat matches")
	}
	if again := Select(library, c, used); len(again) != 0 {
		t.Errorf("second selection returned %d exercises, want 0", len(again))
	}
}

// TestSelectUnderfilled verifies a query with no matches or no capacity returns
// nothing.
func TestSelectUnderfilled(t *testing.T) {
	got := Select(catalog.Default().Exercises, Criteria{Keywords: []string{"zercher"}, Max: 3}, NewUsedSet())
	if len(got) != 0 {
		t.Errorf("got %d, want 0", len(got))
	}
	if got := Select(catalog.Default().Exercises, Criteria{Keywords: []string{"squat"}}, NewUsedSet()); got != nil {
		t.Errorf("Max 0 returned %d exercises", len(got))
	}
}

// TestComputeVariables verifies phase guidelines and level multipliers shape
// the acute variables.
func TestComputeVariables(t *testing.T) {
	guidelines := catalog.Default().Guidelines
	ex := models.Exercise{
		ID:       "x",
		Name:     "Test Lift",
		Category: models.CategoryStrength,
		Defaults: models.AcuteVariables{
			Sets:     2,
			Reps:     models.Int(7),
			RestTime: 45,
			Tempo:    "1-1-1",
			Weight:   models.Float(60),
			Duration: models.Int(20),
		},
	}

	tests := []struct {
		name      string
		phase     models.Phase
		level     models.Level
		sets      int
		reps      int
		intensity int
		rpe       int
		rest      int
		tempo     string
	}{
		// 4×1.2=4.8, 1×1.2=1.2, 85×1.2=102 capped, 8×1.2=9.6, 180×1.2=216.
		{"max strength advanced", models.PhaseMaximalStrength, models.LevelAdvanced, 5, 1, 100, 10, 216, "X-X-X"},
		// 1×0.8=0.8, 12×0.8=9.6, 50×0.8=40, 5×0.8=4, rest min 0 keeps default.
		{"stabilization beginner", models.PhaseStabilizationEndurance, models.LevelBeginner, 1, 10, 40, 4, 45, "4-2-1"},
		{"muscular development intermediate", models.PhaseMuscularDevelopment, models.LevelIntermediate, 3, 6, 75, 7, 30, "2-0-2"},
		// 2×1.2=2.4, 8×1.2=9.6, 70×1.2=84, 6×1.2=7.2.
		{"strength endurance advanced", models.PhaseStrengthEndurance, models.LevelAdvanced, 2, 10, 84, 7, 45, "2-0-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ComputeVariables(ex, tt.phase, tt.level, guidelines)
			if v.Sets != tt.sets {
				t.Errorf("sets = %d, want %d", v.Sets, tt.sets)
			}
			if v.Reps == nil || *v.Reps != tt.reps {
				t.Errorf("reps = %v, want %d", v.Reps, tt.reps)
			}
			if v.Intensity == nil || *v.Intensity != tt.intensity {
				t.Errorf("intensity = %v, want %d", v.Intensity, tt.intensity)
			}
			if v.RPE == nil || *v.RPE != tt.rpe {
				t.Errorf("rpe = %v, want %d", v.RPE, tt.rpe)
			}
			if v.RestTime != tt.rest {
				t.Errorf("rest = %d, want %d", v.RestTime, tt.rest)
			}
			if v.Tempo != tt.tempo {
				t.Errorf("tempo = %q, want %q", v.Tempo, tt.tempo)
			}
			if v.Weight == nil || *v.Weight != 60 || v.Duration == nil || *v.Duration != 20 {
				t.Errorf("weight/duration not passed through: %+v", v)
			}
		})
	}
}

// TestComputeVariablesUnknownPhase verifies that a phase without a guideline
// returns the exercise defaults untouched and unshared.
func TestComputeVariablesUnknownPhase(t *testing.T) {
	ex := models.Exercise{Defaults: models.AcuteVariables{Sets: 3, Reps: models.Int(8), RestTime: 60, Tempo: "2-0-2"}}
	v := ComputeVariables(ex, "YOGA", models.LevelAdvanced, catalog.Default().Guidelines)
	if !reflect.DeepEqual(v, ex.Defaults) {
		t.Errorf("got %+v, want defaults %+v", v, ex.Defaults)
	}
	*v.Reps = 99
	if *ex.Defaults.Reps != 8 {
		t.Error("result shares the reps pointer with the exercise defaults")
	}
}

// TestComputeVariablesZeroMinimum verifies that an undefined guideline minimum
// yields an unset field rather than zero.
func TestComputeVariablesZeroMinimum(t *testing.T) {
	guidelines := map[models.Phase]models.PhaseGuideline{
		models.PhasePower: {Phase: models.PhasePower, Sets: models.Range{Min: 3, Max: 5}},
	}
	ex := models.Exercise{Defaults: models.AcuteVariables{Sets: 2, Reps: models.Int(8), RestTime: 75, RPE: models.Int(6)}}
	v := ComputeVariables(ex, models.PhasePower, models.LevelIntermediate, guidelines)
	if v.Reps != nil || v.Intensity != nil || v.RPE != nil {
		t.Errorf("expected unset reps/intensity/rpe, got %+v", v)
	}
	if v.Sets != 3 {
		t.Errorf("sets = %d, want 3", v.Sets)
	}
	if v.RestTime != 75 {
		t.Errorf("rest = %d, want exercise default 75", v.RestTime)
	}
}

// TestComputeVariablesMonotonic verifies that advanced clients never get fewer
// sets than beginners for the same exercise and phase.
func TestComputeVariablesMonotonic(t *testing.T) {
	cat := catalog.Default()
	for _, ex := range cat.Exercises {
		for _, p := range models.Phases {
			adv := ComputeVariables(ex, p, models.LevelAdvanced, cat.Guidelines)
			beg := ComputeVariables(ex, p, models.LevelBeginner, cat.Guidelines)
			if adv.Sets < beg.Sets {
				t.Errorf("%s/%s: advanced sets %d < beginner sets %d", ex.ID, p, adv.Sets, beg.Sets)
			}
		}
	}
}

// TestRoundHalfUp verifies halves round away from zero.
func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0.4, 0}, {0.5, 1}, {1.5, 2}, {2.5, 3}, {4.8, 5}, {9.6, 10}, {7.2, 7},
	}
	for _, tt := range tests {
		if got := roundHalfUp(tt.in); got != tt.want {
			t.Errorf("roundHalfUp(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// TestResolveSplit verifies explicit, template and AUTO split resolution.
func TestResolveSplit(t *testing.T) {
	strength := models.ProgramTemplate{Goal: "Strength", SplitType: models.SplitUpperLower}
	tests := []struct {
		name string
		tmpl models.ProgramTemplate
		req  models.SplitType
		want models.SplitType
	}{
		{"explicit wins", strength, models.SplitFullBody, models.SplitFullBody},
		{"empty uses template", strength, "", models.SplitUpperLower},
		{"auto infers strength", strength, models.SplitAuto, models.SplitPushPullLegs},
		{"auto infers hypertrophy", models.ProgramTemplate{Goal: "Muscle Gain"}, models.SplitAuto, models.SplitUpperLower},
		{"auto infers weight loss", models.ProgramTemplate{Goal: "Weight Loss"}, models.SplitAuto, models.SplitFullBody},
		{"bro split", strength, models.SplitBroSplit, models.SplitFullBody},
		{"custom", strength, models.SplitCustom, models.SplitFullBody},
		{"template without split", models.ProgramTemplate{Goal: "Power"}, "", models.SplitPushPullLegs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveSplit(tt.tmpl, tt.req); got != tt.want {
				t.Errorf("ResolveSplit = %q, want %q", got, tt.want)
			}
		})
	}
}

func blockOf(day models.WorkoutDay, b models.Block) []models.WorkoutExercise {
	var out []models.WorkoutExercise
	for _, we := range day.Exercises {
		if we.Block == b {
			out = append(out, we)
		}
	}
	return out
}

// TestAssembleSplits verifies day names and block sizes for each split.
func TestAssembleSplits(t *testing.T) {
	cat := catalog.Default()
	tmpl := template(t, cat, "ppl-strength")
	tests := []struct {
		split     models.SplitType
		names     []string
		main      int
		accessory int
	}{
		{models.SplitPushPullLegs, []string{"Push Day", "Pull Day", "Legs Day"}, 3, 2},
		{models.SplitUpperLower, []string{"Upper Body", "Lower Body"}, 4, 2},
		{models.SplitFullBody, []string{"Full Body"}, 4, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.split), func(t *testing.T) {
			days := Assemble(tmpl, cat, tt.split, Prescription{})
			if len(days) != len(tt.names) {
				t.Fatalf("days = %d, want %d", len(days), len(tt.names))
			}
			for i, d := range days {
				if d.Name != tt.names[i] {
					t.Errorf("day %d name = %q, want %q", i, d.Name, tt.names[i])
				}
				if n := len(blockOf(d, models.BlockMain)); n != tt.main {
					t.Errorf("%s: main = %d, want %d", d.Name, n, tt.main)
				}
				if n := len(blockOf(d, models.BlockAccessory)); n != tt.accessory {
					t.Errorf("%s: accessory = %d, want %d", d.Name, n, tt.accessory)
				}
				if n := len(blockOf(d, models.BlockWarmup)); n < 1 || n > 4 {
					t.Errorf("%s: warmup = %d, want 1..4", d.Name, n)
				}
				if n := len(blockOf(d, models.BlockCooldown)); n < 1 || n > 4 {
					t.Errorf("%s: cooldown = %d, want 1..4", d.Name, n)
				}
			}
		})
	}
}

// TestAssembleSchemesWithoutPhase verifies that the split's own sets×reps apply
// when no phase prescription is given.
func TestAssembleSchemesWithoutPhase(t *testing.T) {
	cat := catalog.Default()
	tmpl := template(t, cat, "upper-lower-hypertrophy")
	days := Assemble(tmpl, cat, models.SplitUpperLower, Prescription{})

	check := func(we models.WorkoutExercise, sets, reps int) {
		t.Helper()
		if we.Variables.Sets != sets || we.Variables.Reps == nil || *we.Variables.Reps != reps {
			t.Errorf("%s: got %d×%v, want %d×%d", we.ExerciseID, we.Variables.Sets, we.Variables.Reps, sets, reps)
		}
	}
	for _, we := range blockOf(days[0], models.BlockMain) {
		check(we, 4, 8)
	}
	for _, we := range blockOf(days[0], models.BlockAccessory) {
		check(we, 3, 10)
	}
	for _, we := range blockOf(days[1], models.BlockAccessory) {
		check(we, 3, 12)
	}
}

// TestAssembleFullBodyGoals verifies full-body days follow the goal-specific
// scheme.
func TestAssembleFullBodyGoals(t *testing.T) {
	cat := catalog.Default()
	tests := []struct {
		id    string
		name  string
		count int
		reps  int
	}{
		{"full-body-stabilization", "Full Body", 4, 10},
		{"full-body-endurance", "Full Body", 6, 15},
		{"full-body-fat-loss", "Full Body Circuit", 8, 12},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			tmpl := template(t, cat, tt.id)
			days := Assemble(tmpl, cat, "", Prescription{Phase: tmpl.Phase, Level: models.LevelBeginner})
			if len(days) != 1 || days[0].Name != tt.name {
				t.Fatalf("days = %+v", days)
			}
			main := blockOf(days[0], models.BlockMain)
			if len(main) != tt.count {
				t.Fatalf("movements = %d, want %d", len(main), tt.count)
			}
			for _, we := range main {
				if we.Variables.Sets != 3 || *we.Variables.Reps != tt.reps {
					t.Errorf("%s: %d×%d, want 3×%d", we.ExerciseID, we.Variables.Sets, *we.Variables.Reps, tt.reps)
				}
				if we.Variables.Tempo != cat.Guidelines[tmpl.Phase].Tempo {
					t.Errorf("%s: tempo %q not taken from phase", we.ExerciseID, we.Variables.Tempo)
				}
			}
		})
	}
}

// TestAssembleNoDuplicates verifies that no exercise ID repeats anywhere in one
// assembly call, across days and blocks.
func TestAssembleNoDuplicates(t *testing.T) {
	cat := catalog.Default()
	for _, tmpl := range cat.Templates {
		for _, split := range []models.SplitType{models.SplitPushPullLegs, models.SplitUpperLower, models.SplitFullBody, models.SplitAuto} {
			seen := map[string]bool{}
			for _, d := range Assemble(tmpl, cat, split, Prescription{Phase: tmpl.Phase, Level: tmpl.ExperienceLevel}) {
				for _, we := range d.Exercises {
					if seen[we.ExerciseID] {
						t.Errorf("%s/%s: %s selected twice", tmpl.ID, split, we.ExerciseID)
					}
					seen[we.ExerciseID] = true
				}
			}
		}
	}
}

// TestAssembleOrdering verifies that warm-up entries carry the lowest order
// values, cooldown the highest, and orders strictly increase within a day.
func TestAssembleOrdering(t *testing.T) {
	cat := catalog.Default()
	rank := map[models.Block]int{
		models.BlockWarmup:    0,
		models.BlockMain:      1,
		models.BlockAccessory: 1,
		models.BlockCooldown:  2,
	}
	for _, split := range []models.SplitType{models.SplitPushPullLegs, models.SplitUpperLower, models.SplitFullBody} {
		for _, d := range Assemble(template(t, cat, "ppl-strength"), cat, split, Prescription{}) {
			for i := 1; i < len(d.Exercises); i++ {
				prev, cur := d.Exercises[i-1], d.Exercises[i]
				if cur.Order <= prev.Order {
					t.Errorf("%s: order %d after %d", d.Name, cur.Order, prev.Order)
				}
				if rank[cur.Block] < rank[prev.Block] {
					t.Errorf("%s: %s entry after %s entry", d.Name, cur.Block, prev.Block)
				}
			}
			if len(d.Exercises) > 0 && d.Exercises[0].Order != 1 {
				t.Errorf("%s: first order = %d, want 1", d.Name, d.Exercises[0].Order)
			}
		}
	}
}

// TestAssembleDeterministic verifies identical inputs assemble identical
// workouts.
func TestAssembleDeterministic(t *testing.T) {
	cat := catalog.Default()
	for _, tmpl := range cat.Templates {
		rx := Prescription{Phase: tmpl.Phase, Level: models.LevelIntermediate}
		a := Assemble(tmpl, cat, "", rx)
		b := Assemble(tmpl, cat, "", rx)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: two assemblies differ", tmpl.ID)
		}
	}
}

// TestAssembleMaximalStrengthAdvanced verifies that main lifts in a push/pull/legs
// week for an advanced client in MAXIMAL_STRENGTH get round(4×1.2)=5 sets and
// that four weeks expand to twelve non-empty days.
func TestAssembleMaximalStrengthAdvanced(t *testing.T) {
	cat := catalog.Default()
	days := Assemble(template(t, cat, "ppl-strength"), cat, models.SplitPushPullLegs,
		Prescription{Phase: models.PhaseMaximalStrength, Level: models.LevelAdvanced})
	program := ExpandWeeks(days, 4)

	if len(program) != 12 {
		t.Fatalf("days = %d, want 12", len(program))
	}
	for i, d := range program {
		if len(d.Exercises) == 0 {
			t.Errorf("day %d is empty", i)
		}
		if want := i/3 + 1; d.Week != want {
			t.Errorf("day %d week = %d, want %d", i, d.Week, want)
		}
		main := blockOf(d, models.BlockMain)
		if len(main) == 0 {
			t.Errorf("day %d has no main lifts", i)
		}
		for _, we := range main {
			if we.Variables.Sets != 5 {
				t.Errorf("day %d %s: sets = %d, want 5", i, we.ExerciseID, we.Variables.Sets)
			}
		}
	}

	names := map[string]bool{}
	for _, we := range blockOf(days[0], models.BlockMain) {
		names[we.ExerciseID] = true
	}
	if !names["barbell-bench-press"] {
		t.Errorf("push day main lifts = %v, want bench press included", names)
	}
}

// TestExpandWeeksCopies verifies that expanded days do not share variable
// pointers with the source split.
func TestExpandWeeksCopies(t *testing.T) {
	cat := catalog.Default()
	days := Assemble(template(t, cat, "ppl-strength"), cat, "", Prescription{})
	weeks := ExpandWeeks(days, 2)
	*weeks[0].Exercises[4].Variables.Reps = 99
	if *weeks[3].Exercises[4].Variables.Reps == 99 || *days[0].Exercises[4].Variables.Reps == 99 {
		t.Error("expanded weeks share reps pointers")
	}
	if got := len(ExpandWeeks(days, 0)); got != len(days) {
		t.Errorf("ExpandWeeks(0) = %d days, want %d", got, len(days))
	}
}
