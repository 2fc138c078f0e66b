package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/claude/optcoach/internal/models"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestDefaultIsValid verifies that the built-in catalog passes its own validation
// and covers every OPT phase.
func TestDefaultIsValid(t *testing.T) {
	cat := Default()
	if err := cat.validate(); err != nil {
		t.Fatalf("default catalog invalid: %v", err)
	}
	for _, p := range models.Phases {
		if _, ok := cat.Guideline(p); !ok {
			t.Errorf("missing guideline for %s", p)
		}
	}
	if len(cat.Templates) == 0 {
		t.Fatal("no templates")
	}
}

// TestDefaultReturnsFreshCopies verifies that mutating one catalog does not leak
// into the next Default() call.
func TestDefaultReturnsFreshCopies(t *testing.T) {
	a := Default()
	a.Exercises[0].Name = "changed"
	b := Default()
	if b.Exercises[0].Name == "changed" {
		t.Error("Default() shares exercise storage between calls")
	}
}

// TestDefaultExerciseBlocksPresent verifies that the library holds enough entries
// for each block the assembler fills.
func TestDefaultExerciseBlocksPresent(t *testing.T) {
	counts := map[models.Category]int{}
	stretches, rolls := 0, 0
	for _, ex := range Default().Exercises {
		counts[ex.Category]++
		name := strings.ToLower(ex.Name)
		if strings.Contains(name, "stretch") {
			stretches++
		}
		if strings.Contains(name, "foam roll") {
			rolls++
		}
	}
	if counts[models.CategoryCardio] < 1 {
		t.Error("no cardio exercises")
	}
	if counts[models.CategoryMobility] < 2 {
		t.Error("fewer than two mobility exercises")
	}
	if stretches < 3 {
		t.Errorf("stretches = %d, want >= 3", stretches)
	}
	if rolls < 1 {
		t.Error("no foam roll exercises")
	}
}

// TestLoadEmptyPath verifies an empty path loads the built-in catalog.
func TestLoadEmptyPath(t *testing.T) {
	cat, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cat.Exercises) != len(Default().Exercises) {
		t.Errorf("exercises = %d, want default count", len(cat.Exercises))
	}
}

// TestLoadOverridesSections verifies that sections present in the file replace the
// defaults while omitted sections keep them.
func TestLoadOverridesSections(t *testing.T) {
	path := writeTemp(t, `
templates:
  - id: custom-strength
    name: Custom Strength
    goal: Strength
    experience_level: INTERMEDIATE
    duration_weeks: 6
    phase: MAXIMAL_STRENGTH
    split_type: push-pull-legs
    workouts_per_week: 3
guidelines:
  - phase: HYPERTROPHY
    sets: {min: 3, max: 4}
    reps: {min: 8, max: 10}
    intensity: {min: 70, max: 80}
    rest_time: {min: 45, max: 90}
    rpe: {min: 7, max: 8}
    tempo: "3-0-1"
`)
	cat, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cat.Templates) != 1 || cat.Templates[0].ID != "custom-strength" {
		t.Errorf("templates = %+v, want only custom-strength", cat.Templates)
	}
	if len(cat.Exercises) != len(Default().Exercises) {
		t.Errorf("exercises were replaced, want defaults kept")
	}
	g, ok := cat.Guideline(models.PhaseMuscularDevelopment)
	if !ok {
		t.Fatal("HYPERTROPHY guideline not stored under MUSCULAR_DEVELOPMENT")
	}
	if g.Tempo != "3-0-1" || g.Sets.Min != 3 {
		t.Errorf("guideline = %+v", g)
	}
	if _, ok := cat.Guideline(models.PhasePower); ok {
		t.Error("guidelines section should replace the defaults entirely")
	}
}

// TestLoadRejectsInvalid verifies malformed catalogs fail the load with a
// descriptive error.
func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "duplicate exercise",
			yaml: `
exercises:
  - {id: a, name: A, category: STRENGTH, defaults: {sets: 3}}
  - {id: a, name: B, category: STRENGTH, defaults: {sets: 3}}
`,
			want: "duplicate exercise id",
		},
		{
			name: "bad category",
			yaml: `
exercises:
  - {id: a, name: A, category: YOGA, defaults: {sets: 3}}
`,
			want: "unknown category",
		},
		{
			name: "zero sets",
			yaml: `
exercises:
  - {id: a, name: A, category: STRENGTH}
`,
			want: "default sets",
		},
		{
			name: "bad split",
			yaml: `
templates:
  - {id: t, name: T, split_type: twice-a-day}
`,
			want: "unknown split type",
		},
		{
			name: "bad phase",
			yaml: `
guidelines:
  - {phase: CARDIO}
`,
			want: "unknown guideline phase",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeTemp(t, tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want substring %q", err, tt.want)
			}
		})
	}
}

// TestLoadMissingFile verifies a missing catalog file is an error, not the
// defaults.
func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

// TestFindExercise verifies name lookup ignores case and padding and falls
// back to a substring match.
func TestFindExercise(t *testing.T) {
	cat := Default()
	tests := []struct {
		query string
		want  string
		ok    bool
	}{
		{"Barbell Back Squat", "barbell-back-squat", true},
		{"  barbell bench press ", "barbell-bench-press", true},
		{"Goblet Squat", "goblet-squat", true},
		{"Bench Press", "barbell-bench-press", true},
		{"Underwater Basket Weaving", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		ex, ok := cat.FindExercise(tt.query)
		if ok != tt.ok || ex.ID != tt.want {
			t.Errorf("FindExercise(%q) = %q, %v; want %q, %v", tt.query, ex.ID, ok, tt.want, tt.ok)
		}
	}
}

// TestGoalTag verifies free-text goals map onto catalog goal tags.
func TestGoalTag(t *testing.T) {
	tests := []struct {
		goal string
		want string
	}{
		{"Build Strength", GoalStrength},
		{"Muscle Gain", GoalHypertrophy},
		{"HYPERTROPHY", GoalHypertrophy},
		{"Lose fat", GoalWeightLoss},
		{"weight_loss", GoalWeightLoss},
		{"Endurance", GoalEndurance},
		{"Strength Endurance", GoalEndurance},
		{"Athletic Power", GoalPower},
		{"feel better", GoalGeneral},
	}
	for _, tt := range tests {
		if got := GoalTag(tt.goal); got != tt.want {
			t.Errorf("GoalTag(%q) = %q, want %q", tt.goal, got, tt.want)
		}
	}
}

// TestRecommend verifies that a goal match outweighs a level match and that
// ties keep catalog order.
func TestRecommend(t *testing.T) {
	cat := Default()
	tests := []struct {
		goal  string
		level models.Level
		want  string
	}{
		{"strength", models.LevelIntermediate, "ppl-strength"},
		{"hypertrophy", models.LevelAdvanced, "ppl-hypertrophy"},
		{"muscle gain", models.LevelIntermediate, "upper-lower-hypertrophy"},
		{"lose fat", models.LevelBeginner, "full-body-fat-loss"},
		{"power", models.LevelBeginner, "athletic-power"},
		{"something vague", models.LevelBeginner, "full-body-stabilization"},
	}
	for _, tt := range tests {
		got, ok := cat.Recommend(tt.goal, tt.level)
		if !ok || got.ID != tt.want {
			t.Errorf("Recommend(%q, %s) = %q, want %q", tt.goal, tt.level, got.ID, tt.want)
		}
	}

	empty := &Catalog{}
	if _, ok := empty.Recommend("strength", models.LevelBeginner); ok {
		t.Error("Recommend on empty catalog should report false")
	}
}
