package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/claude/optcoach/internal/models"
	"gopkg.in/yaml.v3"
)

// Catalog is the immutable configuration the pipeline runs on: the exercise
// library, the OPT phase guidelines and the program templates. It is built
// once at startup and passed explicitly; nothing mutates it afterwards.
type Catalog struct {
	Exercises  []models.Exercise
	Templates  []models.ProgramTemplate
	Guidelines map[models.Phase]models.PhaseGuideline
}

// file is the on-disk YAML shape. Sections left empty keep the defaults.
type file struct {
	Exercises  []models.Exercise        `yaml:"exercises"`
	Templates  []models.ProgramTemplate `yaml:"templates"`
	Guidelines []models.PhaseGuideline  `yaml:"guidelines"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	guidelines := make(map[models.Phase]models.PhaseGuideline, len(defaultGuidelines))
	for _, g := range defaultGuidelines {
		guidelines[g.Phase] = g
	}
	return &Catalog{
		Exercises:  defaultExercises(),
		Templates:  defaultTemplates(),
		Guidelines: guidelines,
	}
}

// Load reads a YAML catalog file. Any section the file omits falls back to
// the built-in defaults. An empty path returns Default().
func Load(path string) (*Catalog, error) {
	cat := Default()
	if path == "" {
		return cat, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}

	if len(f.Exercises) > 0 {
		cat.Exercises = f.Exercises
	}
	if len(f.Templates) > 0 {
		cat.Templates = f.Templates
	}
	if len(f.Guidelines) > 0 {
		cat.Guidelines = make(map[models.Phase]models.PhaseGuideline, len(f.Guidelines))
		for _, g := range f.Guidelines {
			phase := models.ParsePhase(string(g.Phase))
			if phase == "" {
				return nil, fmt.Errorf("catalog validation: unknown guideline phase %q", g.Phase)
			}
			g.Phase = phase
			cat.Guidelines[phase] = g
		}
	}

	if err := cat.validate(); err != nil {
		return nil, fmt.Errorf("catalog validation: %w", err)
	}
	return cat, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]bool, len(c.Exercises))
	for _, ex := range c.Exercises {
		if ex.ID == "" {
			return fmt.Errorf("exercise %q has no id", ex.Name)
		}
		if seen[ex.ID] {
			return fmt.Errorf("duplicate exercise id %q", ex.ID)
		}
		seen[ex.ID] = true
		if !ex.Category.Valid() {
			return fmt.Errorf("exercise %q: unknown category %q", ex.ID, ex.Category)
		}
		if ex.Defaults.Sets < 1 {
			return fmt.Errorf("exercise %q: default sets must be at least 1", ex.ID)
		}
	}

	tseen := make(map[string]bool, len(c.Templates))
	for _, t := range c.Templates {
		if t.ID == "" {
			return fmt.Errorf("template %q has no id", t.Name)
		}
		if tseen[t.ID] {
			return fmt.Errorf("duplicate template id %q", t.ID)
		}
		tseen[t.ID] = true
		if models.ParseSplitType(string(t.SplitType)) == "" {
			return fmt.Errorf("template %q: unknown split type %q", t.ID, t.SplitType)
		}
	}
	return nil
}

// Exercise looks up an exercise by ID.
func (c *Catalog) Exercise(id string) (models.Exercise, bool) {
	for _, ex := range c.Exercises {
		if ex.ID == id {
			return ex, true
		}
	}
	return models.Exercise{}, false
}

// FindExercise resolves a free-text exercise name to a catalog entry: an
// exact case-insensitive match wins, then the first entry whose name
// contains the query or is contained in it.
func (c *Catalog) FindExercise(name string) (models.Exercise, bool) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return models.Exercise{}, false
	}
	for _, ex := range c.Exercises {
		if strings.ToLower(ex.Name) == q {
			return ex, true
		}
	}
	for _, ex := range c.Exercises {
		n := strings.ToLower(ex.Name)
		if strings.Contains(n, q) || strings.Contains(q, n) {
			return ex, true
		}
	}
	return models.Exercise{}, false
}

// Template looks up a template by ID.
func (c *Catalog) Template(id string) (models.ProgramTemplate, bool) {
	for _, t := range c.Templates {
		if t.ID == id {
			return t, true
		}
	}
	return models.ProgramTemplate{}, false
}

// Guideline returns the guideline for a phase.
func (c *Catalog) Guideline(phase models.Phase) (models.PhaseGuideline, bool) {
	g, ok := c.Guidelines[phase]
	return g, ok
}

// Recommend picks the template that best fits a goal and experience level.
// A goal match outweighs a level match; ties keep catalog order. The zero
// template and false are returned only when the catalog has no templates.
func (c *Catalog) Recommend(goal string, level models.Level) (models.ProgramTemplate, bool) {
	if len(c.Templates) == 0 {
		return models.ProgramTemplate{}, false
	}
	want := GoalTag(goal)
	best, bestScore := 0, -1
	for i, t := range c.Templates {
		score := 0
		if GoalTag(t.Goal) == want {
			score += 2
		}
		if level != "" && t.ExperienceLevel == level {
			score++
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return c.Templates[best], true
}

// Goal tags used to classify free-text goals.
const (
	GoalStrength    = "strength"
	GoalPower       = "power"
	GoalHypertrophy = "hypertrophy"
	GoalEndurance   = "endurance"
	GoalWeightLoss  = "weight-loss"
	GoalGeneral     = "general"
)

// GoalTag classifies free-text goal text into one of the goal tags.
func GoalTag(goal string) string {
	g := strings.ToLower(goal)
	switch {
	case strings.Contains(g, "weight loss"), strings.Contains(g, "weight-loss"),
		strings.Contains(g, "weight_loss"), strings.Contains(g, "fat"):
		return GoalWeightLoss
	case strings.Contains(g, "endurance"), strings.Contains(g, "stamina"):
		return GoalEndurance
	case strings.Contains(g, "hypertrophy"), strings.Contains(g, "muscle"),
		strings.Contains(g, "muscular"):
		return GoalHypertrophy
	case strings.Contains(g, "power"), strings.Contains(g, "athletic"):
		return GoalPower
	case strings.Contains(g, "strength"):
		return GoalStrength
	}
	return GoalGeneral
}
