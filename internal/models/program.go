package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SplitType is the strategy used to distribute muscle groups across days.
type SplitType string

const (
	SplitAuto         SplitType = "auto"
	SplitFullBody     SplitType = "full-body"
	SplitUpperLower   SplitType = "upper-lower"
	SplitPushPullLegs SplitType = "push-pull-legs"
	SplitBroSplit     SplitType = "bro-split"
	SplitCustom       SplitType = "custom"
)

// ParseSplitType normalizes a split label. Unknown values return "".
func ParseSplitType(s string) SplitType {
	switch SplitType(strings.ToLower(strings.TrimSpace(s))) {
	case SplitAuto:
		return SplitAuto
	case SplitFullBody:
		return SplitFullBody
	case SplitUpperLower:
		return SplitUpperLower
	case SplitPushPullLegs:
		return SplitPushPullLegs
	case SplitBroSplit:
		return SplitBroSplit
	case SplitCustom:
		return SplitCustom
	}
	return ""
}

// ProgramTemplate is an immutable, reusable program shape.
type ProgramTemplate struct {
	ID              string    `json:"id" yaml:"id"`
	Name            string    `json:"name" yaml:"name"`
	Description     string    `json:"description" yaml:"description"`
	Goal            string    `json:"goal" yaml:"goal"`
	ExperienceLevel Level     `json:"experienceLevel" yaml:"experience_level"`
	DurationWeeks   int       `json:"durationWeeks" yaml:"duration_weeks"`
	Phase           Phase     `json:"optPhase" yaml:"phase"`
	SplitType       SplitType `json:"splitType" yaml:"split_type"`
	WorkoutsPerWeek int       `json:"workoutsPerWeek" yaml:"workouts_per_week"`
	FocusAreas      []string  `json:"focusAreas" yaml:"focus_areas"`
	Equipment       []string  `json:"equipment" yaml:"equipment"`
	Intensity       string    `json:"intensity" yaml:"intensity"`
}

// Block is the role a workout exercise plays within its day.
type Block string

const (
	BlockWarmup    Block = "warmup"
	BlockMain      Block = "main"
	BlockAccessory Block = "accessory"
	BlockCooldown  Block = "cooldown"
)

// WorkoutExercise is one prescribed exercise inside a WorkoutDay.
type WorkoutExercise struct {
	ExerciseID   string         `json:"exerciseId"`
	ExerciseName string         `json:"exerciseName"`
	Block        Block          `json:"block"`
	Order        int            `json:"order"`
	Variables    AcuteVariables `json:"variables"`
	Notes        string         `json:"notes,omitempty"`
}

// WorkoutDay is an ordered list of exercises. Its identity is its position
// within the program.
type WorkoutDay struct {
	Week      int               `json:"week,omitempty"`
	Name      string            `json:"name"`
	Exercises []WorkoutExercise `json:"exercises"`
}

// ProgramStatus is the lifecycle state of a program.
type ProgramStatus string

const (
	StatusDraft     ProgramStatus = "DRAFT"
	StatusActive    ProgramStatus = "ACTIVE"
	StatusPaused    ProgramStatus = "PAUSED"
	StatusCompleted ProgramStatus = "COMPLETED"
	StatusArchived  ProgramStatus = "ARCHIVED"
)

// Program is the top-level artifact written to the program store.
type Program struct {
	ID             uuid.UUID     `json:"id"`
	ClientID       string        `json:"clientId"`
	TemplateID     string        `json:"templateId,omitempty"`
	Name           string        `json:"name"`
	PrimaryGoal    string        `json:"primaryGoal"`
	SecondaryGoals []string      `json:"secondaryGoals"`
	Phase          Phase         `json:"optPhase"`
	DurationWeeks  int           `json:"duration"`
	Workouts       []WorkoutDay  `json:"workouts"`
	Notes          string        `json:"notes,omitempty"`
	Status         ProgramStatus `json:"status"`
	StartDate      time.Time     `json:"startDate"`
	EndDate        *time.Time    `json:"endDate,omitempty"`
	UsedAI         bool          `json:"usedAI"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// ProgramSummary is a program without its workouts, used for listings.
type ProgramSummary struct {
	ID            uuid.UUID     `json:"id"`
	ClientID      string        `json:"clientId"`
	Name          string        `json:"name"`
	Phase         Phase         `json:"optPhase"`
	DurationWeeks int           `json:"duration"`
	Status        ProgramStatus `json:"status"`
	StartDate     time.Time     `json:"startDate"`
	EndDate       *time.Time    `json:"endDate,omitempty"`
	UsedAI        bool          `json:"usedAI"`
	CreatedAt     time.Time     `json:"createdAt"`
}
