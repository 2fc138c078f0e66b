package catalog

import "github.com/claude/optcoach/internal/models"

var defaultGuidelines = []models.PhaseGuideline{
	{
		Phase:     models.PhaseStabilizationEndurance,
		Sets:      models.Range{Min: 1, Max: 3},
		Reps:      models.Range{Min: 12, Max: 20},
		Intensity: models.Range{Min: 50, Max: 70},
		RestTime:  models.Range{Min: 0, Max: 90},
		RPE:       models.Range{Min: 5, Max: 7},
		Tempo:     "4-2-1",
	},
	{
		Phase:     models.PhaseStrengthEndurance,
		Sets:      models.Range{Min: 2, Max: 4},
		Reps:      models.Range{Min: 8, Max: 12},
		Intensity: models.Range{Min: 70, Max: 80},
		RestTime:  models.Range{Min: 0, Max: 60},
		RPE:       models.Range{Min: 6, Max: 8},
		Tempo:     "2-0-2",
	},
	{
		Phase:     models.PhaseMuscularDevelopment,
		Sets:      models.Range{Min: 3, Max: 5},
		Reps:      models.Range{Min: 6, Max: 12},
		Intensity: models.Range{Min: 75, Max: 85},
		RestTime:  models.Range{Min: 30, Max: 60},
		RPE:       models.Range{Min: 7, Max: 9},
		Tempo:     "2-0-2",
	},
	{
		Phase:     models.PhaseMaximalStrength,
		Sets:      models.Range{Min: 4, Max: 6},
		Reps:      models.Range{Min: 1, Max: 5},
		Intensity: models.Range{Min: 85, Max: 100},
		RestTime:  models.Range{Min: 180, Max: 300},
		RPE:       models.Range{Min: 8, Max: 10},
		Tempo:     "X-X-X",
	},
	{
		Phase:     models.PhasePower,
		Sets:      models.Range{Min: 3, Max: 5},
		Reps:      models.Range{Min: 1, Max: 5},
		Intensity: models.Range{Min: 85, Max: 100},
		RestTime:  models.Range{Min: 180, Max: 300},
		RPE:       models.Range{Min: 8, Max: 10},
		Tempo:     "X-X-X",
	},
}

func strength(id, name string, level models.Level, rest int, muscles []string, equipment ...string) models.Exercise {
	return models.Exercise{
		ID:           id,
		Name:         name,
		Category:     models.CategoryStrength,
		MuscleGroups: muscles,
		Equipment:    equipment,
		Difficulty:   level,
		Defaults: models.AcuteVariables{
			Sets:     3,
			Reps:     models.Int(10),
			RestTime: rest,
			RPE:      models.Int(7),
			Tempo:    "2-0-2",
		},
	}
}

func timed(id, name string, cat models.Category, seconds int, muscles []string, equipment ...string) models.Exercise {
	return models.Exercise{
		ID:           id,
		Name:         name,
		Category:     cat,
		MuscleGroups: muscles,
		Equipment:    equipment,
		Difficulty:   models.LevelBeginner,
		Defaults: models.AcuteVariables{
			Sets:     1,
			Duration: models.Int(seconds),
		},
	}
}

func drill(id, name string, cat models.Category, reps int, muscles []string, equipment ...string) models.Exercise {
	return models.Exercise{
		ID:           id,
		Name:         name,
		Category:     cat,
		MuscleGroups: muscles,
		Equipment:    equipment,
		Difficulty:   models.LevelBeginner,
		Defaults: models.AcuteVariables{
			Sets: 1,
			Reps: models.Int(reps),
		},
	}
}

func muscles(m ...string) []string { return m }

// defaultExercises builds a fresh copy of the built-in library. Order is
// significant: selection walks the library front to back.
func defaultExercises() []models.Exercise {
	list := []models.Exercise{
		// Compound lifts first so they win main-lift selection.
		strength("barbell-back-squat", "Barbell Back Squat", models.LevelIntermediate, 150,
			muscles("quadriceps", "glutes", "hamstrings"), "BARBELL", "SQUAT_RACK"),
		strength("barbell-bench-press", "Barbell Bench Press", models.LevelIntermediate, 150,
			muscles("chest", "triceps", "shoulders"), "BARBELL", "BENCH"),
		strength("barbell-deadlift", "Barbell Deadlift", models.LevelAdvanced, 180,
			muscles("hamstrings", "glutes", "lower back"), "BARBELL"),
		strength("barbell-overhead-press", "Barbell Overhead Press", models.LevelIntermediate, 120,
			muscles("shoulders", "triceps"), "BARBELL"),
		strength("barbell-bent-over-row", "Barbell Bent-Over Row", models.LevelIntermediate, 120,
			muscles("back", "lats", "biceps"), "BARBELL"),
		strength("pull-up", "Pull-Up", models.LevelIntermediate, 120,
			muscles("lats", "back", "biceps"), "PULL_UP_BAR"),
		strength("romanian-deadlift", "Romanian Deadlift", models.LevelIntermediate, 120,
			muscles("hamstrings", "glutes"), "BARBELL"),
		strength("incline-dumbbell-press", "Incline Dumbbell Press", models.LevelBeginner, 90,
			muscles("chest", "shoulders"), "DUMBBELL", "BENCH"),
		strength("lat-pulldown", "Lat Pulldown", models.LevelBeginner, 90,
			muscles("lats", "back", "biceps"), "CABLE"),
		strength("leg-press", "Leg Press", models.LevelBeginner, 120,
			muscles("quadriceps", "glutes"), "MACHINE"),
		strength("dumbbell-walking-lunge", "Dumbbell Walking Lunge", models.LevelBeginner, 90,
			muscles("quadriceps", "glutes", "hamstrings"), "DUMBBELL"),
		strength("seated-cable-row", "Seated Cable Row", models.LevelBeginner, 90,
			muscles("back", "lats", "biceps"), "CABLE"),
		strength("dumbbell-shoulder-press", "Seated Dumbbell Shoulder Press", models.LevelBeginner, 90,
			muscles("shoulders", "triceps"), "DUMBBELL", "BENCH"),
		strength("goblet-squat", "Dumbbell Goblet Squat", models.LevelBeginner, 90,
			muscles("quadriceps", "glutes"), "DUMBBELL"),
		strength("push-up", "Push-Up", models.LevelBeginner, 60,
			muscles("chest", "triceps", "core"), "BODYWEIGHT"),
		strength("single-arm-dumbbell-row", "Single-Arm Dumbbell Row", models.LevelBeginner, 60,
			muscles("back", "lats", "biceps"), "DUMBBELL", "BENCH"),

		// Accessories.
		strength("dumbbell-chest-fly", "Dumbbell Chest Fly", models.LevelBeginner, 60,
			muscles("chest"), "DUMBBELL", "BENCH"),
		strength("dumbbell-lateral-raise", "Dumbbell Lateral Raise", models.LevelBeginner, 60,
			muscles("shoulders"), "DUMBBELL"),
		strength("cable-triceps-pushdown", "Cable Triceps Pushdown", models.LevelBeginner, 60,
			muscles("triceps"), "CABLE"),
		strength("parallel-bar-dip", "Parallel Bar Dip", models.LevelIntermediate, 90,
			muscles("chest", "triceps"), "DIP_STATION"),
		strength("barbell-biceps-curl", "Barbell Biceps Curl", models.LevelBeginner, 60,
			muscles("biceps"), "BARBELL"),
		strength("cable-face-pull", "Cable Face Pull", models.LevelBeginner, 60,
			muscles("shoulders", "back"), "CABLE"),
		strength("dumbbell-hammer-curl", "Dumbbell Hammer Curl", models.LevelBeginner, 60,
			muscles("biceps", "forearms"), "DUMBBELL"),
		strength("rear-delt-fly", "Dumbbell Rear Delt Fly", models.LevelBeginner, 60,
			muscles("shoulders", "back"), "DUMBBELL"),
		strength("lying-leg-curl", "Lying Leg Curl", models.LevelBeginner, 60,
			muscles("hamstrings"), "MACHINE"),
		strength("leg-extension", "Leg Extension", models.LevelBeginner, 60,
			muscles("quadriceps"), "MACHINE"),
		strength("standing-calf-raise", "Standing Calf Raise", models.LevelBeginner, 45,
			muscles("calves"), "MACHINE"),
		strength("barbell-hip-thrust", "Barbell Hip Thrust", models.LevelIntermediate, 90,
			muscles("glutes", "hamstrings"), "BARBELL", "BENCH"),

		// Power and core.
		drill("box-jump", "Box Jump", models.CategoryPower, 5, muscles("quadriceps", "glutes", "calves"), "PLYO_BOX"),
		drill("kettlebell-swing", "Kettlebell Swing", models.CategoryPower, 15, muscles("glutes", "hamstrings", "full body"), "KETTLEBELL"),
		drill("medicine-ball-slam", "Medicine Ball Slam", models.CategoryPower, 10, muscles("full body", "core"), "MEDICINE_BALL"),
		timed("front-plank", "Front Plank", models.CategoryCore, 30, muscles("core")),
		drill("dead-bug", "Dead Bug", models.CategoryCore, 10, muscles("core")),
		drill("pallof-press", "Cable Pallof Press", models.CategoryCore, 10, muscles("core"), "CABLE"),
		drill("single-leg-balance-reach", "Single-Leg Balance Reach", models.CategoryBalance, 8, muscles("glutes", "core")),
		drill("agility-ladder-shuffle", "Agility Ladder Shuffle", models.CategorySAQ, 4, muscles("calves", "quadriceps"), "AGILITY_LADDER"),

		// Warm-up: cardio.
		timed("treadmill-brisk-walk", "Treadmill Brisk Walk", models.CategoryCardio, 300, muscles("full body"), "TREADMILL"),
		timed("stationary-bike", "Stationary Bike", models.CategoryCardio, 300, muscles("quadriceps", "calves"), "BIKE"),
		timed("rowing-machine", "Rowing Machine", models.CategoryCardio, 300, muscles("full body"), "ROWER"),
		timed("jump-rope", "Jump Rope", models.CategoryCardio, 180, muscles("calves", "shoulders"), "JUMP_ROPE"),

		// Warm-up: mobility.
		drill("arm-circles", "Arm Circles", models.CategoryMobility, 15, muscles("shoulders")),
		drill("hip-circles", "Hip Circles", models.CategoryMobility, 10, muscles("glutes", "hips")),
		drill("cat-cow", "Cat-Cow", models.CategoryMobility, 10, muscles("back", "core")),
		drill("thoracic-rotation", "Quadruped Thoracic Rotation", models.CategoryMobility, 8, muscles("back")),
		drill("hip-opener", "90/90 Hip Opener", models.CategoryMobility, 8, muscles("hips", "glutes")),
		drill("ankle-mobility-rocks", "Ankle Mobility Rocks", models.CategoryMobility, 10, muscles("calves")),

		// Warm-up: dynamic movement.
		drill("leg-swings", "Leg Swings", models.CategoryMobility, 10, muscles("hips", "hamstrings")),
		drill("inchworm", "Inchworm", models.CategoryMobility, 6, muscles("hamstrings", "core", "shoulders")),
		drill("high-knees", "High Knees", models.CategorySAQ, 20, muscles("quadriceps", "hips")),
		drill("butt-kicks", "Butt Kicks", models.CategorySAQ, 20, muscles("hamstrings")),

		// Cooldown: static stretches.
		timed("doorway-chest-stretch", "Doorway Chest Stretch", models.CategoryFlexibility, 30, muscles("chest", "shoulders")),
		timed("kneeling-lat-stretch", "Kneeling Lat Stretch", models.CategoryFlexibility, 30, muscles("lats")),
		timed("standing-hamstring-stretch", "Standing Hamstring Stretch", models.CategoryFlexibility, 30, muscles("hamstrings")),
		timed("standing-quad-stretch", "Standing Quad Stretch", models.CategoryFlexibility, 30, muscles("quadriceps")),
		timed("kneeling-hip-flexor-stretch", "Kneeling Hip Flexor Stretch", models.CategoryFlexibility, 30, muscles("hips")),
		timed("overhead-triceps-stretch", "Overhead Triceps Stretch", models.CategoryFlexibility, 30, muscles("triceps")),
		timed("childs-pose-stretch", "Child's Pose Stretch", models.CategoryFlexibility, 45, muscles("back", "lats")),
		timed("figure-four-glute-stretch", "Figure-Four Glute Stretch", models.CategoryFlexibility, 30, muscles("glutes")),
		timed("wall-calf-stretch", "Wall Calf Stretch", models.CategoryFlexibility, 30, muscles("calves")),

		// Cooldown: foam rolling.
		timed("foam-roll-quadriceps", "Foam Roll Quadriceps", models.CategoryFlexibility, 60, muscles("quadriceps"), "FOAM_ROLLER"),
		timed("foam-roll-thoracic-spine", "Foam Roll Thoracic Spine", models.CategoryFlexibility, 60, muscles("back"), "FOAM_ROLLER"),
		timed("foam-roll-calves", "Foam Roll Calves", models.CategoryFlexibility, 60, muscles("calves"), "FOAM_ROLLER"),
		timed("foam-roll-it-band", "Foam Roll IT Band", models.CategoryFlexibility, 60, muscles("hips", "quadriceps"), "FOAM_ROLLER"),
	}

	list[0].Instructions = "Brace, sit between the hips, drive up through the mid-foot."
	list[1].Instructions = "Retract the shoulder blades, touch the lower chest, press to lockout."
	list[2].Instructions = "Hinge with a neutral spine, push the floor away, lock out with the glutes."
	return list
}

func defaultTemplates() []models.ProgramTemplate {
	return []models.ProgramTemplate{
		{
			ID:              "ppl-strength",
			Name:            "Push/Pull/Legs Strength",
			Description:     "Three-day barbell-focused split built around the big compound lifts.",
			Goal:            "Strength",
			ExperienceLevel: models.LevelIntermediate,
			DurationWeeks:   12,
			Phase:           models.PhaseMaximalStrength,
			SplitType:       models.SplitPushPullLegs,
			WorkoutsPerWeek: 3,
			FocusAreas:      []string{"compound lifts", "maximal strength"},
			Equipment:       []string{"BARBELL", "DUMBBELL", "CABLE"},
			Intensity:       "HIGH",
		},
		{
			ID:              "ppl-hypertrophy",
			Name:            "Push/Pull/Legs Muscle Builder",
			Description:     "Higher-volume push/pull/legs for experienced lifters chasing size.",
			Goal:            "Hypertrophy",
			ExperienceLevel: models.LevelAdvanced,
			DurationWeeks:   12,
			Phase:           models.PhaseMuscularDevelopment,
			SplitType:       models.SplitPushPullLegs,
			WorkoutsPerWeek: 6,
			FocusAreas:      []string{"muscle size", "volume"},
			Equipment:       []string{"BARBELL", "DUMBBELL", "CABLE", "MACHINE"},
			Intensity:       "HIGH",
		},
		{
			ID:              "upper-lower-hypertrophy",
			Name:            "Upper/Lower Hypertrophy",
			Description:     "Four days a week alternating upper and lower body sessions.",
			Goal:            "Muscle Gain",
			ExperienceLevel: models.LevelIntermediate,
			DurationWeeks:   8,
			Phase:           models.PhaseMuscularDevelopment,
			SplitType:       models.SplitUpperLower,
			WorkoutsPerWeek: 4,
			FocusAreas:      []string{"muscle size", "balanced development"},
			Equipment:       []string{"BARBELL", "DUMBBELL", "CABLE", "MACHINE"},
			Intensity:       "MODERATE",
		},
		{
			ID:              "upper-lower-foundations",
			Name:            "Upper/Lower Foundations",
			Description:     "Supersetted upper/lower sessions that bridge stability into strength.",
			Goal:            "Strength Endurance",
			ExperienceLevel: models.LevelBeginner,
			DurationWeeks:   8,
			Phase:           models.PhaseStrengthEndurance,
			SplitType:       models.SplitUpperLower,
			WorkoutsPerWeek: 4,
			FocusAreas:      []string{"work capacity", "technique"},
			Equipment:       []string{"DUMBBELL", "CABLE", "MACHINE"},
			Intensity:       "MODERATE",
		},
		{
			ID:              "full-body-stabilization",
			Name:            "Full-Body Stabilization",
			Description:     "Entry-level full-body program emphasizing control and posture.",
			Goal:            "General Fitness",
			ExperienceLevel: models.LevelBeginner,
			DurationWeeks:   4,
			Phase:           models.PhaseStabilizationEndurance,
			SplitType:       models.SplitFullBody,
			WorkoutsPerWeek: 3,
			FocusAreas:      []string{"stability", "posture"},
			Equipment:       []string{"DUMBBELL", "BODYWEIGHT"},
			Intensity:       "LOW",
		},
		{
			ID:              "full-body-endurance",
			Name:            "Full-Body Endurance",
			Description:     "High-rep full-body sessions for muscular endurance.",
			Goal:            "Endurance",
			ExperienceLevel: models.LevelBeginner,
			DurationWeeks:   6,
			Phase:           models.PhaseStabilizationEndurance,
			SplitType:       models.SplitFullBody,
			WorkoutsPerWeek: 3,
			FocusAreas:      []string{"muscular endurance", "conditioning"},
			Equipment:       []string{"DUMBBELL", "BODYWEIGHT"},
			Intensity:       "MODERATE",
		},
		{
			ID:              "full-body-fat-loss",
			Name:            "Fat-Loss Circuit",
			Description:     "Eight-movement full-body circuit with short rest.",
			Goal:            "Weight Loss",
			ExperienceLevel: models.LevelBeginner,
			DurationWeeks:   8,
			Phase:           models.PhaseStrengthEndurance,
			SplitType:       models.SplitFullBody,
			WorkoutsPerWeek: 3,
			FocusAreas:      []string{"calorie burn", "conditioning"},
			Equipment:       []string{"DUMBBELL", "KETTLEBELL", "BODYWEIGHT"},
			Intensity:       "MODERATE",
		},
		{
			ID:              "athletic-power",
			Name:            "Athletic Power",
			Description:     "Strength-power supersets on a push/pull/legs frame.",
			Goal:            "Power",
			ExperienceLevel: models.LevelAdvanced,
			DurationWeeks:   6,
			Phase:           models.PhasePower,
			SplitType:       models.SplitPushPullLegs,
			WorkoutsPerWeek: 3,
			FocusAreas:      []string{"rate of force development", "athleticism"},
			Equipment:       []string{"BARBELL", "PLYO_BOX", "MEDICINE_BALL"},
			Intensity:       "HIGH",
		},
	}
}
