package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/optcoach/internal/builder"
	"github.com/claude/optcoach/internal/catalog"
	"github.com/claude/optcoach/internal/models"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// optcoach-plan prints a template-assembled program as JSON without a
// database or a language model.
func main() {
	catalogPath := flag.String("catalog", "", "catalog YAML file (default: built-in catalog)")
	templateID := flag.String("template", "", "template ID (default: best match for -goal and -level)")
	goal := flag.String("goal", "general fitness", "goal used to pick a template")
	phaseFlag := flag.String("phase", "", "OPT phase (default: the template's phase)")
	levelFlag := flag.String("level", "", "experience level (default: the template's level)")
	splitFlag := flag.String("split", "", "split type (default: the template's split)")
	weeks := flag.Int("weeks", 1, "number of weeks to expand")
	list := flag.Bool("list", false, "list templates and exit")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("optcoach-plan", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		log.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}

	if *list {
		for _, t := range cat.Templates {
			fmt.Printf("%-24s %-22s %-13s %-24s %s\n", t.ID, t.Goal, t.ExperienceLevel, t.Phase, t.SplitType)
		}
		return
	}

	level := models.ParseLevel(*levelFlag)
	if *levelFlag != "" && level == "" {
		log.Error("unknown level", "level", *levelFlag)
		os.Exit(1)
	}

	var tmpl models.ProgramTemplate
	var ok bool
	if *templateID != "" {
		tmpl, ok = cat.Template(*templateID)
	} else {
		tmpl, ok = cat.Recommend(*goal, level)
	}
	if !ok {
		log.Error("no matching template", "template", *templateID, "goal", *goal)
		os.Exit(1)
	}
	if level == "" {
		level = tmpl.ExperienceLevel
	}

	phase := tmpl.Phase
	if *phaseFlag != "" {
		if phase = models.ParsePhase(*phaseFlag); phase == "" {
			log.Error("unknown phase", "phase", *phaseFlag)
			os.Exit(1)
		}
	}

	requested := models.ParseSplitType(*splitFlag)
	if *splitFlag != "" && requested == "" {
		log.Error("unknown split", "split", *splitFlag)
		os.Exit(1)
	}
	split := builder.ResolveSplit(tmpl, requested)

	days := builder.Assemble(tmpl, cat, split, builder.Prescription{Phase: phase, Level: level})
	out := struct {
		Template string              `json:"templateId"`
		Split    models.SplitType    `json:"splitType"`
		Phase    models.Phase        `json:"optPhase"`
		Level    models.Level        `json:"experienceLevel"`
		Workouts []models.WorkoutDay `json:"workouts"`
	}{tmpl.ID, split, phase, level, builder.ExpandWeeks(days, *weeks)}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Error("encoding plan", "error", err)
		os.Exit(1)
	}
}
