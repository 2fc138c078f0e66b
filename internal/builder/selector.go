// Package builder turns catalog data into workout days: it selects exercises,
// prescribes acute variables and assembles them per split strategy.
package builder

import (
	"strings"

	"github.com/claude/optcoach/internal/models"
)

// UsedSet records exercise IDs already placed during one assembly pass.
// A fresh set is created per pass and never shared between requests.
type UsedSet map[string]struct{}

// NewUsedSet returns an empty set.
func NewUsedSet() UsedSet { return make(UsedSet) }

// Has reports whether id has been used.
func (u UsedSet) Has(id string) bool {
	_, ok := u[id]
	return ok
}

// Add marks id as used.
func (u UsedSet) Add(id string) { u[id] = struct{}{} }

// Criteria describes one selection slot.
type Criteria struct {
	// Keywords match as case-insensitive substrings of the exercise name.
	Keywords []string
	// Muscles match when any entry equals one of the exercise's muscle groups.
	Muscles []string
	// Categories restricts candidates to the slot's role. Empty allows all.
	Categories []models.Category
	// Max caps the number of selections.
	Max int
}

// Select returns up to c.Max exercises from library, in library order, that
// match a keyword or target muscle, belong to an allowed category and are not
// in used. Every returned exercise is added to used. Fewer than c.Max
// matches is not an error.
func Select(library []models.Exercise, c Criteria, used UsedSet) []models.Exercise {
	if c.Max <= 0 {
		return nil
	}
	keywords := lowerAll(c.Keywords)
	muscles := lowerAll(c.Muscles)

	var out []models.Exercise
	for _, ex := range library {
		if len(out) == c.Max {
			break
		}
		if used.Has(ex.ID) || !allowed(ex.Category, c.Categories) {
			continue
		}
		if !nameMatches(ex.Name, keywords) && !musclesIntersect(ex.MuscleGroups, muscles) {
			continue
		}
		used.Add(ex.ID)
		out = append(out, ex)
	}
	return out
}

func allowed(cat models.Category, cats []models.Category) bool {
	if len(cats) == 0 {
		return true
	}
	for _, c := range cats {
		if c == cat {
			return true
		}
	}
	return false
}

func nameMatches(name string, keywords []string) bool {
	n := strings.ToLower(name)
	for _, k := range keywords {
		if k != "" && strings.Contains(n, k) {
			return true
		}
	}
	return false
}

func musclesIntersect(groups, targets []string) bool {
	for _, g := range groups {
		g = strings.ToLower(g)
		for _, t := range targets {
			if g == t {
				return true
			}
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}
