// Package habits holds the static habit catalog. Habits are defined
// once here and referenced by id from habit logs; they are not
// created or mutated at runtime.
package habits

import "fmt"

// Habit is the definition of a trackable habit.
type Habit struct {
	ID          string
	Name        string
	Description string
}

var catalog = []Habit{
	{ID: "workout", Name: "45 min workout", Description: "45 min workout (or minimum 20 min)"},
	{ID: "walk_after_meals", Name: "10 min walk after meals", Description: "10 min walk after meals"},
	{ID: "eat_clean", Name: "Eat clean", Description: "Eat clean; no junk"},
	{ID: "sleep_timing", Name: "Sleep timing", Description: "Last food at least 4 hrs before bed"},
	{ID: "reading", Name: "30 min reading", Description: "30 min reading"},
}

// All returns the configured habits in declaration order.
func All() []Habit {
	out := make([]Habit, len(catalog))
	copy(out, catalog)
	return out
}

// Get returns the habit with the given id.
func Get(id string) (Habit, error) {
	for _, h := range catalog {
		if h.ID == id {
			return h, nil
		}
	}
	return Habit{}, fmt.Errorf("habit not found: %s", id)
}

// IDs returns all habit ids in declaration order.
func IDs() []string {
	ids := make([]string, len(catalog))
	for i, h := range catalog {
		ids[i] = h.ID
	}
	return ids
}
