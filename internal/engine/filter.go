package engine

import (
	"strings"

	"github.com/fentz26/taskview/internal/models"
)

// Filter returns the tasks whose title, description or status contains term,
// ignoring case. Order is preserved and the input is never modified. An empty
// term matches every task.
func Filter(tasks []models.Task, term string) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	if term == "" {
		return append(out, tasks...)
	}

	needle := strings.ToLower(term)
	for _, t := range tasks {
		if matches(t, needle) {
			out = append(out, t)
		}
	}
	return out
}

// needle must already be lower case.
func matches(t models.Task, needle string) bool {
	return strings.Contains(strings.ToLower(t.Title), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle) ||
		strings.Contains(strings.ToLower(t.Status), needle)
}
