package store

import (
	"fmt"
	"os"

	"github.com/fentz26/taskview/internal/models"
	"gopkg.in/yaml.v3"
)

// LoadFixtures reads a task list from a YAML or JSON file. The file holds
// either a bare list of tasks or a mapping with a "tasks" key.
func LoadFixtures(path string) ([]models.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures: %w", err)
	}

	var tasks []models.Task
	if err := yaml.Unmarshal(data, &tasks); err == nil {
		return tasks, nil
	}

	var doc struct {
		Tasks []models.Task `yaml:"tasks"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing fixtures: %w", err)
	}
	return doc.Tasks, nil
}
