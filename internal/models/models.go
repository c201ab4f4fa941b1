// Package models defines the core domain types for taskview.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TaskID identifies a task within a collection. Task APIs send it either as
// a JSON string or a JSON number; both decode to the same text and it always
// encodes as a string.
type TaskID string

func (id TaskID) String() string { return string(id) }

// UnmarshalJSON accepts a string, a number or null.
func (id *TaskID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TaskID(s)
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return fmt.Errorf("task id must be a string or number, got %s", data)
	}
	*id = TaskID(n.String())
	return nil
}

// Task is a single to-do record as served by the task API.
// Status and Priority are free-form text ("open", "done", "high", ...) and
// DueDate is kept as the date text the server sent.
type Task struct {
	ID          TaskID `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Status      string `json:"status" yaml:"status"`
	Priority    string `json:"priority" yaml:"priority"`
	DueDate     string `json:"dueDate" yaml:"dueDate"`
}
