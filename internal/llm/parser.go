// ABOUTME: Parser for structured todo JSON returned by the chat endpoint
// ABOUTME: Tolerates markdown fences and a bare top-level array
package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harper/voicememo/internal/models"
	"github.com/harper/voicememo/internal/verr"
)

// rawTodoItem distinguishes missing fields from empty ones during decoding.
type rawTodoItem struct {
	Item         *string `json:"item"`
	TimeEstimate *string `json:"timeEstimate"`
	Project      *string `json:"project"`
}

// ParseTodoList parses the model's response into a todo list. The input may
// be wrapped in markdown code fences and may be either an object with a
// "todos" array or a bare array of todo items. Each item must carry "item"
// and "timeEstimate"; "project" defaults to Personal.
func ParseTodoList(raw string) (models.TodoList, error) {
	cleaned := cleanJSON(raw)
	if cleaned == "" {
		return models.TodoList{}, fmt.Errorf("empty response: %w", verr.ErrParse)
	}

	var items []rawTodoItem

	if strings.HasPrefix(cleaned, "{") {
		var wrapper struct {
			Todos *[]rawTodoItem `json:"todos"`
		}
		if err := json.Unmarshal([]byte(cleaned), &wrapper); err != nil {
			return models.TodoList{}, fmt.Errorf("invalid JSON: %v: %w", err, verr.ErrParse)
		}
		if wrapper.Todos == nil {
			return models.TodoList{}, fmt.Errorf("JSON object missing 'todos' field: %w", verr.ErrParse)
		}
		items = *wrapper.Todos
	} else if strings.HasPrefix(cleaned, "[") {
		if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
			return models.TodoList{}, fmt.Errorf("invalid JSON: %v: %w", err, verr.ErrParse)
		}
	} else {
		return models.TodoList{}, fmt.Errorf("response is neither an object nor an array: %w", verr.ErrParse)
	}

	todos := make([]models.TodoItem, 0, len(items))
	for i, item := range items {
		if item.Item == nil || item.TimeEstimate == nil {
			return models.TodoList{}, fmt.Errorf("todo %d missing 'item' or 'timeEstimate': %w", i, verr.ErrParse)
		}
		project := models.DefaultProject
		if item.Project != nil && *item.Project != "" {
			project = *item.Project
		}
		todos = append(todos, models.TodoItem{
			Item:         *item.Item,
			TimeEstimate: *item.TimeEstimate,
			Project:      project,
		})
	}

	return models.TodoList{Todos: todos}, nil
}

// cleanJSON strips markdown code fences and blank lines from the raw model
// output.
func cleanJSON(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	var lines []string
	for _, line := range strings.Split(cleaned, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
