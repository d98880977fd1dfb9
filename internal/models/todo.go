// ABOUTME: Todo models produced by transcript extraction
// ABOUTME: Session-scoped only, never persisted locally
package models

// DefaultProject is assigned to extracted todos that carry no project label.
const DefaultProject = "Personal"

// TodoItem is one actionable item extracted from a transcript. TimeEstimate
// is a human-readable duration and is not parsed or validated.
type TodoItem struct {
	Item         string `json:"item"`
	TimeEstimate string `json:"timeEstimate"`
	Project      string `json:"project"`
}

// TodoList is an ordered sequence of todo items.
type TodoList struct {
	Todos []TodoItem `json:"todos"`
}
