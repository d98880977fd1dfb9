// ABOUTME: Tests for the todo edit session
// ABOUTME: Covers edit bounds, save semantics, and supersede policies
package todo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/harper/voicememo/internal/models"
)

type fakeExtractor struct {
	mu    sync.Mutex
	lists map[string]models.TodoList
	err   error
	block chan struct{} // if set, ExtractTodos waits on it (or ctx)
}

func (f *fakeExtractor) ExtractTodos(ctx context.Context, transcript string) (models.TodoList, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return models.TodoList{}, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.TodoList{}, f.err
	}
	return f.lists[transcript], nil
}

type fakeWriter struct {
	rows [][]string
	err  error
}

func (f *fakeWriter) AppendRows(ctx context.Context, rows [][]string) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, rows...)
	return nil
}

func twoItemList() models.TodoList {
	return models.TodoList{Todos: []models.TodoItem{
		{Item: "Buy milk", TimeEstimate: "15 minutes", Project: "Personal"},
		{Item: "Call Bob", TimeEstimate: "20 minutes", Project: "Work"},
	}}
}

func TestExtractReplacesList(t *testing.T) {
	ex := &fakeExtractor{lists: map[string]models.TodoList{"t": twoItemList()}}
	s := NewSession(ex, &fakeWriter{}, LastWriterWins)

	s.Add(models.TodoItem{Item: "unsaved edit", TimeEstimate: "1 minute", Project: "Personal"})

	if err := s.Extract(context.Background(), "t"); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	todos := s.Todos()
	if len(todos) != 2 {
		t.Fatalf("len(todos) = %d, want 2 (prior edits discarded)", len(todos))
	}
	if todos[0].Project != "Personal" || todos[1].Project != "Work" {
		t.Errorf("projects = %q, %q, want Personal, Work", todos[0].Project, todos[1].Project)
	}

	state, lastErr := s.State()
	if state != StateSuccess || lastErr != nil {
		t.Errorf("State() = %v, %v, want StateSuccess, nil", state, lastErr)
	}
}

func TestExtractError(t *testing.T) {
	wantErr := errors.New("llm down")
	ex := &fakeExtractor{err: wantErr}
	s := NewSession(ex, &fakeWriter{}, LastWriterWins)

	if err := s.Extract(context.Background(), "t"); !errors.Is(err, wantErr) {
		t.Fatalf("Extract() error = %v, want %v", err, wantErr)
	}
	state, lastErr := s.State()
	if state != StateError || !errors.Is(lastErr, wantErr) {
		t.Errorf("State() = %v, %v, want StateError with extraction error", state, lastErr)
	}
}

func TestEditBounds(t *testing.T) {
	s := NewSession(&fakeExtractor{}, &fakeWriter{}, LastWriterWins)
	s.Add(models.TodoItem{Item: "only", TimeEstimate: "5 minutes", Project: "Personal"})

	// Out-of-range update and delete are silent no-ops.
	s.Update(5, models.TodoItem{Item: "nope"})
	s.Update(-1, models.TodoItem{Item: "nope"})
	s.Delete(5)
	s.Delete(-1)

	todos := s.Todos()
	if len(todos) != 1 || todos[0].Item != "only" {
		t.Fatalf("todos = %+v, want the single original item", todos)
	}

	// In-range operations work.
	s.Update(0, models.TodoItem{Item: "renamed", TimeEstimate: "5 minutes", Project: "Personal"})
	if got := s.Todos()[0].Item; got != "renamed" {
		t.Errorf("Item = %q, want renamed", got)
	}
	s.Delete(0)
	if n := len(s.Todos()); n != 0 {
		t.Errorf("len(todos) = %d, want 0", n)
	}
}

func TestSaveConsumesSession(t *testing.T) {
	w := &fakeWriter{}
	s := NewSession(&fakeExtractor{}, w, LastWriterWins)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }

	s.Add(models.TodoItem{Item: "Buy milk", TimeEstimate: "15 minutes", Project: "Personal"})

	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if len(w.rows) != 1 {
		t.Fatalf("exported rows = %d, want 1", len(w.rows))
	}
	want := []string{"Buy milk", "15 minutes", "Personal", "1700000000000"}
	for i, col := range want {
		if w.rows[0][i] != col {
			t.Errorf("row[%d] = %q, want %q", i, w.rows[0][i], col)
		}
	}
	if n := len(s.Todos()); n != 0 {
		t.Errorf("len(todos) = %d after save, want 0", n)
	}
}

func TestSaveFailurePreservesList(t *testing.T) {
	w := &fakeWriter{err: errors.New("sheets down")}
	s := NewSession(&fakeExtractor{}, w, LastWriterWins)

	s.Add(models.TodoItem{Item: "keep me", TimeEstimate: "1 minute", Project: "Personal"})

	if err := s.Save(context.Background()); err == nil {
		t.Fatal("Save() should fail")
	}
	if n := len(s.Todos()); n != 1 {
		t.Errorf("len(todos) = %d after failed save, want 1 (preserved for retry)", n)
	}

	// Retry after the writer recovers.
	w.err = nil
	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("retry Save() error = %v", err)
	}
	if n := len(s.Todos()); n != 0 {
		t.Errorf("len(todos) = %d after retried save, want 0", n)
	}
}

func TestCancelPreviousPolicy(t *testing.T) {
	block := make(chan struct{})
	ex := &fakeExtractor{
		lists: map[string]models.TodoList{"second": twoItemList()},
		block: block,
	}
	s := NewSession(ex, &fakeWriter{}, CancelPrevious)

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- s.Extract(context.Background(), "first")
	}()

	// Wait until the first extraction is registered as in flight.
	deadline := time.After(5 * time.Second)
	for {
		s.mu.Lock()
		registered := s.inFlight != nil
		s.mu.Unlock()
		if registered {
			break
		}
		select {
		case <-deadline:
			t.Fatal("first extraction never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	// The second call cancels the first; unblock the fake for the second call.
	go func() {
		time.Sleep(10 * time.Millisecond)
		close(block)
	}()
	if err := s.Extract(context.Background(), "second"); err != nil {
		t.Fatalf("second Extract() error = %v", err)
	}

	if err := <-firstDone; !errors.Is(err, context.Canceled) {
		t.Errorf("first Extract() error = %v, want context.Canceled", err)
	}

	todos := s.Todos()
	if len(todos) != 2 || todos[0].Item != "Buy milk" {
		t.Errorf("todos = %+v, want the second extraction's list", todos)
	}
}

func TestConcurrentEditsDoNotRace(t *testing.T) {
	s := NewSession(&fakeExtractor{}, &fakeWriter{}, LastWriterWins)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(models.TodoItem{Item: "x", TimeEstimate: "1 minute", Project: "Personal"})
		}()
	}
	wg.Wait()

	if n := len(s.Todos()); n != 50 {
		t.Errorf("len(todos) = %d, want 50 (no lost updates)", n)
	}
}
