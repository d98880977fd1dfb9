// ABOUTME: In-memory todo edit session between extraction and export
// ABOUTME: All mutations are serialized through one mutex; never persisted locally
package todo

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/harper/voicememo/internal/models"
)

// State is the session's observable phase.
type State int

const (
	// StateInitial means no extraction or save has run yet.
	StateInitial State = iota
	// StateLoading means an extraction or save is in flight.
	StateLoading
	// StateSuccess means the last operation completed.
	StateSuccess
	// StateError means the last operation failed.
	StateError
)

// SupersedePolicy decides what happens when Extract is invoked while an
// earlier extraction is still in flight. The source behavior is ambiguous, so
// the choice is explicit configuration rather than an assumption.
type SupersedePolicy int

const (
	// LastWriterWins lets the superseded call complete; whichever extraction
	// finishes last replaces the list.
	LastWriterWins SupersedePolicy = iota
	// CancelPrevious cancels the superseded in-flight call before starting
	// the new one.
	CancelPrevious
)

// Extractor turns a transcript into a structured todo list.
type Extractor interface {
	ExtractTodos(ctx context.Context, transcript string) (models.TodoList, error)
}

// SheetWriter appends exported rows to the external spreadsheet.
type SheetWriter interface {
	AppendRows(ctx context.Context, rows [][]string) error
}

// Session holds the editable todo list for one edit session. Add, Update,
// Delete, Extract, and Save all take the same mutex, so read-modify-write
// sequences cannot interleave on the underlying slice.
type Session struct {
	extractor Extractor
	writer    SheetWriter
	policy    SupersedePolicy

	mu       sync.Mutex
	todos    []models.TodoItem
	state    State
	lastErr  error
	inFlight context.CancelFunc
	gen      uint64

	// now is swappable for export-timestamp tests
	now func() time.Time
}

// NewSession creates an edit session with the given collaborators.
func NewSession(extractor Extractor, writer SheetWriter, policy SupersedePolicy) *Session {
	return &Session{
		extractor: extractor,
		writer:    writer,
		policy:    policy,
		now:       time.Now,
	}
}

// Extract sends the transcript for extraction and, on success, replaces the
// session's list wholesale with the parsed result. Prior unsaved edits are
// discarded; that is the documented behavior, not a bug. Under CancelPrevious
// a still-running extraction is cancelled first; under LastWriterWins it is
// left to finish and the later completion overwrites the earlier one.
func (s *Session) Extract(ctx context.Context, transcript string) error {
	s.mu.Lock()
	if s.policy == CancelPrevious && s.inFlight != nil {
		s.inFlight()
	}
	callCtx, cancel := context.WithCancel(ctx)
	s.inFlight = cancel
	s.gen++
	myGen := s.gen
	s.state = StateLoading
	s.mu.Unlock()

	defer cancel()

	list, err := s.extractor.ExtractTodos(callCtx, transcript)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A cancelled, superseded call must not clobber its replacement's result.
	if s.policy == CancelPrevious && myGen != s.gen {
		return err
	}

	if err != nil {
		log.Printf("todo: extraction failed: %v", err)
		s.state = StateError
		s.lastErr = err
		return err
	}

	s.todos = append([]models.TodoItem(nil), list.Todos...)
	s.state = StateSuccess
	s.lastErr = nil
	return nil
}

// Add appends an item to the list.
func (s *Session) Add(item models.TodoItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos = append(s.todos, item)
}

// Update replaces the item at index. An out-of-range index is a silent no-op
// so a stale index from a racing edit cannot crash the session.
func (s *Session) Update(index int, item models.TodoItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.todos) {
		return
	}
	s.todos[index] = item
}

// Delete removes the item at index. Out-of-range indexes are silent no-ops.
func (s *Session) Delete(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.todos) {
		return
	}
	s.todos = append(s.todos[:index], s.todos[index+1:]...)
}

// Save exports the current list to the spreadsheet, one row per item. A
// successful export consumes the session: the list is cleared. On failure the
// list is preserved for retry.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	s.state = StateLoading
	todos := append([]models.TodoItem(nil), s.todos...)
	stamp := strconv.FormatInt(s.now().UnixMilli(), 10)
	s.mu.Unlock()

	rows := make([][]string, 0, len(todos))
	for _, t := range todos {
		rows = append(rows, []string{t.Item, t.TimeEstimate, t.Project, stamp})
	}

	err := s.writer.AppendRows(ctx, rows)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = StateError
		s.lastErr = fmt.Errorf("saving todos: %w", err)
		return s.lastErr
	}

	s.todos = nil
	s.state = StateSuccess
	s.lastErr = nil
	return nil
}

// Todos returns a copy of the current list.
func (s *Session) Todos() []models.TodoItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.TodoItem(nil), s.todos...)
}

// State returns the session's phase and the last error, if any.
func (s *Session) State() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.lastErr
}
