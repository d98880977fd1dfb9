// ABOUTME: The memo pipeline: record -> save -> transcribe -> embed/index
// ABOUTME: Three caller-sequenced stages, each independently retriable
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/harper/voicememo/internal/models"
	"github.com/harper/voicememo/internal/result"
	"github.com/harper/voicememo/internal/verr"
)

// Transcriber converts a finished audio artifact into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Embedder converts transcript text into an embedding vector.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex is the remote similarity-search store.
type VectorIndex interface {
	Upsert(ctx context.Context, v models.Vector) (string, error)
	Delete(ctx context.Context, id string) error
}

// MemoStore is the local durable table of memo records.
type MemoStore interface {
	Insert(memo *models.VoiceMemo) (int64, error)
	Update(memo *models.VoiceMemo) error
	Delete(memo *models.VoiceMemo) error
	GetByID(id int64) (*models.VoiceMemo, error)
	GetAll() ([]models.VoiceMemo, error)
}

// Repository orchestrates the memo-processing stages. Stages are invoked
// sequentially by the caller, not chained here: each returns its own Result
// so a caller can retry only the failed stage instead of re-recording.
type Repository struct {
	store       MemoStore
	transcriber Transcriber
	embedder    Embedder
	index       VectorIndex
}

// NewRepository wires the pipeline's collaborators via constructor injection.
func NewRepository(store MemoStore, transcriber Transcriber, embedder Embedder, index VectorIndex) *Repository {
	return &Repository{
		store:       store,
		transcriber: transcriber,
		embedder:    embedder,
		index:       index,
	}
}

// SaveMemo persists a stub record for a freshly recorded audio file and
// returns it with its store-assigned id. On failure the audio file is left
// on disk with no tracked record; the pipeline does not clean up such
// orphans (the scratch purge at startup eventually collects them).
func (r *Repository) SaveMemo(ctx context.Context, audioPath string) result.Result[*models.VoiceMemo] {
	memo := &models.VoiceMemo{
		AudioFilePath: audioPath,
		CreatedAt:     time.Now(),
	}

	id, err := r.store.Insert(memo)
	if err != nil {
		log.Printf("pipeline: saving memo for %s: %v", audioPath, err)
		return result.Failure[*models.VoiceMemo](fmt.Errorf("saving memo: %w", err))
	}
	memo.ID = id

	log.Printf("pipeline: memo %d saved for %s", id, audioPath)
	return result.Success(memo)
}

// TranscribeMemo runs the transcription stage. On success the updated entity
// is written back and returned; on failure the stored row is left untouched,
// so the whole stage can be retried with the same memo.
func (r *Repository) TranscribeMemo(ctx context.Context, memo *models.VoiceMemo) result.Result[*models.VoiceMemo] {
	if r.transcriber == nil {
		return result.Failure[*models.VoiceMemo](
			fmt.Errorf("no transcription client configured: %w", verr.ErrInvalidArgument))
	}

	text, err := r.transcriber.Transcribe(ctx, memo.AudioFilePath)
	if err != nil {
		log.Printf("pipeline: transcribing memo %d: %v", memo.ID, err)
		return result.Failure[*models.VoiceMemo](fmt.Errorf("transcribing memo %d: %w", memo.ID, err))
	}

	updated := memo.WithTranscription(text)
	if err := r.store.Update(&updated); err != nil {
		log.Printf("pipeline: storing transcription for memo %d: %v", memo.ID, err)
		return result.Failure[*models.VoiceMemo](fmt.Errorf("storing transcription for memo %d: %w", memo.ID, err))
	}

	log.Printf("pipeline: memo %d transcribed (%d chars)", memo.ID, len(text))
	return result.Success(&updated)
}

// SaveToVectorDB runs the embed-and-index stage. An empty transcription is
// rejected before any network call. Either network failure returns without
// partial writes to the store.
func (r *Repository) SaveToVectorDB(ctx context.Context, memo *models.VoiceMemo) result.Result[*models.VoiceMemo] {
	if memo.Transcription == "" {
		return result.Failure[*models.VoiceMemo](
			fmt.Errorf("memo %d has no transcription to embed: %w", memo.ID, verr.ErrInvalidArgument))
	}
	if r.embedder == nil || r.index == nil {
		return result.Failure[*models.VoiceMemo](
			fmt.Errorf("no embedding or vector index client configured: %w", verr.ErrInvalidArgument))
	}

	embedding, err := r.embedder.GenerateEmbedding(ctx, memo.Transcription)
	if err != nil {
		log.Printf("pipeline: embedding memo %d: %v", memo.ID, err)
		return result.Failure[*models.VoiceMemo](fmt.Errorf("embedding memo %d: %w", memo.ID, err))
	}

	vectorID, err := r.index.Upsert(ctx, models.Vector{
		ID:       strconv.FormatInt(memo.ID, 10),
		Values:   embedding,
		Metadata: map[string]string{"transcript": memo.Transcription},
	})
	if err != nil {
		log.Printf("pipeline: indexing memo %d: %v", memo.ID, err)
		return result.Failure[*models.VoiceMemo](fmt.Errorf("indexing memo %d: %w", memo.ID, err))
	}

	updated := memo.WithVectorID(vectorID)
	if err := r.store.Update(&updated); err != nil {
		log.Printf("pipeline: storing vector id for memo %d: %v", memo.ID, err)
		return result.Failure[*models.VoiceMemo](fmt.Errorf("storing vector id for memo %d: %w", memo.ID, err))
	}

	log.Printf("pipeline: memo %d indexed as vector %s", memo.ID, vectorID)
	return result.Success(&updated)
}

// DeleteMemo removes the store row, the local audio file (best-effort), and
// the remote vector entry when one exists.
func (r *Repository) DeleteMemo(ctx context.Context, memo *models.VoiceMemo) result.Result[struct{}] {
	if err := r.store.Delete(memo); err != nil {
		return result.Failure[struct{}](fmt.Errorf("deleting memo %d: %w", memo.ID, err))
	}

	if err := os.Remove(memo.AudioFilePath); err != nil && !os.IsNotExist(err) {
		// File-deletion errors are non-fatal; the row is already gone.
		log.Printf("pipeline: removing audio for memo %d: %v", memo.ID, err)
	}

	if memo.VectorID != "" && r.index != nil {
		if err := r.index.Delete(ctx, memo.VectorID); err != nil {
			return result.Failure[struct{}](fmt.Errorf("deleting vector for memo %d: %w", memo.ID, err))
		}
	}

	return result.Success(struct{}{})
}

// DeleteMemoByID resolves the id to an entity first, then delegates.
func (r *Repository) DeleteMemoByID(ctx context.Context, id int64) result.Result[struct{}] {
	memo, err := r.store.GetByID(id)
	if err != nil {
		return result.Failure[struct{}](err)
	}
	return r.DeleteMemo(ctx, memo)
}

// GetAllMemos returns all memos, newest first.
func (r *Repository) GetAllMemos(ctx context.Context) result.Result[[]models.VoiceMemo] {
	memos, err := r.store.GetAll()
	if err != nil {
		return result.Failure[[]models.VoiceMemo](fmt.Errorf("listing memos: %w", err))
	}
	return result.Success(memos)
}
