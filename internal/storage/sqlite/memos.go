// ABOUTME: Voice memo storage operations for SQLite
// ABOUTME: Whole-entity CRUD; every mutation writes the full row
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harper/voicememo/internal/models"
	"github.com/harper/voicememo/internal/verr"
)

// MemoStore handles voice memo persistence
type MemoStore struct {
	db *DB
}

// NewMemoStore creates a new MemoStore
func NewMemoStore(db *DB) *MemoStore {
	return &MemoStore{db: db}
}

// Insert stores a new memo and returns the store-assigned id
func (s *MemoStore) Insert(memo *models.VoiceMemo) (int64, error) {
	createdAt := memo.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := s.db.Exec(`
		INSERT INTO voice_memos (audio_file_path, transcription, vector_id, created_at)
		VALUES (?, ?, ?, ?)
	`, memo.AudioFilePath, nullString(memo.Transcription), nullString(memo.VectorID), createdAt)
	if err != nil {
		return 0, fmt.Errorf("inserting memo: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading assigned id: %w", err)
	}
	return id, nil
}

// Update replaces the whole row keyed by the memo's id
func (s *MemoStore) Update(memo *models.VoiceMemo) error {
	res, err := s.db.Exec(`
		UPDATE voice_memos
		SET audio_file_path = ?, transcription = ?, vector_id = ?, created_at = ?
		WHERE id = ?
	`, memo.AudioFilePath, nullString(memo.Transcription), nullString(memo.VectorID),
		memo.CreatedAt, memo.ID)
	if err != nil {
		return fmt.Errorf("updating memo %d: %w", memo.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("memo %d: %w", memo.ID, verr.ErrNotFound)
	}
	return nil
}

// Delete removes a memo row
func (s *MemoStore) Delete(memo *models.VoiceMemo) error {
	_, err := s.db.Exec(`DELETE FROM voice_memos WHERE id = ?`, memo.ID)
	if err != nil {
		return fmt.Errorf("deleting memo %d: %w", memo.ID, err)
	}
	return nil
}

// DeleteByID loads the memo first, then delegates to the by-entity path
func (s *MemoStore) DeleteByID(id int64) error {
	memo, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.Delete(memo)
}

// GetByID retrieves a memo by its id
func (s *MemoStore) GetByID(id int64) (*models.VoiceMemo, error) {
	var (
		memo          models.VoiceMemo
		transcription sql.NullString
		vectorID      sql.NullString
	)

	err := s.db.QueryRow(`
		SELECT id, audio_file_path, transcription, vector_id, created_at
		FROM voice_memos
		WHERE id = ?
	`, id).Scan(&memo.ID, &memo.AudioFilePath, &transcription, &vectorID, &memo.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("memo %d: %w", id, verr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if transcription.Valid {
		memo.Transcription = transcription.String
	}
	if vectorID.Valid {
		memo.VectorID = vectorID.String
	}

	return &memo, nil
}

// GetAll retrieves all memos ordered newest-first
func (s *MemoStore) GetAll() ([]models.VoiceMemo, error) {
	rows, err := s.db.Query(`
		SELECT id, audio_file_path, transcription, vector_id, created_at
		FROM voice_memos
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var memos []models.VoiceMemo
	for rows.Next() {
		var (
			memo          models.VoiceMemo
			transcription sql.NullString
			vectorID      sql.NullString
		)
		if err := rows.Scan(&memo.ID, &memo.AudioFilePath, &transcription, &vectorID, &memo.CreatedAt); err != nil {
			return nil, err
		}
		if transcription.Valid {
			memo.Transcription = transcription.String
		}
		if vectorID.Valid {
			memo.VectorID = vectorID.String
		}
		memos = append(memos, memo)
	}

	return memos, rows.Err()
}

// nullString converts an empty string to a SQL NULL
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
