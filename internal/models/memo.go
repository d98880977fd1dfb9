// ABOUTME: Core data models for voice memos and their vector-index entries
// ABOUTME: VoiceMemo is the single locally-persisted entity
package models

import "time"

// VoiceMemo is one recorded-and-processed voice note. The store assigns ID on
// insert (0 means not yet persisted). Transcription and VectorID start empty
// and are filled in by the pipeline's transcription and indexing stages.
// VectorID is only ever set when Transcription is non-empty.
type VoiceMemo struct {
	ID            int64
	AudioFilePath string
	Transcription string
	VectorID      string
	CreatedAt     time.Time
}

// WithTranscription returns a copy with the transcription set.
func (m VoiceMemo) WithTranscription(text string) VoiceMemo {
	m.Transcription = text
	return m
}

// WithVectorID returns a copy with the vector-index correlation id set.
func (m VoiceMemo) WithVectorID(id string) VoiceMemo {
	m.VectorID = id
	return m
}

// Vector is an entry in the remote vector index. ID equals the owning memo's
// id, stringified. The local store never holds Values, only the id.
type Vector struct {
	ID       string            `json:"id"`
	Values   []float32         `json:"values"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// QueryMatch is one similarity-search hit from the vector index.
type QueryMatch struct {
	ID       string            `json:"id"`
	Score    float64           `json:"score"`
	Values   []float32         `json:"values,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}
