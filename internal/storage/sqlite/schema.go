// ABOUTME: SQLite schema for local memo storage
// ABOUTME: One table of voice memo rows keyed by integer id
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Voice memos table (single source of truth for memo processing state)
CREATE TABLE IF NOT EXISTS voice_memos (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    audio_file_path TEXT NOT NULL,
    transcription TEXT,
    vector_id TEXT,
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_voice_memos_created ON voice_memos(created_at DESC);
`
