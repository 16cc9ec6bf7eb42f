package archive

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA cache_size = -64000;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS transcripts (
    transcript_key    TEXT PRIMARY KEY,
    file_path         TEXT NOT NULL,
    checksum          TEXT NOT NULL,
    mtime             INTEGER NOT NULL DEFAULT 0,
    size              INTEGER NOT NULL DEFAULT 0,
    imported_at       TEXT NOT NULL DEFAULT '',
    message_count     INTEGER NOT NULL DEFAULT 0,
    participant_count INTEGER NOT NULL DEFAULT 0,
    first_ts          TEXT NOT NULL DEFAULT '',
    last_ts           TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS messages (
    transcript_key  TEXT NOT NULL,
    message_index   INTEGER NOT NULL,
    ts              TEXT NOT NULL DEFAULT '',
    sender          TEXT NOT NULL,
    text            TEXT NOT NULL,
    line_number     INTEGER NOT NULL DEFAULT 0,
    hour            INTEGER NOT NULL DEFAULT 0,
    day_of_week     TEXT NOT NULL DEFAULT '',
    month           TEXT NOT NULL DEFAULT '',
    year            INTEGER NOT NULL DEFAULT 0,
    word_count      INTEGER NOT NULL DEFAULT 0,
    character_count INTEGER NOT NULL DEFAULT 0,
    has_emoji       INTEGER NOT NULL DEFAULT 0,
    message_type    TEXT NOT NULL DEFAULT 'text',
    PRIMARY KEY (transcript_key, message_index)
);

CREATE VIRTUAL TABLE IF NOT EXISTS messages_fts USING fts5(
    text,
    content=messages,
    content_rowid=rowid,
    tokenize='unicode61'
);

-- triggers to keep FTS in sync
CREATE TRIGGER IF NOT EXISTS messages_ai AFTER INSERT ON messages BEGIN
    INSERT INTO messages_fts(rowid, text) VALUES (new.rowid, new.text);
END;

CREATE TRIGGER IF NOT EXISTS messages_ad AFTER DELETE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, text) VALUES('delete', old.rowid, old.text);
END;

CREATE TRIGGER IF NOT EXISTS messages_au AFTER UPDATE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, text) VALUES('delete', old.rowid, old.text);
    INSERT INTO messages_fts(rowid, text) VALUES (new.rowid, new.text);
END;
`

type DB struct {
	db *sql.DB
}

func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

func (d *DB) TranscriptCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM transcripts").Scan(&n)
	return n, err
}

func (d *DB) MessageCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n)
	return n, err
}

func (d *DB) DeleteTranscript(key string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM messages WHERE transcript_key = ?", key); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM transcripts WHERE transcript_key = ?", key); err != nil {
		return err
	}
	return tx.Commit()
}

// TranscriptRow mirrors one transcripts table row.
type TranscriptRow struct {
	TranscriptKey    string
	FilePath         string
	Checksum         string
	Mtime            int64
	Size             int64
	ImportedAt       string
	MessageCount     int
	ParticipantCount int
	FirstTs          string
	LastTs           string
}

func (d *DB) Transcripts() ([]TranscriptRow, error) {
	rows, err := d.db.Query(`
		SELECT transcript_key, file_path, checksum, mtime, size, imported_at,
		       message_count, participant_count, first_ts, last_ts
		FROM transcripts ORDER BY transcript_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TranscriptRow
	for rows.Next() {
		var t TranscriptRow
		if err := rows.Scan(
			&t.TranscriptKey, &t.FilePath, &t.Checksum, &t.Mtime, &t.Size,
			&t.ImportedAt, &t.MessageCount, &t.ParticipantCount, &t.FirstTs, &t.LastTs,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
