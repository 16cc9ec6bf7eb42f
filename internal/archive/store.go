package archive

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chatlens/chatlens/internal/parse"
)

// StoreResult describes one successful archive import.
type StoreResult struct {
	TranscriptKey string
	Messages      int
	Checksum      string
}

func (r StoreResult) String() string {
	return fmt.Sprintf("key=%s messages=%d checksum=%s", r.TranscriptKey, r.Messages, r.Checksum[:12])
}

// Store replaces the archived copy of one transcript with the parsed corpus.
// The transcript key is derived from the file name and content checksum, so
// a changed re-export archives as a distinct transcript while an unchanged
// re-import replaces in place.
func Store(d *DB, path string, c *parse.Corpus) (StoreResult, error) {
	checksum, err := fileChecksum(path)
	if err != nil {
		return StoreResult{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return StoreResult{}, fmt.Errorf("stat %s: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	key := base + ":" + checksum[:12]
	res := StoreResult{TranscriptKey: key, Messages: c.Len(), Checksum: checksum}

	// delete-then-insert keeps the whole replace atomic per transcript
	if err := d.DeleteTranscript(key); err != nil {
		return StoreResult{}, err
	}

	tx, err := d.Raw().Begin()
	if err != nil {
		return StoreResult{}, err
	}
	defer tx.Rollback()

	first, last := timestampRange(c)
	_, err = tx.Exec(
		`INSERT INTO transcripts (transcript_key, file_path, checksum, mtime, size,
		                          imported_at, message_count, participant_count, first_ts, last_ts)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		key,
		path,
		checksum,
		info.ModTime().Unix(),
		info.Size(),
		time.Now().UTC().Format(time.RFC3339),
		c.Len(),
		len(c.Participants()),
		first,
		last,
	)
	if err != nil {
		return StoreResult{}, err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO messages (transcript_key, message_index, ts, sender, text, line_number,
		                       hour, day_of_week, month, year,
		                       word_count, character_count, has_emoji, message_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return StoreResult{}, err
	}
	defer stmt.Close()

	for _, m := range c.Messages {
		hasEmoji := 0
		if parse.HasEmoji(m.Text) {
			hasEmoji = 1
		}
		_, err := stmt.Exec(
			key,
			m.MessageIndex,
			m.Timestamp.Format(time.RFC3339),
			m.Sender,
			m.Text,
			m.LineNumber,
			m.Hour,
			m.DayOfWeek,
			m.Month,
			m.Year,
			parse.WordCount(m.Text),
			utf8.RuneCountInString(m.Text),
			hasEmoji,
			parse.MessageType(m.Text),
		)
		if err != nil {
			return StoreResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return StoreResult{}, err
	}
	return res, nil
}

func timestampRange(c *parse.Corpus) (first, last string) {
	if c.Len() == 0 {
		return "", ""
	}
	min, max := c.Messages[0].Timestamp, c.Messages[0].Timestamp
	for _, m := range c.Messages {
		if m.Timestamp.Before(min) {
			min = m.Timestamp
		}
		if m.Timestamp.After(max) {
			max = m.Timestamp
		}
	}
	return min.Format(time.RFC3339), max.Format(time.RFC3339)
}

func fileChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Finding is one integrity problem discovered by Verify.
type Finding struct {
	TranscriptKey string
	Issue         string // "incomplete", "checksum_mismatch", "source_missing"
	Detail        string
}

// Verify audits every archived transcript: the stored row count must match
// the recorded message count, and a source file that still exists must hash
// to the recorded checksum. A missing source is reported but is not fatal;
// the archive is the durable copy.
func Verify(d *DB) ([]Finding, error) {
	transcripts, err := d.Transcripts()
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}

	var findings []Finding
	for _, t := range transcripts {
		var stored int
		err := d.Raw().QueryRow(
			"SELECT COUNT(*) FROM messages WHERE transcript_key = ?", t.TranscriptKey,
		).Scan(&stored)
		if err != nil {
			return nil, fmt.Errorf("count messages for %s: %w", t.TranscriptKey, err)
		}
		if stored != t.MessageCount {
			findings = append(findings, Finding{
				TranscriptKey: t.TranscriptKey,
				Issue:         "incomplete",
				Detail:        fmt.Sprintf("stored %d of %d messages", stored, t.MessageCount),
			})
		}

		if _, err := os.Stat(t.FilePath); err != nil {
			if os.IsNotExist(err) {
				findings = append(findings, Finding{
					TranscriptKey: t.TranscriptKey,
					Issue:         "source_missing",
					Detail:        t.FilePath,
				})
			}
			continue
		}
		sum, err := fileChecksum(t.FilePath)
		if err != nil {
			continue
		}
		if sum != t.Checksum {
			findings = append(findings, Finding{
				TranscriptKey: t.TranscriptKey,
				Issue:         "checksum_mismatch",
				Detail:        fmt.Sprintf("file %s changed since import", t.FilePath),
			})
		}
	}
	return findings, nil
}
