package parse

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/chatlens/chatlens/internal/load"
)

// ErrNoMessages is returned when a transcript was readable but contained no
// parseable messages. Callers distinguish it from load errors with errors.Is.
var ErrNoMessages = errors.New("transcript contains no parseable messages")

// msgStart is the message-start grammar: [date, time] sender: body.
// The sender group is non-greedy so the first colon ends the sender.
var msgStart = regexp.MustCompile(`^\[(\d{1,2}/\d{1,2}/\d{2,4}),\s*(\d{1,2}:\d{2}:\d{2})\]\s*(.*?):\s*(.*)$`)

// Continuation lines containing these substrings (case-insensitive) are
// media placeholders and are discarded rather than appended.
var placeholderSubstrings = []string{
	"image omitted",
	"media omitted",
	"document omitted",
	"audio omitted",
	"video omitted",
	"sticker omitted",
}

// leftToRightMark prefixes system/metadata continuation lines in iOS exports.
const leftToRightMark = "‎"

// ParseFile loads a transcript from disk and parses it.
func ParseFile(path string) (*Corpus, error) {
	lines, err := load.ReadLines(path)
	if err != nil {
		return nil, err
	}
	return ParseLines(lines)
}

// ParseLines runs the two-state line machine over a transcript.
//
// A line matching the message-start grammar with a parseable timestamp opens
// a new message; a matching line with an unparseable timestamp is dropped
// without disturbing the current message. Any other non-blank line extends
// the current message unless it is a placeholder. Lines before the first
// message are discarded. Returns ErrNoMessages if nothing parsed.
func ParseLines(lines []string) (*Corpus, error) {
	c := NewCorpus()
	cur := -1 // index of the current message in c.Messages, -1 = awaiting

	for n, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := msgStart.FindStringSubmatch(line); m != nil {
			ts, err := parseDateTime(m[1], m[2])
			if err != nil {
				// Deliberate leniency: lines shaped like a message but with a
				// bad date/time are dropped entirely.
				continue
			}
			sender := strings.TrimSpace(m[3])
			if sender == "" {
				continue
			}
			c.add(Message{
				Timestamp:  ts,
				Sender:     sender,
				Text:       strings.TrimSpace(m[4]),
				Hour:       ts.Hour(),
				DayOfWeek:  ts.Weekday().String(),
				Month:      ts.Month().String(),
				Year:       ts.Year(),
				LineNumber: n + 1,
			})
			cur = len(c.Messages) - 1
			continue
		}

		if cur < 0 {
			continue // pre-first-message noise
		}
		if isPlaceholder(line) {
			continue
		}
		c.Messages[cur].Text += " " + line
	}

	if c.Len() == 0 {
		return nil, ErrNoMessages
	}
	return c, nil
}

func isPlaceholder(line string) bool {
	if strings.HasPrefix(line, leftToRightMark) {
		return true
	}
	lower := strings.ToLower(line)
	for _, s := range placeholderSubstrings {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// parseDateTime parses the grammar's day/month/year date and 24-hour time.
// Two-digit years are assumed to be in the 2000s; there is no windowing for
// other centuries.
func parseDateTime(dateStr, timeStr string) (time.Time, error) {
	parts := strings.Split(dateStr, "/")
	if len(parts) == 3 && len(parts[2]) == 2 {
		parts[2] = "20" + parts[2]
		dateStr = strings.Join(parts, "/")
	}
	return time.Parse("2/1/2006 15:04:05", dateStr+" "+timeStr)
}
