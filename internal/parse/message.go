package parse

import (
	"strings"
	"time"

	"github.com/forPelevin/gomoji"
)

// Message is one parsed chat message. The derived time fields are computed
// once when the message-start line is parsed and are never recomputed.
type Message struct {
	Timestamp time.Time
	Sender    string
	Text      string

	Hour      int    // 0-23
	DayOfWeek string // "Monday".."Sunday"
	Month     string // "January".."December"
	Year      int

	LineNumber   int // 1-based line of the message-start line in the source
	MessageIndex int // 0-based position in parse order
}

// MessageType classifies a message body the way the archive records it:
// "media" for media placeholders, "deleted" for deletion notices, "system"
// for empty bodies, "text" otherwise.
func MessageType(text string) string {
	if text == "" {
		return "system"
	}
	lower := strings.ToLower(text)
	if strings.Contains(lower, "<media omitted>") {
		return "media"
	}
	if strings.Contains(lower, "this message was deleted") ||
		strings.Contains(lower, "deleted this message") {
		return "deleted"
	}
	return "text"
}

// HasEmoji reports whether the text contains at least one emoji.
func HasEmoji(text string) bool {
	return gomoji.ContainsEmoji(text)
}

// WordCount counts whitespace-separated tokens, matching what the archive
// stores per message.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
