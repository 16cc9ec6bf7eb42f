package stats

import (
	"unicode/utf8"

	"github.com/forPelevin/gomoji"
	"github.com/rivo/uniseg"

	"github.com/chatlens/chatlens/internal/parse"
)

// DefaultTopEmojis caps the topEmojis list unless the caller overrides it.
const DefaultTopEmojis = 10

// ColEmojiCount is the derived column the emoji analyzer attaches.
const ColEmojiCount = "emoji_count"

// EmojiStats holds emoji usage statistics.
type EmojiStats struct {
	TotalEmojis        int           `json:"total_emojis"`
	MessagesWithEmojis int           `json:"messages_with_emojis"`
	TopEmojis          []RankedEntry `json:"top_emojis"`
}

// Emojis extracts emoji occurrences per message and accumulates frequencies.
// topN <= 0 uses DefaultTopEmojis. An empty corpus yields the zero result.
func Emojis(c *parse.Corpus, topN int) EmojiStats {
	if c.Len() == 0 {
		return EmojiStats{}
	}
	if topN <= 0 {
		topN = DefaultTopEmojis
	}

	freq := newCounter()
	perMessage := make([]int, c.Len())
	withEmojis := 0
	total := 0
	for i, m := range c.Messages {
		found := extractEmojis(m.Text)
		perMessage[i] = len(found)
		total += len(found)
		if len(found) > 0 {
			withEmojis++
		}
		for _, e := range found {
			freq.add(e)
		}
	}
	c.AttachInts(ColEmojiCount, perMessage)

	return EmojiStats{
		TotalEmojis:        total,
		MessagesWithEmojis: withEmojis,
		TopEmojis:          freq.top(topN),
	}
}

// extractEmojis walks grapheme clusters so multi-codepoint sequences (skin
// tones, ZWJ families, flags) count as one emoji, preserving repeats.
func extractEmojis(text string) []string {
	var out []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		if len(cluster) == 1 && cluster[0] < utf8.RuneSelf {
			continue // ASCII is never an emoji
		}
		if _, err := gomoji.GetInfo(cluster); err == nil {
			out = append(out, cluster)
		}
	}
	return out
}
