package stats

import (
	"regexp"
	"strings"

	"github.com/forPelevin/gomoji"

	"github.com/chatlens/chatlens/internal/parse"
)

// DefaultTopWords caps the topWords list unless the caller overrides it.
const DefaultTopWords = 20

// ColWordCount is the derived column the lexical analyzer attaches: tokens
// per message after emoji stripping.
const ColWordCount = "word_count"

// wordRE matches maximal runs of Unicode word characters.
var wordRE = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// WordStats holds vocabulary statistics over the emoji-stripped corpus text.
type WordStats struct {
	TotalWords         int           `json:"total_words"`
	UniqueWords        int           `json:"unique_words"`
	AvgWordsPerMessage float64       `json:"avg_words_per_message"`
	TopWords           []RankedEntry `json:"top_words"`
}

// Words tokenizes every message (emoji removed, lower-cased) and accumulates
// a frequency multiset. topN <= 0 uses DefaultTopWords. An empty corpus
// yields the zero result.
func Words(c *parse.Corpus, topN int) WordStats {
	if c.Len() == 0 {
		return WordStats{}
	}
	if topN <= 0 {
		topN = DefaultTopWords
	}

	freq := newCounter()
	perMessage := make([]int, c.Len())
	total := 0
	for i, m := range c.Messages {
		clean := gomoji.RemoveEmojis(m.Text)
		tokens := wordRE.FindAllString(strings.ToLower(clean), -1)
		perMessage[i] = len(tokens)
		total += len(tokens)
		for _, tok := range tokens {
			freq.add(tok)
		}
	}
	c.AttachInts(ColWordCount, perMessage)

	return WordStats{
		TotalWords:         total,
		UniqueWords:        freq.distinct(),
		AvgWordsPerMessage: float64(total) / float64(c.Len()),
		TopWords:           freq.top(topN),
	}
}
