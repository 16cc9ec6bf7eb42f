package stats

import (
	"github.com/jonreiter/govader"

	"github.com/chatlens/chatlens/internal/parse"
)

// ColSentiment is the derived column the sentiment analyzer attaches.
const ColSentiment = "sentiment"

// Classification thresholds. Scores on the boundary count as neutral.
const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

// SentimentStats holds polarity statistics. The three bucket counts always
// sum to the total message count.
type SentimentStats struct {
	AvgSentiment float64 `json:"avg_sentiment"`
	Positive     int     `json:"positive_messages"`
	Negative     int     `json:"negative_messages"`
	Neutral      int     `json:"neutral_messages"`
}

// Sentiment scores each message with a VADER lexicon analyzer. The lexicon is
// English-oriented; other languages score near zero rather than erroring. An
// empty corpus yields the zero result.
func Sentiment(c *parse.Corpus) SentimentStats {
	if c.Len() == 0 {
		return SentimentStats{}
	}

	analyzer := govader.NewSentimentIntensityAnalyzer()
	scores := make([]float64, c.Len())
	var s SentimentStats
	sum := 0.0
	for i, m := range c.Messages {
		score := analyzer.PolarityScores(m.Text).Compound
		scores[i] = score
		sum += score
		switch {
		case score > positiveThreshold:
			s.Positive++
		case score < negativeThreshold:
			s.Negative++
		default:
			s.Neutral++
		}
	}
	c.AttachFloats(ColSentiment, scores)

	s.AvgSentiment = sum / float64(c.Len())
	return s
}
