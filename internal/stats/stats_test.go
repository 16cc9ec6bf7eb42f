package stats

import (
	"math"
	"testing"

	"github.com/chatlens/chatlens/internal/parse"
)

func mustParse(t *testing.T, lines []string) *parse.Corpus {
	t.Helper()
	c, err := parse.ParseLines(lines)
	if err != nil {
		t.Fatalf("ParseLines: %v", err)
	}
	return c
}

func TestActivity_SingleDay(t *testing.T) {
	t.Parallel()

	c := mustParse(t, []string{
		"[01/01/2024, 09:00:00] Alice: Happy New Year! 🎉",
		"[01/01/2024, 09:01:15] Bob: Happy New Year to you too! 🎊",
		"[01/01/2024, 21:30:00] Alice: Good night",
	})
	s := Activity(c)

	if s.TotalMessages != 3 || s.TotalParticipants != 2 {
		t.Errorf("totals: messages=%d participants=%d", s.TotalMessages, s.TotalParticipants)
	}
	if s.TotalDays != 1 {
		t.Errorf("TotalDays=%d, want 1", s.TotalDays)
	}
	if s.MessagesPerDay != 3 {
		t.Errorf("MessagesPerDay=%v, want 3", s.MessagesPerDay)
	}
	if s.ByHour[9] != 2 || s.ByHour[21] != 1 {
		t.Errorf("ByHour=%v", s.ByHour)
	}
	if s.ByWeekday["Monday"] != 3 {
		t.Errorf("ByWeekday=%v, Jan 1 2024 is a Monday", s.ByWeekday)
	}
	if s.ByDate["2024-01-01"] != 3 {
		t.Errorf("ByDate=%v", s.ByDate)
	}
	if s.PerSender["Alice"] != 2 || s.PerSender["Bob"] != 1 {
		t.Errorf("PerSender=%v", s.PerSender)
	}
}

func TestActivity_DateRangeAndSpan(t *testing.T) {
	t.Parallel()

	// out of order on purpose: range must still be min..max
	c := mustParse(t, []string{
		"[05/01/2024, 23:59:59] A: last",
		"[01/01/2024, 00:00:01] B: first",
		"[03/01/2024, 12:00:00] A: middle",
	})
	s := Activity(c)

	if s.TotalDays != 5 {
		t.Errorf("TotalDays=%d, want 5", s.TotalDays)
	}
	if got := s.TotalMessages; float64(got)/float64(s.TotalDays) != s.MessagesPerDay {
		t.Errorf("MessagesPerDay=%v, want %v", s.MessagesPerDay, float64(got)/5)
	}
	if s.FirstMessage.Day() != 1 || s.LastMessage.Day() != 5 {
		t.Errorf("range %v..%v", s.FirstMessage, s.LastMessage)
	}
}

func TestActivity_Empty(t *testing.T) {
	t.Parallel()

	s := Activity(nil)
	if s.TotalMessages != 0 || s.TotalDays != 0 || s.ByHour != nil {
		t.Errorf("Activity(nil)=%+v, want zero result", s)
	}
}

func TestWords(t *testing.T) {
	t.Parallel()

	c := mustParse(t, []string{
		"[01/01/2024, 09:00:00] A: hello world hello 😊",
		"[01/01/2024, 09:01:00] B: world of words",
	})
	s := Words(c, 0)

	if s.TotalWords != 6 {
		t.Errorf("TotalWords=%d, want 6", s.TotalWords)
	}
	if s.UniqueWords != 4 {
		t.Errorf("UniqueWords=%d, want 4 (hello world of words)", s.UniqueWords)
	}
	if s.AvgWordsPerMessage != 3 {
		t.Errorf("AvgWordsPerMessage=%v, want 3", s.AvgWordsPerMessage)
	}
	if len(s.TopWords) == 0 || s.TopWords[0].Key != "hello" || s.TopWords[0].Count != 2 {
		t.Errorf("TopWords=%v, want hello first", s.TopWords)
	}
	// hello and world tie at 2; hello was seen first
	if s.TopWords[1].Key != "world" || s.TopWords[1].Count != 2 {
		t.Errorf("TopWords=%v, want world second", s.TopWords)
	}

	col, ok := c.Ints(ColWordCount)
	if !ok || col[0] != 3 || col[1] != 3 {
		t.Errorf("word_count column=%v %v", col, ok)
	}
}

func TestWords_Lowercased(t *testing.T) {
	t.Parallel()

	c := mustParse(t, []string{"[01/01/2024, 09:00:00] A: Hello HELLO hello"})
	s := Words(c, 0)
	if s.UniqueWords != 1 {
		t.Errorf("UniqueWords=%d, want 1", s.UniqueWords)
	}
}

func TestWords_TopCap(t *testing.T) {
	t.Parallel()

	c := mustParse(t, []string{
		"[01/01/2024, 09:00:00] A: a b c d e f g h i j k l m n o p q r s t u v w x y z",
	})
	s := Words(c, 0)
	if len(s.TopWords) != DefaultTopWords {
		t.Errorf("len(TopWords)=%d, want %d", len(s.TopWords), DefaultTopWords)
	}
	for i := 1; i < len(s.TopWords); i++ {
		if s.TopWords[i].Count > s.TopWords[i-1].Count {
			t.Errorf("TopWords not descending at %d: %v", i, s.TopWords)
		}
	}
}

func TestEmojis(t *testing.T) {
	t.Parallel()

	c := mustParse(t, []string{
		"[01/01/2024, 09:00:00] Alice: Happy New Year! 🎉",
		"[01/01/2024, 09:01:15] Bob: Happy New Year to you too! 🎊",
		"[01/01/2024, 09:02:00] Alice: no emoji here",
	})
	s := Emojis(c, 0)

	if s.TotalEmojis != 2 {
		t.Errorf("TotalEmojis=%d, want 2", s.TotalEmojis)
	}
	if s.MessagesWithEmojis != 2 {
		t.Errorf("MessagesWithEmojis=%d, want 2", s.MessagesWithEmojis)
	}
	if len(s.TopEmojis) != 2 {
		t.Errorf("TopEmojis=%v", s.TopEmojis)
	}

	col, ok := c.Ints(ColEmojiCount)
	if !ok || col[0] != 1 || col[1] != 1 || col[2] != 0 {
		t.Errorf("emoji_count column=%v %v", col, ok)
	}
}

func TestEmojis_RepeatsAndRanking(t *testing.T) {
	t.Parallel()

	c := mustParse(t, []string{
		"[01/01/2024, 09:00:00] A: 😂😂😂🎉",
		"[01/01/2024, 09:01:00] B: 🎉😂",
	})
	s := Emojis(c, 0)

	if s.TotalEmojis != 6 {
		t.Errorf("TotalEmojis=%d, want 6 (repeats preserved)", s.TotalEmojis)
	}
	if s.TopEmojis[0].Key != "😂" || s.TopEmojis[0].Count != 4 {
		t.Errorf("TopEmojis=%v", s.TopEmojis)
	}
	if s.TopEmojis[1].Key != "🎉" || s.TopEmojis[1].Count != 2 {
		t.Errorf("TopEmojis=%v", s.TopEmojis)
	}
}

func TestExtractEmojis_MultiCodepoint(t *testing.T) {
	t.Parallel()

	// family ZWJ sequence is a single grapheme cluster
	got := extractEmojis("hi 👨‍👩‍👧 there")
	if len(got) != 1 {
		t.Fatalf("extractEmojis=%v, want one emoji", got)
	}
	if got[0] != "👨‍👩‍👧" {
		t.Errorf("extracted %q", got[0])
	}
}

func TestSentiment_BucketsSumToTotal(t *testing.T) {
	t.Parallel()

	c := mustParse(t, []string{
		"[01/01/2024, 09:00:00] A: I love this, it is wonderful and great!",
		"[01/01/2024, 09:01:00] B: This is terrible, I hate it.",
		"[01/01/2024, 09:02:00] A: The meeting is at three.",
		"[01/01/2024, 09:03:00] B: ok",
	})
	s := Sentiment(c)

	if got := s.Positive + s.Negative + s.Neutral; got != c.Len() {
		t.Errorf("bucket sum=%d, want %d", got, c.Len())
	}
	if s.Positive < 1 {
		t.Errorf("Positive=%d, want at least the love/wonderful message", s.Positive)
	}
	if s.Negative < 1 {
		t.Errorf("Negative=%d, want at least the terrible/hate message", s.Negative)
	}
	if s.AvgSentiment < -1 || s.AvgSentiment > 1 {
		t.Errorf("AvgSentiment=%v outside [-1,1]", s.AvgSentiment)
	}

	col, ok := c.Floats(ColSentiment)
	if !ok || len(col) != c.Len() {
		t.Fatalf("sentiment column=%v %v", col, ok)
	}
	for i, v := range col {
		if math.IsNaN(v) || v < -1 || v > 1 {
			t.Errorf("score[%d]=%v outside [-1,1]", i, v)
		}
	}
}

func TestSentiment_NonEnglishDegradesToNeutral(t *testing.T) {
	t.Parallel()

	c := mustParse(t, []string{"[01/01/2024, 09:00:00] A: 这是一条中文消息"})
	s := Sentiment(c)
	if s.Neutral != 1 {
		t.Errorf("non-English text should score neutral, got %+v", s)
	}
}

func TestSentiment_Empty(t *testing.T) {
	t.Parallel()

	s := Sentiment(nil)
	if s != (SentimentStats{}) {
		t.Errorf("Sentiment(nil)=%+v, want zero result", s)
	}
}

func TestCounter_TieBreakInsertionOrder(t *testing.T) {
	t.Parallel()

	c := newCounter()
	for _, k := range []string{"b", "a", "b", "a", "c"} {
		c.add(k)
	}
	top := c.top(10)
	if top[0].Key != "b" || top[1].Key != "a" || top[2].Key != "c" {
		t.Errorf("top=%v, want b,a,c (first-seen tie-break)", top)
	}
}
