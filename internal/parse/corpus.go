package parse

import (
	"fmt"
	"sort"
	"time"
	"unicode/utf8"
)

// Corpus is the ordered set of messages parsed from one transcript, plus the
// participant set and any derived per-message columns attached by analyzers.
// It is built once per parse and replaced wholesale on re-parse. Analyzers
// never mutate Messages; columns are additive and never overwrite each other.
type Corpus struct {
	Messages []Message

	participants map[string]struct{}
	intCols      map[string][]int
	floatCols    map[string][]float64
}

func NewCorpus() *Corpus {
	return &Corpus{
		participants: make(map[string]struct{}),
		intCols:      make(map[string][]int),
		floatCols:    make(map[string][]float64),
	}
}

func (c *Corpus) add(m Message) {
	m.MessageIndex = len(c.Messages)
	c.Messages = append(c.Messages, m)
	c.participants[m.Sender] = struct{}{}
}

// Len returns the number of messages. Safe on a nil Corpus.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Messages)
}

// Participants returns the distinct sender names, sorted for determinism.
// Senders are compared exactly; near-identical names are not merged.
func (c *Corpus) Participants() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.participants))
	for name := range c.participants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AttachInts attaches a derived integer column. The column must cover every
// message and must not already exist.
func (c *Corpus) AttachInts(name string, vals []int) error {
	if len(vals) != len(c.Messages) {
		return fmt.Errorf("column %s: %d values for %d messages", name, len(vals), len(c.Messages))
	}
	if _, ok := c.intCols[name]; ok {
		return fmt.Errorf("column %s already attached", name)
	}
	c.intCols[name] = vals
	return nil
}

// AttachFloats attaches a derived float column under the same rules as AttachInts.
func (c *Corpus) AttachFloats(name string, vals []float64) error {
	if len(vals) != len(c.Messages) {
		return fmt.Errorf("column %s: %d values for %d messages", name, len(vals), len(c.Messages))
	}
	if _, ok := c.floatCols[name]; ok {
		return fmt.Errorf("column %s already attached", name)
	}
	c.floatCols[name] = vals
	return nil
}

func (c *Corpus) Ints(name string) ([]int, bool) {
	vals, ok := c.intCols[name]
	return vals, ok
}

func (c *Corpus) Floats(name string) ([]float64, bool) {
	vals, ok := c.floatCols[name]
	return vals, ok
}

// Records emits one plain map per message for persistence collaborators.
// Field names match the parsed model; word_count, character_count, has_emoji
// and message_type are included the way the archive stores them. Attached
// derived columns are appended under their column names.
func (c *Corpus) Records() []map[string]any {
	if c == nil {
		return nil
	}
	records := make([]map[string]any, len(c.Messages))
	for i, m := range c.Messages {
		rec := map[string]any{
			"timestamp":       m.Timestamp.Format(time.RFC3339),
			"date":            m.Timestamp.Format("2006-01-02"),
			"time":            m.Timestamp.Format("15:04:05"),
			"sender":          m.Sender,
			"message":         m.Text,
			"hour":            m.Hour,
			"day_of_week":     m.DayOfWeek,
			"month":           m.Month,
			"year":            m.Year,
			"line_number":     m.LineNumber,
			"message_index":   m.MessageIndex,
			"word_count":      WordCount(m.Text),
			"character_count": utf8.RuneCountInString(m.Text),
			"has_emoji":       HasEmoji(m.Text),
			"message_type":    MessageType(m.Text),
		}
		// Attached columns are additive; a column may not shadow a base field.
		for name, vals := range c.intCols {
			if _, exists := rec[name]; !exists {
				rec[name] = vals[i]
			}
		}
		for name, vals := range c.floatCols {
			if _, exists := rec[name]; !exists {
				rec[name] = vals[i]
			}
		}
		records[i] = rec
	}
	return records
}
