package stats

import "sort"

// RankedEntry is one key in a top-N list.
type RankedEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// counter accumulates counts and remembers first-seen order so that equal
// counts rank in encounter order.
type counter struct {
	counts map[string]int
	order  map[string]int
	next   int
}

func newCounter() *counter {
	return &counter{
		counts: make(map[string]int),
		order:  make(map[string]int),
	}
}

func (c *counter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order[key] = c.next
		c.next++
	}
	c.counts[key]++
}

func (c *counter) distinct() int {
	return len(c.counts)
}

// top returns the n highest-count keys, descending by count, ties broken by
// first-seen order.
func (c *counter) top(n int) []RankedEntry {
	entries := make([]RankedEntry, 0, len(c.counts))
	for key, count := range c.counts {
		entries = append(entries, RankedEntry{Key: key, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return c.order[entries[i].Key] < c.order[entries[j].Key]
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
