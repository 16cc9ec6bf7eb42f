package stats

import (
	"time"

	"github.com/chatlens/chatlens/internal/parse"
)

// WeekdayOrder is the canonical day ordering applied at presentation time.
// The raw ByWeekday grouping is unordered.
var WeekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// ActivityStats holds time-bucketed and per-participant message counts.
type ActivityStats struct {
	TotalMessages     int            `json:"total_messages"`
	TotalParticipants int            `json:"total_participants"`
	ByHour            map[int]int    `json:"by_hour"`
	ByWeekday         map[string]int `json:"by_weekday"`
	ByDate            map[string]int `json:"by_date"` // keys "2006-01-02"
	PerSender         map[string]int `json:"per_sender"`
	FirstMessage      time.Time      `json:"first_message"`
	LastMessage       time.Time      `json:"last_message"`
	TotalDays         int            `json:"total_days"`
	MessagesPerDay    float64        `json:"messages_per_day"`
}

// Activity computes the time-bucketed statistics over a corpus. An empty or
// nil corpus yields the zero result.
func Activity(c *parse.Corpus) ActivityStats {
	if c.Len() == 0 {
		return ActivityStats{}
	}

	s := ActivityStats{
		TotalMessages:     c.Len(),
		TotalParticipants: len(c.Participants()),
		ByHour:            make(map[int]int),
		ByWeekday:         make(map[string]int),
		ByDate:            make(map[string]int),
		PerSender:         make(map[string]int),
	}

	// Timestamps are not assumed monotonic; out-of-order clocks are kept as-is.
	min, max := c.Messages[0].Timestamp, c.Messages[0].Timestamp
	for _, m := range c.Messages {
		s.ByHour[m.Hour]++
		s.ByWeekday[m.DayOfWeek]++
		s.ByDate[m.Timestamp.Format("2006-01-02")]++
		s.PerSender[m.Sender]++
		if m.Timestamp.Before(min) {
			min = m.Timestamp
		}
		if m.Timestamp.After(max) {
			max = m.Timestamp
		}
	}

	s.FirstMessage = min
	s.LastMessage = max
	s.TotalDays = daySpan(min, max)
	s.MessagesPerDay = float64(s.TotalMessages) / float64(s.TotalDays)
	return s
}

// daySpan is the inclusive whole-day span between two timestamps, minimum 1.
func daySpan(min, max time.Time) int {
	a := time.Date(min.Year(), min.Month(), min.Day(), 0, 0, 0, 0, min.Location())
	b := time.Date(max.Year(), max.Month(), max.Day(), 0, 0, 0, 0, max.Location())
	days := int(b.Sub(a).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}
