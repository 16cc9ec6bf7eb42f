package report

import (
	"fmt"
	"html/template"
	"os"
	"sort"
	"time"

	"github.com/chatlens/chatlens/internal/parse"
	"github.com/chatlens/chatlens/internal/stats"
)

// ParticipantShare is one row of the per-participant table.
type ParticipantShare struct {
	Name    string
	Count   int
	Percent float64 // of total messages, rendered to one decimal
}

// WeekdayCount is one row of the Monday-to-Sunday activity table.
type WeekdayCount struct {
	Day   string
	Count int
}

// Data is the merged projection of all analyzer outputs for one transcript.
// No analysis logic lives here; everything is precomputed.
type Data struct {
	SourceFile  string
	GeneratedAt time.Time

	Activity  stats.ActivityStats
	Words     stats.WordStats
	Emojis    stats.EmojiStats
	Sentiment stats.SentimentStats

	Participants []ParticipantShare
	Weekdays     []WeekdayCount
	EmojiShare   float64 // percent of messages containing an emoji
}

// Build assembles report data from analyzer outputs. Participant rows are
// sorted by count descending (name ascending on ties); weekday rows follow
// the canonical Monday-to-Sunday order, absent days included as zero.
func Build(sourceFile string, c *parse.Corpus, a stats.ActivityStats, w stats.WordStats, e stats.EmojiStats, s stats.SentimentStats) Data {
	d := Data{
		SourceFile:  sourceFile,
		GeneratedAt: time.Now(),
		Activity:    a,
		Words:       w,
		Emojis:      e,
		Sentiment:   s,
	}

	for name, count := range a.PerSender {
		share := ParticipantShare{Name: name, Count: count}
		if a.TotalMessages > 0 {
			share.Percent = 100 * float64(count) / float64(a.TotalMessages)
		}
		d.Participants = append(d.Participants, share)
	}
	sort.Slice(d.Participants, func(i, j int) bool {
		if d.Participants[i].Count != d.Participants[j].Count {
			return d.Participants[i].Count > d.Participants[j].Count
		}
		return d.Participants[i].Name < d.Participants[j].Name
	})

	for _, day := range stats.WeekdayOrder {
		d.Weekdays = append(d.Weekdays, WeekdayCount{Day: day, Count: a.ByWeekday[day]})
	}

	// Emoji share is only meaningful for a non-empty corpus; there is no
	// divide-by-one fallback masking missing data.
	if c.Len() > 0 {
		d.EmojiShare = 100 * float64(e.MessagesWithEmojis) / float64(c.Len())
	}
	return d
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Chat Analysis Report</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; }
.section { margin: 20px 0; padding: 15px; border: 1px solid #ddd; border-radius: 5px; }
.stat { margin: 10px 0; }
.highlight { background-color: #f0f8ff; padding: 10px; border-radius: 5px; }
</style>
</head>
<body>
<h1>Chat Analysis Report</h1>
<p>Source: {{.SourceFile}} &middot; generated {{.GeneratedAt.Format "2006-01-02 15:04"}}</p>

<div class="section">
<h2>Basic Statistics</h2>
<div class="stat">Total Messages: {{.Activity.TotalMessages}}</div>
<div class="stat">Total Participants: {{.Activity.TotalParticipants}}</div>
<div class="stat">Date Range: {{.Activity.FirstMessage.Format "2006-01-02"}} to {{.Activity.LastMessage.Format "2006-01-02"}}</div>
<div class="stat">Total Days: {{.Activity.TotalDays}}</div>
<div class="stat">Average Messages per Day: {{printf "%.2f" .Activity.MessagesPerDay}}</div>
</div>

<div class="section">
<h2>Participant Activity</h2>
{{range .Participants}}<div class="stat">{{.Name}}: {{.Count}} messages ({{printf "%.1f" .Percent}}%)</div>
{{end}}</div>

<div class="section">
<h2>Activity by Day of Week</h2>
{{range .Weekdays}}<div class="stat">{{.Day}}: {{.Count}} messages</div>
{{end}}</div>

<div class="section">
<h2>Emoji Analysis</h2>
<div class="stat">Total Emojis Used: {{.Emojis.TotalEmojis}}</div>
<div class="stat">Messages with Emojis: {{.Emojis.MessagesWithEmojis}} ({{printf "%.1f" .EmojiShare}}%)</div>
<div class="highlight">
<h3>Top Emojis</h3>
{{range .Emojis.TopEmojis}}<span style="font-size: 20px;">{{.Key}}</span> ({{.Count}}) {{end}}
</div>
</div>

<div class="section">
<h2>Word Analysis</h2>
<div class="stat">Total Words: {{.Words.TotalWords}}</div>
<div class="stat">Unique Words: {{.Words.UniqueWords}}</div>
<div class="stat">Average Words per Message: {{printf "%.2f" .Words.AvgWordsPerMessage}}</div>
<div class="highlight">
<h3>Top Words</h3>
{{range .Words.TopWords}}{{.Key}} ({{.Count}}) {{end}}
</div>
</div>

<div class="section">
<h2>Sentiment Analysis</h2>
<div class="stat">Average Sentiment: {{printf "%.3f" .Sentiment.AvgSentiment}}</div>
<div class="stat">Positive Messages: {{.Sentiment.Positive}}</div>
<div class="stat">Negative Messages: {{.Sentiment.Negative}}</div>
<div class="stat">Neutral Messages: {{.Sentiment.Neutral}}</div>
</div>
</body>
</html>
`))

// WriteHTML renders the report to path. For an empty corpus it warns and
// writes nothing.
func WriteHTML(path string, d Data) error {
	if d.Activity.TotalMessages == 0 {
		fmt.Fprintln(os.Stderr, "chatlens: no data to report; parse a transcript first")
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	if err := reportTmpl.Execute(f, d); err != nil {
		f.Close()
		return fmt.Errorf("render report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
