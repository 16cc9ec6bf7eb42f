package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).MarginTop(1)
	labelStyle   = lipgloss.NewStyle().Faint(true)
	valueStyle   = lipgloss.NewStyle().Bold(true)
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
)

// Summary renders a styled terminal digest of the report data. width bounds
// the sender activity bars; width <= 0 falls back to 80 columns.
func Summary(d Data, width int) string {
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	line := func(label string, format string, args ...any) {
		b.WriteString("  ")
		b.WriteString(labelStyle.Render(runewidth.FillRight(label, 26)))
		b.WriteString(valueStyle.Render(fmt.Sprintf(format, args...)))
		b.WriteString("\n")
	}

	b.WriteString(titleStyle.Render("Chat analysis: " + d.SourceFile))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Basics"))
	b.WriteString("\n")
	line("Messages", "%d", d.Activity.TotalMessages)
	line("Participants", "%d", d.Activity.TotalParticipants)
	line("Date range", "%s to %s",
		d.Activity.FirstMessage.Format("2006-01-02"),
		d.Activity.LastMessage.Format("2006-01-02"))
	line("Days", "%d", d.Activity.TotalDays)
	line("Messages per day", "%.2f", d.Activity.MessagesPerDay)

	b.WriteString(sectionStyle.Render("Participants"))
	b.WriteString("\n")
	barWidth := width - 40
	if barWidth < 10 {
		barWidth = 10
	}
	for _, p := range d.Participants {
		bar := activityBar(p.Percent, barWidth)
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			labelStyle.Render(runewidth.FillRight(truncate(p.Name, 24), 26)),
			barStyle.Render(bar),
			valueStyle.Render(fmt.Sprintf("%d (%.1f%%)", p.Count, p.Percent))))
	}

	b.WriteString(sectionStyle.Render("Emoji"))
	b.WriteString("\n")
	line("Total emojis", "%d", d.Emojis.TotalEmojis)
	line("Messages with emojis", "%d (%.1f%%)", d.Emojis.MessagesWithEmojis, d.EmojiShare)
	if len(d.Emojis.TopEmojis) > 0 {
		var tops []string
		for _, e := range d.Emojis.TopEmojis {
			tops = append(tops, fmt.Sprintf("%s %d", e.Key, e.Count))
		}
		line("Top", "%s", strings.Join(tops, "  "))
	}

	b.WriteString(sectionStyle.Render("Words"))
	b.WriteString("\n")
	line("Total words", "%d", d.Words.TotalWords)
	line("Unique words", "%d", d.Words.UniqueWords)
	line("Avg words per message", "%.2f", d.Words.AvgWordsPerMessage)
	if len(d.Words.TopWords) > 0 {
		n := len(d.Words.TopWords)
		if n > 8 {
			n = 8
		}
		var tops []string
		for _, w := range d.Words.TopWords[:n] {
			tops = append(tops, fmt.Sprintf("%s(%d)", w.Key, w.Count))
		}
		line("Top", "%s", strings.Join(tops, " "))
	}

	b.WriteString(sectionStyle.Render("Sentiment"))
	b.WriteString("\n")
	line("Average polarity", "%+.3f", d.Sentiment.AvgSentiment)
	line("Positive / negative / neutral", "%d / %d / %d",
		d.Sentiment.Positive, d.Sentiment.Negative, d.Sentiment.Neutral)

	return b.String()
}

func activityBar(percent float64, maxWidth int) string {
	n := int(percent / 100 * float64(maxWidth))
	if n < 1 {
		n = 1
	}
	if n > maxWidth {
		n = maxWidth
	}
	return strings.Repeat("█", n)
}

func truncate(s string, max int) string {
	if runewidth.StringWidth(s) <= max {
		return s
	}
	return runewidth.Truncate(s, max, "…")
}
