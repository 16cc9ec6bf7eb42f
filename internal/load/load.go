package load

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// ErrNotUTF8 is returned for text files whose content is not valid UTF-8.
// Exports are always UTF-8; anything else is garbage we refuse to guess at.
var ErrNotUTF8 = errors.New("file is not valid UTF-8 text")

// NotChatError is returned when a PDF yields text that does not look like a
// WhatsApp chat export. It carries a sample of what was found so the caller
// can show the user why the file was rejected.
type NotChatError struct {
	Sample string
}

func (e *NotChatError) Error() string {
	return fmt.Sprintf("pdf does not contain WhatsApp chat export data (found: %q); "+
		"expected lines like [15/01/2024, 14:30:25] John: Hello there! "+
		"(export via WhatsApp > Chat > Menu > More > Export Chat > Without Media)",
		e.Sample)
}

// ReadLines reads a chat export into terminator-stripped lines. PDF files go
// through page-text extraction and a WhatsApp-likeness check; everything else
// is read as plain UTF-8 text.
func ReadLines(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return readPDF(path)
	}
	return readText(path)
}

func readText(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("read %s: %w", path, ErrNotUTF8)
	}
	return splitLines(string(data)), nil
}

func readPDF(path string) (lines []string, err error) {
	// The pdf reader panics on some malformed files; surface that as an
	// extraction error instead of crashing the whole pipeline.
	defer func() {
		if r := recover(); r != nil {
			lines = nil
			err = fmt.Errorf("extract text from pdf %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract text from pdf %s (page %d): %w", path, i, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	text := b.String()
	if !looksLikeChat(text) {
		return nil, &NotChatError{Sample: sampleText(text, 200)}
	}
	return splitLines(text), nil
}

var (
	tsBracket = regexp.MustCompile(`\[\d{1,2}/\d{1,2}/\d{2,4},\s*\d{1,2}:\d{2}:\d{2}\]`)
	tsDash    = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4},\s*\d{1,2}:\d{2}\s*-`)
	msgLike   = regexp.MustCompile(`^\[\d{1,2}/\d{1,2}/\d{2,4}.*?\].*?:`)
)

// Boilerplate phrases WhatsApp injects into exports. Matched case-insensitively.
var boilerplate = []string{
	"messages to this chat and calls are now secured",
	"end-to-end encryption",
	"this message was deleted",
	"media omitted",
	"whatsapp chat with",
	"messages and calls are end-to-end encrypted",
}

// looksLikeChat reports whether extracted PDF text plausibly came from a
// WhatsApp export. PDF exports vary in boilerplate but always keep the
// per-message timestamp shape, so the fallback scans the first lines for it.
func looksLikeChat(text string) bool {
	if tsBracket.MatchString(text) || tsDash.MatchString(text) {
		return true
	}
	lower := strings.ToLower(text)
	for _, phrase := range boilerplate {
		if strings.Contains(lower, phrase) {
			return true
		}
	}

	lines := strings.Split(text, "\n")
	if len(lines) > 50 {
		lines = lines[:50]
	}
	messageLike := 0
	for _, line := range lines {
		if msgLike.MatchString(strings.TrimSpace(line)) {
			messageLike++
			if messageLike >= 2 {
				return true
			}
		}
	}
	return false
}

func sampleText(text string, max int) string {
	sample := strings.ReplaceAll(text, "\n", " ")
	runes := []rune(sample)
	if len(runes) > max {
		sample = string(runes[:max]) + "..."
	}
	return strings.TrimSpace(sample)
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
