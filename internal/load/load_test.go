package load

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadLines_Text(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "chat.txt")
	content := "[01/01/2024, 09:00:00] Alice: hi\r\nsecond line\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	lines, err := ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if len(lines) < 2 {
		t.Fatalf("len(lines)=%d, want >= 2", len(lines))
	}
	if lines[0] != "[01/01/2024, 09:00:00] Alice: hi" {
		t.Errorf("lines[0]=%q, carriage return not stripped", lines[0])
	}
	if lines[1] != "second line" {
		t.Errorf("lines[1]=%q, want %q", lines[1], "second line")
	}
}

func TestReadLines_Missing(t *testing.T) {
	t.Parallel()

	_, err := ReadLines(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("want error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err=%v, want wrapped os.ErrNotExist", err)
	}
}

func TestReadLines_InvalidUTF8(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x41}, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := ReadLines(path)
	if !errors.Is(err, ErrNotUTF8) {
		t.Errorf("err=%v, want ErrNotUTF8", err)
	}
}

func TestLooksLikeChat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"bracket timestamp", "[15/01/2024, 14:30:25] John: Hello there!", true},
		{"dash timestamp", "15/01/2024, 14:30 - John: Hello", true},
		{"encryption notice", "Messages and calls are END-TO-END ENCRYPTED.", true},
		{"media placeholder", "something\n<Media omitted>\nsomething", true},
		{"export header", "WhatsApp Chat with Alice", true},
		{"two message-like lines", "[1/1/2024 weird] Alice: a\n[2/1/2024 weird] Bob: b", true},
		{"one message-like line", "[1/1/2024 weird] Alice: a\nplain text", false},
		{"random prose", "The quick brown fox jumps over the lazy dog.\nNothing to see.", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := looksLikeChat(tt.text); got != tt.want {
				t.Errorf("looksLikeChat(%q)=%v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestNotChatError_Message(t *testing.T) {
	t.Parallel()

	err := &NotChatError{Sample: "quarterly financial report"}
	msg := err.Error()
	if !strings.Contains(msg, "quarterly financial report") {
		t.Errorf("error %q does not name the offending sample", msg)
	}
	if !strings.Contains(msg, "[15/01/2024, 14:30:25]") {
		t.Errorf("error %q does not show the expected format", msg)
	}
}

func TestSampleText_Truncates(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a\n", 300)
	got := sampleText(long, 200)
	if strings.Contains(got, "\n") {
		t.Error("sample contains newlines")
	}
	if len([]rune(got)) > 203 { // 200 + "..."
		t.Errorf("sample too long: %d runes", len([]rune(got)))
	}
}
