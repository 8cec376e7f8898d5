package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestShorten_CollapsesWhitespace(t *testing.T) {
	got := Shorten("  hello \t\n  world  ", 100)
	if got != "hello world" {
		t.Fatalf("expected collapsed text, got %q", got)
	}
}

func TestShorten_EmptyInput(t *testing.T) {
	if got := Shorten("   \n\t ", 100); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestShorten_BoundedLength(t *testing.T) {
	long := strings.Repeat("word ", 100)
	got := Shorten(long, 40)
	if len(got) > 40+3 {
		t.Fatalf("output too long: %d chars: %q", len(got), got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
}

func TestShorten_CutsAtWordBoundary(t *testing.T) {
	got := Shorten("alpha beta gamma delta", 12)
	if got != "alpha beta..." {
		t.Fatalf("expected cut at word boundary, got %q", got)
	}
}

func TestShorten_KeepsRunesIntact(t *testing.T) {
	got := Shorten(strings.Repeat("课", 30), 80)
	if !utf8.ValidString(got) {
		t.Fatalf("output is not valid UTF-8: %q", got)
	}
	if len(got) > 80+3 {
		t.Fatalf("output too long: %d bytes: %q", len(got), got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
}

func TestShorten_NoTruncationWhenShort(t *testing.T) {
	if got := Shorten("short text", 40); got != "short text" {
		t.Fatalf("expected input unchanged, got %q", got)
	}
}

func TestShorten_Idempotent(t *testing.T) {
	once := Shorten("some already normal text", 40)
	if twice := Shorten(once, 40); twice != once {
		t.Fatalf("expected idempotence, got %q then %q", once, twice)
	}
}
