package phrasebook

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadEmbedded(t *testing.T) {
	b, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() < 10 {
		t.Fatalf("Len = %d", b.Len())
	}
	for i := 0; i < b.Len(); i++ {
		if strings.HasPrefix(b.At(i), "#") {
			t.Fatalf("comment line loaded: %q", b.At(i))
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phrases.txt")
	body := "# comment\n\n  Hello World  \n" + strings.Repeat("x", MaxRunes+1) + "\nGoodbye\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != 2 || b.At(0) != "Hello World" || b.At(1) != "Goodbye" {
		t.Fatalf("phrases = %q", b.phrases)
	}
	if b.At(2) != "Hello World" || b.At(-1) != "Goodbye" {
		t.Fatal("At should wrap")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("want error")
	}
}

func TestNewEmpty(t *testing.T) {
	if _, err := New([]string{"", "  ", "# only comments"}); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v", err)
	}
}

func TestRandom(t *testing.T) {
	b, _ := New([]string{"one", "two", "three"})
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[b.Random()] = true
	}
	for p := range seen {
		if p != "one" && p != "two" && p != "three" {
			t.Fatalf("Random returned %q", p)
		}
	}
}

func TestNewNormalizesInnerWhitespace(t *testing.T) {
	b, err := New([]string{"break\ta leg"})
	if err != nil {
		t.Fatal(err)
	}
	if got := b.At(0); got != "break a leg" {
		t.Fatalf("At(0) = %q", got)
	}
}
