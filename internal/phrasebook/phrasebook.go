// internal/phrasebook/phrasebook.go
//
// Phrase book for solo and daily rounds.
//
// Responsibilities:
//   - Load phrases from a file (PHRASES_FILE) or fall back to the embedded
//     default list in assets/phrases.txt.
//   - Supply Random (crypto/rand) and At (deterministic, for the daily phrase).
//
// File format: one phrase per line; surrounding whitespace is trimmed, blank
// lines and lines starting with '#' are skipped, and so are phrases longer
// than MaxRunes.

package phrasebook

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/hangman/assets"
	"github.com/robalobadob/hangman/internal/phrase"
)

// MaxRunes bounds a single phrase.
const MaxRunes = 80

var ErrEmpty = errors.New("phrasebook: no usable phrases")

// Book is an immutable list of phrases.
type Book struct {
	phrases []string
}

// Load reads path, or the embedded defaults when path is empty.
func Load(path string) (*Book, error) {
	var (
		lines []string
		err   error
	)
	if path == "" {
		lines, err = assets.PhraseLines()
	} else {
		lines, err = readFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("phrasebook: %w", err)
	}
	return New(lines)
}

// New builds a book from raw lines.
func New(lines []string) (*Book, error) {
	b := &Book{phrases: normalize(lines)}
	if len(b.phrases) == 0 {
		return nil, ErrEmpty
	}
	return b, nil
}

func readFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

func normalize(lines []string) []string {
	var out []string
	for _, line := range lines {
		p := phrase.NormalizeSpace(strings.TrimSpace(line))
		if strings.HasPrefix(p, "#") || phrase.ValidatePhrase(p) != nil {
			continue
		}
		if !utf8.ValidString(p) || utf8.RuneCountInString(p) > MaxRunes {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Len is the number of phrases.
func (b *Book) Len() int { return len(b.phrases) }

// At returns the phrase at i modulo Len.
func (b *Book) At(i int) string {
	n := len(b.phrases)
	return b.phrases[((i%n)+n)%n]
}

// Random returns a cryptographically random phrase.
func (b *Book) Random() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(b.phrases))))
	if err != nil {
		return b.phrases[0]
	}
	return b.phrases[n.Int64()]
}
