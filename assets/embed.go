package assets

import (
	"bufio"
	"embed"
	"fmt"
	"strings"
)

// FS holds the default phrase book and the gallows art.
//
//go:embed phrases.txt gallows.txt
var FS embed.FS

// GallowsFrames is the number of frames in gallows.txt, one per stage.
const GallowsFrames = 7

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
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

// PhraseLines returns the raw lines of the embedded phrase book.
func PhraseLines() ([]string, error) {
	return readLines("phrases.txt")
}

// Gallows returns the ASCII frames, index = number of wrong guesses.
func Gallows() ([]string, error) {
	lines, err := readLines("gallows.txt")
	if err != nil {
		return nil, err
	}
	var (
		frames []string
		cur    []string
	)
	for _, l := range lines {
		switch {
		case strings.HasPrefix(l, "#"):
		case l == "==":
			frames = append(frames, strings.Join(cur, "\n"))
			cur = nil
		default:
			cur = append(cur, l)
		}
	}
	frames = append(frames, strings.Join(cur, "\n"))
	if len(frames) != GallowsFrames {
		return nil, fmt.Errorf("gallows.txt: %d frames, want %d", len(frames), GallowsFrames)
	}
	return frames, nil
}
