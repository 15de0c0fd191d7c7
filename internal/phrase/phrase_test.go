package phrase

import (
	"errors"
	"testing"
	"unicode/utf8"
)

func TestBuildLengthAndWhitespace(t *testing.T) {
	cases := []string{"", "cat", "Hi There", "  ", "don't stop", "tab\there", "héllo wörld", "a1!?"}
	for _, p := range cases {
		m := Build(p)
		if len(m) != utf8.RuneCountInString(p) {
			t.Errorf("Build(%q): len = %d, want %d", p, len(m), utf8.RuneCountInString(p))
		}
		i := 0
		for _, r := range p {
			space := r == ' '
			if m[i].Char != r {
				t.Errorf("Build(%q)[%d].Char = %q, want %q", p, i, m[i].Char, r)
			}
			if m[i].Revealed != space {
				t.Errorf("Build(%q)[%d].Revealed = %v, want %v", p, i, m[i].Revealed, space)
			}
			i++
		}
	}
}

func TestApplyMatchRevealsAllCaseInsensitive(t *testing.T) {
	s := Apply(NewState("apple"), 'A')
	if len(s.Incorrect) != 0 {
		t.Fatalf("Incorrect = %q, want empty", s.Incorrect)
	}
	if got := s.Phrase.Masked('_'); got != "a____" {
		t.Fatalf("Masked = %q, want %q", got, "a____")
	}

	s = Apply(s, 'p')
	if got := s.Phrase.Masked('_'); got != "app__" {
		t.Fatalf("Masked = %q, want %q", got, "app__")
	}
}

func TestApplyMixedScenario(t *testing.T) {
	s := NewState("Hi There")
	if !s.Phrase[2].Revealed {
		t.Fatal("space slot should start revealed")
	}

	s = Apply(s, 'h')
	if !s.Phrase[0].Revealed || !s.Phrase[4].Revealed {
		t.Fatalf("expected H and h revealed, got %q", s.Phrase.Masked('_'))
	}
	if s.Phrase[0].Char != 'H' {
		t.Fatalf("slot keeps original casing, got %q", s.Phrase[0].Char)
	}
	if got := s.Phrase.Masked('_'); got != "H_ _h___" {
		t.Fatalf("Masked = %q", got)
	}

	before := s.Phrase.Masked('_')
	s = Apply(s, 'z')
	if string(s.Incorrect) != "z" {
		t.Fatalf("Incorrect = %q, want z", string(s.Incorrect))
	}
	if s.Phrase.Masked('_') != before {
		t.Fatalf("miss changed the map: %q", s.Phrase.Masked('_'))
	}
}

func TestApplyRepeatedMatchIsIdempotent(t *testing.T) {
	s := Apply(NewState("cat"), 'c')
	again := Apply(s, 'c')
	again = Apply(again, 'C')
	if len(again.Incorrect) != 0 {
		t.Fatalf("re-guessing a revealed letter counted as a miss: %q", string(again.Incorrect))
	}
	if again.Phrase.Masked('_') != "c__" {
		t.Fatalf("Masked = %q", again.Phrase.Masked('_'))
	}
}

func TestApplyRepeatedMissCountsAgain(t *testing.T) {
	s := NewState("dog")
	s = Apply(s, 'x')
	s = Apply(s, 'x')
	if string(s.Incorrect) != "xx" {
		t.Fatalf("Incorrect = %q, want xx", string(s.Incorrect))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	s := NewState("cat")
	s.Incorrect = make([]rune, 0, 8)
	hit := Apply(s, 'a')
	miss := Apply(s, 'q')
	if s.Phrase[1].Revealed {
		t.Fatal("Apply mutated the input map")
	}
	if len(s.Incorrect) != 0 {
		t.Fatal("Apply mutated the input misses")
	}
	hit.Phrase[0].Revealed = true
	if miss.Phrase[0].Revealed || s.Phrase[0].Revealed {
		t.Fatal("states share a backing map")
	}
}

func TestMissesAreMonotonic(t *testing.T) {
	s := NewState("Mississippi")
	prev := 0
	for _, g := range "zsmxiqpMw" {
		s = Apply(s, g)
		if len(s.Incorrect) < prev {
			t.Fatalf("misses decreased after %q", g)
		}
		prev = len(s.Incorrect)
	}
	if prev != 4 {
		t.Fatalf("misses = %d, want 4", prev)
	}
}

func TestWin(t *testing.T) {
	for _, order := range []string{"cat", "tac", "ACT", "tCa"} {
		s := NewState("cat")
		for _, g := range order {
			if s.Won() {
				t.Fatalf("%s: won before all letters guessed", order)
			}
			s = Apply(s, g)
		}
		if !s.Won() {
			t.Fatalf("%s: want won, got %q", order, s.Phrase.Masked('_'))
		}
		if s.Lost() {
			t.Fatalf("%s: won game reports lost", order)
		}
	}
}

func TestWinIgnoresSpaces(t *testing.T) {
	s := NewState("a b")
	s = Apply(s, 'a')
	s = Apply(s, 'b')
	if !s.Won() {
		t.Fatal("want won")
	}
}

func TestLoss(t *testing.T) {
	s := NewState("dog")
	for i, g := range "xyzqwr" {
		if s.Lost() {
			t.Fatalf("lost after %d misses", i)
		}
		if s.Stage() != i {
			t.Fatalf("Stage = %d, want %d", s.Stage(), i)
		}
		s = Apply(s, g)
	}
	if len(s.Incorrect) != MaxIncorrect || !s.Lost() {
		t.Fatalf("want lost with %d misses, got %d", MaxIncorrect, len(s.Incorrect))
	}
	if s.Phrase.Masked('_') != "___" {
		t.Fatalf("slots revealed on loss: %q", s.Phrase.Masked('_'))
	}
	if s.Stage() != MaxIncorrect || s.Remaining() != 0 {
		t.Fatalf("Stage/Remaining = %d/%d", s.Stage(), s.Remaining())
	}
	s = Apply(s, 'v')
	if s.Stage() != MaxIncorrect || s.Remaining() != 0 {
		t.Fatalf("Stage/Remaining must clamp, got %d/%d", s.Stage(), s.Remaining())
	}
}

func TestMapString(t *testing.T) {
	if got := Build("Hi There").String(); got != "Hi There" {
		t.Fatalf("String = %q", got)
	}
}

func TestParseGuess(t *testing.T) {
	tests := []struct {
		in   string
		want rune
		err  error
	}{
		{"a", 'a', nil},
		{" Q ", 'Q', nil},
		{"é", 'é', nil},
		{"'", '\'', nil},
		{"", 0, ErrInvalidGuess},
		{"   ", 0, ErrInvalidGuess},
		{"ab", 0, ErrInvalidGuess},
		{"\x01", 0, ErrInvalidGuess},
		{"\xff", 0, ErrInvalidGuess},
		{"a\xff", 0, ErrInvalidGuess},
		{"\uFFFD", '\uFFFD', nil},
	}
	for _, tt := range tests {
		got, err := ParseGuess(tt.in)
		if !errors.Is(err, tt.err) {
			t.Errorf("ParseGuess(%q) err = %v, want %v", tt.in, err, tt.err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseGuess(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidatePhrase(t *testing.T) {
	if err := ValidatePhrase(""); !errors.Is(err, ErrEmptyPhrase) {
		t.Fatalf("empty: %v", err)
	}
	if err := ValidatePhrase(" \t "); !errors.Is(err, ErrEmptyPhrase) {
		t.Fatalf("blank: %v", err)
	}
	if err := ValidatePhrase("x"); err != nil {
		t.Fatalf("x: %v", err)
	}
}

func TestSameLetter(t *testing.T) {
	if !SameLetter('a', 'A') || !SameLetter('É', 'é') || !SameLetter('x', 'x') {
		t.Fatal("case variants should match")
	}
	if SameLetter('a', 'b') {
		t.Fatal("different letters matched")
	}
}

func TestBuildHidesOtherWhitespace(t *testing.T) {
	m := Build("tab\there\u00a0x")
	if m[3].Char != '\t' || m[3].Revealed {
		t.Fatalf("tab slot = %+v, want hidden", m[3])
	}
	if m[8].Revealed {
		t.Fatalf("nbsp slot = %+v, want hidden", m[8])
	}
}

func TestNormalizeSpace(t *testing.T) {
	tests := []struct{ in, want string }{
		{"tab\there", "tab here"},
		{"a\nb\u00a0c", "a b c"},
		{"plain words", "plain words"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeSpace(tt.in); got != tt.want {
			t.Errorf("NormalizeSpace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	s := NewState(NormalizeSpace("a\tb"))
	s = Apply(Apply(s, 'a'), 'b')
	if !s.Won() {
		t.Fatalf("normalized phrase not winnable: %q", s.Phrase.Masked('_'))
	}
}

func TestFolderKey(t *testing.T) {
	f := NewFolder()
	if f.Key('A') != f.Key('a') || f.Key('Σ') != f.Key('σ') {
		t.Fatal("case variants should share a key")
	}
	if f.Key('a') == f.Key('b') {
		t.Fatal("different letters share a key")
	}
	if f.Key('ß') != "ss" {
		t.Fatalf("Key('ß') = %q, want full folding", f.Key('ß'))
	}
}
