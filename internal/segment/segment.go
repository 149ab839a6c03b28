package segment

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// represents single word extracted from sentence text
type Word struct {
	Text     string
	Position int // rune offset in the source text
	Length   int // user-perceived characters (grapheme clusters)
}

// splits sentence text into words at Unicode word boundaries
type Segmenter struct{}

func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Words returns the word-like segments of text in order. Boundaries follow
// UAX #29; segments without at least one letter or number rune (spaces,
// punctuation runs, newlines) are dropped.
func (s *Segmenter) Words(text string) []Word {
	var words []Word

	state := -1
	rest := text
	pos := 0
	for len(rest) > 0 {
		var seg string
		seg, rest, state = uniseg.FirstWordInString(rest, state)
		if isWordLike(seg) {
			words = append(words, Word{
				Text:     seg,
				Position: pos,
				Length:   uniseg.GraphemeClusterCount(seg),
			})
		}
		pos += utf8.RuneCountInString(seg)
	}

	return words
}

// TotalLength sums the perceived length of every word.
func TotalLength(words []Word) int {
	total := 0
	for _, w := range words {
		total += w.Length
	}
	return total
}

func isWordLike(seg string) bool {
	for _, r := range seg {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
