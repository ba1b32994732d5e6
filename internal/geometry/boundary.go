package geometry

import (
	"regexp"

	"golang.org/x/text/width"

	"github.com/hholst80/flowdoc/internal/docmodel"
)

// wordChar matches the Unicode letters/numbers plus apostrophes,
// underscore, tilde, and hyphen that make up a "word" for expansion
// purposes (spec.md §4.F).
var wordChar = regexp.MustCompile(`[\p{L}\p{N}'’_~\-]`)

// IsWordChar reports whether r participates in a word for boundary
// expansion purposes. Fullwidth/halfwidth forms (e.g. U+FF21
// FULLWIDTH LATIN CAPITAL LETTER A) are folded to their narrow
// equivalent first so a CJK document's fullwidth punctuation and
// alphanumerics classify the same as their ASCII counterparts.
func IsWordChar(r rune) bool {
	if folded := width.LookupRune(r).Folded(); folded != 0 {
		r = folded
	}
	return wordChar.MatchString(string(r))
}

// TextBearingBlock is the minimal view a boundary expansion needs of
// the nearest enclosing text-bearing block: its full rune text and
// the document position its first rune occupies.
type TextBearingBlock struct {
	Text     []rune
	StartPos int
}

// ExpandWord expands pos to the [start,end) bounds of the word it
// falls within, never crossing the block's own [start,end) (spec.md
// §4.F). If pos lands on a non-word character, the returned range is
// empty at pos.
func ExpandWord(block TextBearingBlock, pos int) (start, end int) {
	idx := pos - block.StartPos
	n := len(block.Text)
	if idx < 0 || idx >= n || !IsWordChar(block.Text[idx]) {
		return pos, pos
	}
	s, e := idx, idx
	for s > 0 && IsWordChar(block.Text[s-1]) {
		s--
	}
	for e < n && IsWordChar(block.Text[e]) {
		e++
	}
	return block.StartPos + s, block.StartPos + e
}

// ExpandParagraph expands pos to the nearest enclosing text-bearing
// block's full [start,end) (spec.md §4.F).
func ExpandParagraph(block TextBearingBlock) (start, end int) {
	return block.StartPos, block.StartPos + len(block.Text)
}

// NearestTextBearingBlock builds a TextBearingBlock for a Paragraph
// block by concatenating its runs' text and using the minimum run
// PMStart as the block's start position.
func NearestTextBearingBlock(p *docmodel.Paragraph) (TextBearingBlock, bool) {
	if p == nil || len(p.Runs) == 0 {
		return TextBearingBlock{}, false
	}
	start := p.Runs[0].PMStart
	var text []rune
	for _, r := range p.Runs {
		if r.PMStart < start {
			start = r.PMStart
		}
		text = append(text, []rune(r.Text)...)
	}
	return TextBearingBlock{Text: text, StartPos: start}, true
}
