package ir

import (
	"strconv"
	"strings"
)

// AnchorAbbr returns the book abbreviation as used inside anchor keys.
// Dots are not allowed in bookmark names, so they become underscores.
func AnchorAbbr(abbr string) string {
	return strings.ReplaceAll(abbr, ".", "_")
}

// VerseKey returns the anchor key of a single verse: "<abbr>-<chapter>-<verse>".
func VerseKey(abbr string, chapter int, verse string) string {
	return AnchorAbbr(abbr) + "-" + strconv.Itoa(chapter) + "-" + verse
}

// PrefixKey returns the key of the verse the cross-reference starts at.
// It equals the VerseKey of that verse.
func (x *CrossReference) PrefixKey() string {
	return VerseKey(x.BookAbbr, x.FirstChapter, x.FirstVerse)
}

// FullKey returns the key identifying the whole referenced range:
// "<prefix>-<lastChapter>-<lastVerse>".
func (x *CrossReference) FullKey() string {
	return x.PrefixKey() + "-" + strconv.Itoa(x.LastChapter) + "-" + x.LastVerse
}
