package ir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/bibleodt/core/errors"
)

// Range is a verse range as written in a compact cross-reference.
type Range struct {
	Book         string
	FirstChapter int
	FirstVerse   string
	LastChapter  int
	LastVerse    string
}

// rangeGrammar is the participle grammar for OSIS-style verse ranges.
// Examples: "Gen.1.1", "Gen.1.1-3", "Gen.1.1-2.3", "1John.3.16a"
//
//nolint:govet // participle grammar tags are not standard struct tags
type rangeGrammar struct {
	BookPrefix string     `@Int?`
	BookName   string     `@Ident`
	Chapter    int        `"." @Int`
	Verse      *versePart `"." @@`
	End        *endPart   `( "-" @@ )?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type versePart struct {
	Number   int     `@Int`
	SubVerse *string `@SubVerse?`
}

// endPart is either "<verse>" or "<chapter>.<verse>".
//
//nolint:govet // participle grammar tags are not standard struct tags
type endPart struct {
	First  *versePart `@@`
	Second *versePart `( "." @@ )?`
}

func (v *versePart) String() string {
	s := strconv.Itoa(v.Number)
	if v.SubVerse != nil {
		s += *v.SubVerse
	}
	return s
}

// rangeLexer defines the lexer for verse ranges.
// Ident starts with uppercase to distinguish book names from sub-verse letters.
var rangeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Z][A-Za-z]*`},
	{Name: "SubVerse", Pattern: `[a-z]`},
	{Name: "Punct", Pattern: `[.\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var rangeParser = participle.MustBuild[rangeGrammar](
	participle.Lexer(rangeLexer),
	participle.Elide("Whitespace"),
)

// ParseRange parses a compact verse range.
// Supported formats:
//   - "Gen.1.1" (single verse)
//   - "Gen.1.1-3" (verse range within the chapter)
//   - "Gen.1.1-2.3" (range across chapters)
//   - "1John.3.16a" (numeric book prefix, sub-verse letter)
func ParseRange(s string) (*Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.NewParse("reference", "", "empty reference string")
	}

	parsed, err := rangeParser.ParseString("", s)
	if err != nil {
		return nil, &errors.ParseError{
			Format:  "reference",
			Message: fmt.Sprintf("invalid reference format: %q", s),
			Err:     err,
		}
	}

	r := &Range{
		Book:         parsed.BookPrefix + parsed.BookName,
		FirstChapter: parsed.Chapter,
		FirstVerse:   parsed.Verse.String(),
		LastChapter:  parsed.Chapter,
		LastVerse:    parsed.Verse.String(),
	}

	if end := parsed.End; end != nil {
		if end.Second != nil {
			if end.First.SubVerse != nil {
				return nil, errors.NewParse("reference", "", fmt.Sprintf("chapter number with sub-verse in %q", s))
			}
			r.LastChapter = end.First.Number
			r.LastVerse = end.Second.String()
		} else {
			r.LastVerse = end.First.String()
		}
	}

	return r, nil
}

// String returns the OSIS-style representation of the range.
func (r *Range) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s.%d.%s", r.Book, r.FirstChapter, r.FirstVerse)
	switch {
	case r.LastChapter != r.FirstChapter:
		fmt.Fprintf(&sb, "-%d.%s", r.LastChapter, r.LastVerse)
	case r.LastVerse != r.FirstVerse:
		fmt.Fprintf(&sb, "-%s", r.LastVerse)
	}
	return sb.String()
}

// CrossReference builds a cross-reference element for the range.
func (r *Range) CrossReference(children ...Element) *CrossReference {
	return &CrossReference{
		BookAbbr:     r.Book,
		BookID:       r.Book,
		FirstChapter: r.FirstChapter,
		FirstVerse:   r.FirstVerse,
		LastChapter:  r.LastChapter,
		LastVerse:    r.LastVerse,
		Content:      children,
	}
}
