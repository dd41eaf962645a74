package ir

// types.go - Document structure types (Bible, Book, Chapter, Verse).
// Inline element variants live in content.go.

// Bible is the root of the document tree.
type Bible struct {
	// Name is the human-readable title of the Bible.
	Name string `json:"name"`

	// Books contains all books in canonical order.
	Books []*Book `json:"books"`
}

// Book is a single book of the Bible.
type Book struct {
	// Abbr is the book abbreviation used in anchors (e.g., "Gen", "1Jn").
	Abbr string `json:"abbr"`

	// OSISID is the canonical OSIS book identifier (e.g., "Gen", "1John").
	OSISID string `json:"osis_id"`

	// ShortName is the short display name (e.g., "Genesis").
	ShortName string `json:"short_name"`

	// LongName is the long display name (e.g., "The First Book of Moses").
	LongName string `json:"long_name"`

	// Chapters contains the chapters; chapter numbers are positional, starting at 1.
	Chapters []*Chapter `json:"chapters"`
}

// Chapter holds an optional prolog and the verses of one chapter.
type Chapter struct {
	// Prolog is the chapter front matter; nil when the chapter has none.
	Prolog []Element `json:"-"`

	// Verses contains the verses in order.
	Verses []*Verse `json:"verses"`
}

// HasProlog reports whether the chapter carries front matter.
func (c *Chapter) HasProlog() bool {
	return c.Prolog != nil
}

// Verse is a numbered verse with inline content.
type Verse struct {
	// Number is the verse number as written (e.g., "1", "1a", "5/6").
	Number string `json:"number"`

	// Content is the inline content of the verse.
	Content []Element `json:"-"`
}

// ChapterCount returns the number of chapters in the book.
func (b *Book) ChapterCount() int {
	return len(b.Chapters)
}

// VerseCount returns the total number of verses in the Bible.
func (b *Bible) VerseCount() int {
	n := 0
	for _, bk := range b.Books {
		for _, ch := range bk.Chapters {
			n += len(ch.Verses)
		}
	}
	return n
}
