// Package ir provides the in-memory document tree exported by bibleodt.
//
// The tree is hierarchical and immutable once built:
//
//   - Bible: top-level container with a display name
//   - Book: abbreviation, OSIS id, short and long names
//   - Chapter: optional prolog plus an ordered list of verses
//   - Verse: a verse number and its inline content
//
// # Inline Elements
//
// Prologs and verses hold a sequence of Element values. Element is a closed
// sum type: every variant is defined in this package and carries an
// unexported marker method, so consumers can switch over the concrete types
// exhaustively. Container variants (formatting, footnotes, cross-references,
// grammar information, headlines, ...) own a nested child sequence.
//
// # Input
//
// Trees are usually read from JSON with Decode. Each element object carries
// a "type" discriminator; cross-references may use a compact OSIS-style
// range string such as "Gen.1.1-2.3" (see ParseRange).
//
// # Example
//
//	bible := &ir.Bible{Name: "Example"}
//	bible.Books = append(bible.Books, &ir.Book{
//	    Abbr:      "Gen",
//	    OSISID:    "Gen",
//	    ShortName: "Genesis",
//	    LongName:  "Genesis",
//	    Chapters: []*ir.Chapter{{
//	        Verses: []*ir.Verse{{
//	            Number:  "1",
//	            Content: []ir.Element{&ir.Text{Value: "In the beginning"}},
//	        }},
//	    }},
//	})
package ir
