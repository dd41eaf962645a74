package ir

import (
	"fmt"

	"github.com/FocuswithJustin/bibleodt/core/errors"
)

// MaxHeadlineDepth is the deepest headline level with a paragraph style.
const MaxHeadlineDepth = 9

// Validate validates a Bible and returns all validation errors.
// Every returned error is a *errors.ValidationError.
func Validate(b *Bible) []error {
	var errs []error

	for i, bk := range b.Books {
		bookPath := fmt.Sprintf("books[%d]", i)
		if bk.Abbr == "" {
			errs = append(errs, errors.NewValidation(bookPath+".abbr", "book abbreviation is required"))
		}
		for c, ch := range bk.Chapters {
			chPath := fmt.Sprintf("%s.chapters[%d]", bookPath, c)
			errs = append(errs, ValidateElements(ch.Prolog, chPath+".prolog")...)
			seen := make(map[string]bool, len(ch.Verses))
			for v, vs := range ch.Verses {
				vPath := fmt.Sprintf("%s.verses[%d]", chPath, v)
				switch {
				case vs.Number == "":
					errs = append(errs, errors.NewValidation(vPath+".number", "verse number is required"))
				case seen[vs.Number]:
					errs = append(errs, errors.NewValidation(vPath+".number", fmt.Sprintf("duplicate verse number %q in chapter", vs.Number)))
				}
				seen[vs.Number] = true
				errs = append(errs, ValidateElements(vs.Content, vPath+".content")...)
			}
		}
	}

	return errs
}

// ValidateElements validates an inline element sequence recursively.
func ValidateElements(elements []Element, path string) []error {
	var errs []error
	for i, e := range elements {
		ePath := fmt.Sprintf("%s[%d]", path, i)
		if err := validateElement(e, ePath); err != nil {
			errs = append(errs, err)
		}
		if c, ok := e.(Container); ok {
			errs = append(errs, ValidateElements(c.Children(), ePath+".children")...)
		}
	}
	return errs
}

func validateElement(e Element, path string) error {
	switch e := e.(type) {
	case *FormattingInstruction:
		if !e.Kind.IsValid() {
			return errors.NewValidation(path+".kind", fmt.Sprintf("invalid formatting kind: %q", e.Kind))
		}
	case *CrossReference:
		if e.BookAbbr == "" {
			return errors.NewValidation(path+".book_abbr", "cross-reference book is required")
		}
		if e.FirstChapter < 1 || e.LastChapter < 1 {
			return errors.NewValidation(path, "cross-reference chapters must be positive")
		}
		if e.FirstVerse == "" || e.LastVerse == "" {
			return errors.NewValidation(path, "cross-reference verses are required")
		}
	case *GrammarInformation:
		if len(e.Strongs) == 0 {
			return errors.NewValidation(path+".strongs", "at least one Strong's number is required")
		}
		if e.Morphology != nil && len(e.Morphology) != len(e.Strongs) {
			return errors.NewValidation(path+".morphology",
				fmt.Sprintf("expected %d morphology codes, got %d", len(e.Strongs), len(e.Morphology)))
		}
		if e.SourceIndices != nil && len(e.SourceIndices) != len(e.Strongs) {
			return errors.NewValidation(path+".source_indices",
				fmt.Sprintf("expected %d source indices, got %d", len(e.Strongs), len(e.SourceIndices)))
		}
	case *RawHTML:
		if !e.Mode.IsValid() {
			return errors.NewValidation(path+".mode", fmt.Sprintf("invalid raw markup mode: %q", e.Mode))
		}
	case *VariationText:
		if len(e.Variations) == 0 {
			return errors.NewValidation(path+".variations", "at least one variation name is required")
		}
	case *ExtraAttribute:
		if !e.Priority.IsValid() {
			return errors.NewValidation(path+".priority", fmt.Sprintf("invalid extra attribute priority: %q", e.Priority))
		}
	case *Headline:
		if e.Depth < 1 || e.Depth > MaxHeadlineDepth {
			return errors.NewValidation(path+".depth",
				fmt.Sprintf("headline depth %d outside 1..%d", e.Depth, MaxHeadlineDepth))
		}
	case *LineBreak:
		if !e.Kind.IsValid() {
			return errors.NewValidation(path+".kind", fmt.Sprintf("invalid line break kind: %q", e.Kind))
		}
	}
	return nil
}
