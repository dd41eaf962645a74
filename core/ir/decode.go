package ir

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/FocuswithJustin/bibleodt/core/errors"
)

// decode.go - JSON input format.
//
// Elements are objects with a "type" discriminator:
//
//	{"type": "text", "value": "In the beginning"}
//	{"type": "format", "kind": "bold", "children": [...]}
//	{"type": "xref", "ref": "Gen.1.1-2.3", "children": [...]}
//	{"type": "break", "kind": "paragraph"}

// Element type discriminators.
const (
	TypeText      = "text"
	TypeFormat    = "format"
	TypeCSS       = "css"
	TypeFootnote  = "footnote"
	TypeXref      = "xref"
	TypeGrammar   = "grammar"
	TypeDict      = "dict"
	TypeRaw       = "raw"
	TypeVariation = "variation"
	TypeExtra     = "extra"
	TypeHeadline  = "headline"
	TypeBreak     = "break"
	TypeSeparator = "vs"
)

// jsonElement is the wire form of every element variant.
type jsonElement struct {
	Type     string        `json:"type"`
	Children []jsonElement `json:"children,omitempty"`

	// text
	Value string `json:"value,omitempty"`

	// format, break
	Kind string `json:"kind,omitempty"`

	// css
	CSS string `json:"css,omitempty"`

	// xref
	Ref          string `json:"ref,omitempty"`
	BookAbbr     string `json:"book_abbr,omitempty"`
	BookID       string `json:"book_id,omitempty"`
	FirstChapter int    `json:"first_chapter,omitempty"`
	FirstVerse   string `json:"first_verse,omitempty"`
	LastChapter  int    `json:"last_chapter,omitempty"`
	LastVerse    string `json:"last_verse,omitempty"`

	// grammar
	Strongs       []int    `json:"strongs,omitempty"`
	Morphology    []string `json:"morphology,omitempty"`
	SourceIndices []int    `json:"source_indices,omitempty"`

	// dict
	Dictionary string `json:"dictionary,omitempty"`
	Entry      string `json:"entry,omitempty"`

	// raw
	Mode string `json:"mode,omitempty"`
	Raw  string `json:"raw,omitempty"`

	// variation
	Variations []string `json:"variations,omitempty"`

	// extra
	Priority string `json:"priority,omitempty"`
	Category string `json:"category,omitempty"`
	Key      string `json:"key,omitempty"`

	// headline
	Depth int `json:"depth,omitempty"`
}

// Decode reads a JSON document tree from r.
func Decode(r io.Reader) (*Bible, error) {
	var b Bible
	dec := json.NewDecoder(r)
	if err := dec.Decode(&b); err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			return nil, pe
		}
		return nil, &errors.ParseError{Format: "JSON", Message: err.Error(), Err: err}
	}
	return &b, nil
}

// UnmarshalJSON decodes a chapter with its optional prolog.
func (c *Chapter) UnmarshalJSON(data []byte) error {
	var wire struct {
		Prolog []jsonElement `json:"prolog"`
		Verses []*Verse      `json:"verses"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.Prolog != nil {
		prolog, err := convertElements(wire.Prolog, "prolog")
		if err != nil {
			return err
		}
		// An empty prolog array still counts as a prolog.
		if prolog == nil {
			prolog = []Element{}
		}
		c.Prolog = prolog
	}
	c.Verses = wire.Verses
	return nil
}

// UnmarshalJSON decodes a verse and its inline content.
func (v *Verse) UnmarshalJSON(data []byte) error {
	var wire struct {
		Number  string        `json:"number"`
		Content []jsonElement `json:"content"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	content, err := convertElements(wire.Content, "verse "+wire.Number+".content")
	if err != nil {
		return err
	}
	v.Number = wire.Number
	v.Content = content
	return nil
}

func convertElements(wire []jsonElement, path string) ([]Element, error) {
	if len(wire) == 0 {
		return nil, nil
	}
	out := make([]Element, 0, len(wire))
	for i := range wire {
		e, err := convertElement(&wire[i], fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func convertElement(w *jsonElement, path string) (Element, error) {
	children, err := convertElements(w.Children, path+".children")
	if err != nil {
		return nil, err
	}

	switch w.Type {
	case TypeText:
		return &Text{Value: w.Value}, nil
	case TypeFormat:
		kind := FormattingKind(w.Kind)
		if !kind.IsValid() {
			return nil, errors.NewParse("JSON", path, fmt.Sprintf("unknown formatting kind %q", w.Kind))
		}
		return &FormattingInstruction{Kind: kind, Content: children}, nil
	case TypeCSS:
		return &CSSFormatting{CSS: w.CSS, Content: children}, nil
	case TypeFootnote:
		return &Footnote{Content: children}, nil
	case TypeXref:
		if w.Ref != "" {
			r, err := ParseRange(w.Ref)
			if err != nil {
				return nil, &errors.ParseError{Format: "JSON", Path: path, Message: err.Error(), Err: err}
			}
			x := r.CrossReference(children...)
			if w.BookAbbr != "" {
				x.BookAbbr = w.BookAbbr
			}
			if w.BookID != "" {
				x.BookID = w.BookID
			}
			return x, nil
		}
		return &CrossReference{
			BookAbbr:     w.BookAbbr,
			BookID:       w.BookID,
			FirstChapter: w.FirstChapter,
			FirstVerse:   w.FirstVerse,
			LastChapter:  w.LastChapter,
			LastVerse:    w.LastVerse,
			Content:      children,
		}, nil
	case TypeGrammar:
		return &GrammarInformation{
			Strongs:       w.Strongs,
			Morphology:    w.Morphology,
			SourceIndices: w.SourceIndices,
			Content:       children,
		}, nil
	case TypeDict:
		return &DictionaryEntry{Dictionary: w.Dictionary, Entry: w.Entry, Content: children}, nil
	case TypeRaw:
		mode := RawHTMLMode(w.Mode)
		if mode == "" {
			mode = RawHTMLBoth
		}
		if !mode.IsValid() {
			return nil, errors.NewParse("JSON", path, fmt.Sprintf("unknown raw markup mode %q", w.Mode))
		}
		return &RawHTML{Mode: mode, Raw: w.Raw}, nil
	case TypeVariation:
		return &VariationText{Variations: w.Variations, Content: children}, nil
	case TypeExtra:
		prio := ExtraAttributePriority(w.Priority)
		if prio == "" {
			prio = PriorityKeepContent
		}
		if !prio.IsValid() {
			return nil, errors.NewParse("JSON", path, fmt.Sprintf("unknown extra attribute priority %q", w.Priority))
		}
		return &ExtraAttribute{Priority: prio, Category: w.Category, Key: w.Key, Value: w.Value, Content: children}, nil
	case TypeHeadline:
		return &Headline{Depth: w.Depth, Content: children}, nil
	case TypeBreak:
		// Kinds are checked by Validate; the emitter rejects unknown kinds as well.
		return &LineBreak{Kind: LineBreakKind(w.Kind)}, nil
	case TypeSeparator:
		return &VerseSeparator{}, nil
	default:
		return nil, errors.NewParse("JSON", path, fmt.Sprintf("unknown element type %q", w.Type))
	}
}
