package ir

// content.go - Inline element variants.
// Element is sealed: only types in this package implement it.

// Element is one node of inline content.
type Element interface {
	isElement()
}

// Container is implemented by every element that owns nested children.
type Container interface {
	Element
	Children() []Element
}

// FormattingKind identifies a formatting instruction.
type FormattingKind string

// Formatting kinds. The values are the JSON names; Code returns the short tag code.
const (
	FormatBold                  FormattingKind = "bold"
	FormatItalic                FormattingKind = "italic"
	FormatUnderline             FormattingKind = "underline"
	FormatLink                  FormattingKind = "link"
	FormatFootnoteLink          FormattingKind = "footnote-link"
	FormatSubscript             FormattingKind = "subscript"
	FormatSuperscript           FormattingKind = "superscript"
	FormatDivineName            FormattingKind = "divine-name"
	FormatStrikeThrough         FormattingKind = "strike-through"
	FormatWordsOfJesus          FormattingKind = "words-of-jesus"
	FormatAddition              FormattingKind = "addition"
	FormatPsalmDescriptiveTitle FormattingKind = "psalm-descriptive-title"
)

var formattingCodes = map[FormattingKind]string{
	FormatBold:                  "b",
	FormatItalic:                "i",
	FormatUnderline:             "u",
	FormatLink:                  "l",
	FormatFootnoteLink:          "f",
	FormatSubscript:             "s",
	FormatSuperscript:           "p",
	FormatDivineName:            "d",
	FormatStrikeThrough:         "t",
	FormatWordsOfJesus:          "w",
	FormatAddition:              "a",
	FormatPsalmDescriptiveTitle: "x",
}

// Code returns the one-letter code of the formatting kind, or "" if unknown.
func (k FormattingKind) Code() string {
	return formattingCodes[k]
}

// IsValid returns true if the formatting kind is known.
func (k FormattingKind) IsValid() bool {
	_, ok := formattingCodes[k]
	return ok
}

// RawHTMLMode selects where embedded raw markup applies.
type RawHTMLMode string

// Raw markup modes.
const (
	RawHTMLOffline RawHTMLMode = "OFFLINE"
	RawHTMLOnline  RawHTMLMode = "ONLINE"
	RawHTMLBoth    RawHTMLMode = "BOTH"
)

// IsValid returns true if the mode is known.
func (m RawHTMLMode) IsValid() bool {
	return m == RawHTMLOffline || m == RawHTMLOnline || m == RawHTMLBoth
}

// ExtraAttributePriority tells consumers how to treat an unknown extra attribute.
type ExtraAttributePriority string

// Extra attribute priorities.
const (
	PriorityKeepContent ExtraAttributePriority = "KEEP_CONTENT"
	PrioritySkip        ExtraAttributePriority = "SKIP"
	PriorityError       ExtraAttributePriority = "ERROR"
)

// IsValid returns true if the priority is known.
func (p ExtraAttributePriority) IsValid() bool {
	return p == PriorityKeepContent || p == PrioritySkip || p == PriorityError
}

// LineBreakKind identifies the kind of a line break.
type LineBreakKind string

// Line break kinds.
const (
	BreakNewline           LineBreakKind = "newline"
	BreakNewlineWithIndent LineBreakKind = "newline-with-indent"
	BreakParagraph         LineBreakKind = "paragraph"
)

// IsValid returns true if the line break kind is known.
func (k LineBreakKind) IsValid() bool {
	return k == BreakNewline || k == BreakNewlineWithIndent || k == BreakParagraph
}

// Text is a plain text run.
type Text struct {
	Value string
}

// FormattingInstruction applies a formatting kind to its children.
type FormattingInstruction struct {
	Kind    FormattingKind
	Content []Element
}

// CSSFormatting applies a literal CSS style to its children.
type CSSFormatting struct {
	CSS     string
	Content []Element
}

// Footnote is a note attached at its position in the text.
type Footnote struct {
	Content []Element
}

// CrossReference links its children to a verse range.
type CrossReference struct {
	BookAbbr     string
	BookID       string
	FirstChapter int
	FirstVerse   string
	LastChapter  int
	LastVerse    string
	Content      []Element
}

// GrammarInformation annotates its children with Strong's numbers and,
// optionally, morphology codes and source word indices. Morphology and
// SourceIndices are nil when absent; otherwise they parallel Strongs.
type GrammarInformation struct {
	Strongs       []int
	Morphology    []string
	SourceIndices []int
	Content       []Element
}

// DictionaryEntry links its children to an entry in a dictionary module.
type DictionaryEntry struct {
	Dictionary string
	Entry      string
	Content    []Element
}

// RawHTML carries literal embedded markup.
type RawHTML struct {
	Mode RawHTMLMode
	Raw  string
}

// VariationText marks its children as belonging to named text variations.
type VariationText struct {
	Variations []string
	Content    []Element
}

// ExtraAttribute carries an extension attribute over its children.
type ExtraAttribute struct {
	Priority ExtraAttributePriority
	Category string
	Key      string
	Value    string
	Content  []Element
}

// Headline is a heading of the given depth (1 = top level).
type Headline struct {
	Depth   int
	Content []Element
}

// LineBreak is a line or paragraph break.
type LineBreak struct {
	Kind LineBreakKind
}

// VerseSeparator marks a boundary between merged verses.
type VerseSeparator struct{}

func (*Text) isElement()                  {}
func (*FormattingInstruction) isElement() {}
func (*CSSFormatting) isElement()         {}
func (*Footnote) isElement()              {}
func (*CrossReference) isElement()        {}
func (*GrammarInformation) isElement()    {}
func (*DictionaryEntry) isElement()       {}
func (*RawHTML) isElement()               {}
func (*VariationText) isElement()         {}
func (*ExtraAttribute) isElement()        {}
func (*Headline) isElement()              {}
func (*LineBreak) isElement()             {}
func (*VerseSeparator) isElement()        {}

// Children returns the nested elements.
func (f *FormattingInstruction) Children() []Element { return f.Content }

// Children returns the nested elements.
func (c *CSSFormatting) Children() []Element { return c.Content }

// Children returns the nested elements.
func (f *Footnote) Children() []Element { return f.Content }

// Children returns the nested elements.
func (x *CrossReference) Children() []Element { return x.Content }

// Children returns the nested elements.
func (g *GrammarInformation) Children() []Element { return g.Content }

// Children returns the nested elements.
func (d *DictionaryEntry) Children() []Element { return d.Content }

// Children returns the nested elements.
func (v *VariationText) Children() []Element { return v.Content }

// Children returns the nested elements.
func (e *ExtraAttribute) Children() []Element { return e.Content }

// Children returns the nested elements.
func (h *Headline) Children() []Element { return h.Content }

// IsPlainText reports whether children consist of exactly one text run.
func IsPlainText(children []Element) bool {
	if len(children) != 1 {
		return false
	}
	_, ok := children[0].(*Text)
	return ok
}
