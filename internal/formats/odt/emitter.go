package odt

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/FocuswithJustin/bibleodt/core/errors"
	"github.com/FocuswithJustin/bibleodt/core/ir"
)

// emitter.go - Converts inline content into text:p / text:span markup.
//
// Formatting that has no ODF equivalent is written as literal tags in the
// special style ("<b>" ... "/") so that a document restyled in a word
// processor can still be read back without loss.

// emitter writes inline content either into a block container (office:text,
// text:note-body), where it creates paragraphs on demand, or into an inline
// anchor (text:a), where all content stays inside the anchor.
type emitter struct {
	block  *etree.Element
	anchor *etree.Element

	p         *etree.Element
	baseStyle string
	paraStyle string
	textStyle string
	scopes    []scopeAction
}

func newBlockEmitter(block *etree.Element, paraStyle string) *emitter {
	e := &emitter{
		block:     block,
		baseStyle: paraStyle,
		paraStyle: paraStyle,
		textStyle: StyleContent,
	}
	e.push(resetToDefault{})
	return e
}

func newInlineEmitter(anchor *etree.Element) *emitter {
	e := &emitter{
		anchor:    anchor,
		baseStyle: StyleContent,
		paraStyle: StyleContent,
		textStyle: StyleContent,
	}
	e.push(resetToDefault{})
	return e
}

// paragraph returns the active paragraph, creating it if needed.
func (e *emitter) paragraph() *etree.Element {
	if e.anchor != nil {
		return e.anchor
	}
	if e.p == nil {
		e.p = e.block.CreateElement("text:p")
		e.p.CreateAttr("text:style-name", e.paraStyle)
	}
	return e.p
}

func (e *emitter) push(a scopeAction) {
	e.scopes = append(e.scopes, a)
}

// replay emits elements as a complete subtree, consuming the scope pushed
// for it.
func (e *emitter) replay(elements []ir.Element) {
	for _, el := range elements {
		e.visit(el)
	}
	e.end()
}

// end pops the innermost scope and performs its deferred action.
func (e *emitter) end() {
	n := len(e.scopes)
	if n == 0 {
		panic(errors.NewInvariant("emitter", "scope stack underflow"))
	}
	top := e.scopes[n-1]
	e.scopes = e.scopes[:n-1]

	switch a := top.(type) {
	case resetToDefault:
		e.p = nil
		e.paraStyle = e.baseStyle
		e.textStyle = StyleContent
	case restoreTextStyle:
		e.textStyle = a.style
	case emitLiteralClose:
		appendSpan(e.paragraph(), StyleSpecial, "/")
	case emitGrammarClose:
		appendSpan(e.paragraph(), StyleGrammar, a.text)
	default:
		panic(errors.NewInvariant("emitter", "unknown scope action %T", top))
	}
}

// reset checks that a top-level replay left the emitter balanced and
// re-arms it for the next one.
func (e *emitter) reset() {
	if len(e.scopes) != 0 {
		panic(errors.NewInvariant("emitter", "reset with %d open scopes", len(e.scopes)))
	}
	if e.p != nil || e.paraStyle != e.baseStyle || e.textStyle != StyleContent {
		panic(errors.NewInvariant("emitter", "reset with non-default state (paragraph style %s, text style %s)",
			e.paraStyle, e.textStyle))
	}
	e.push(resetToDefault{})
}

func (e *emitter) visit(el ir.Element) {
	switch n := el.(type) {
	case *ir.Text:
		appendSpan(e.paragraph(), e.textStyle, n.Value)

	case *ir.FormattingInstruction:
		e.formatting(n)

	case *ir.CSSFormatting:
		e.literal(`<css style="` + n.CSS + `">`)
		e.replay(n.Content)

	case *ir.VariationText:
		e.literal(`<var vars="` + strings.Join(n.Variations, ",") + `">`)
		e.replay(n.Content)

	case *ir.ExtraAttribute:
		e.literal(`<extra prio="` + string(n.Priority) + `" category="` + n.Category +
			`" key="` + n.Key + `" value="` + n.Value + `">`)
		e.replay(n.Content)

	case *ir.Footnote:
		span := appendSpan(e.paragraph(), e.textStyle, "")
		note := span.CreateElement("text:note")
		note.CreateAttr("text:note-class", "footnote")
		body := note.CreateElement("text:note-body")
		newBlockEmitter(body, StyleFootnote).replay(n.Content)

	case *ir.CrossReference:
		// Links target the BMC- bookmark written by the driver.
		a := appendLink(e.paragraph(), "#"+BookmarkName(n.FullKey()))
		newInlineEmitter(a).replay(n.Content)

	case *ir.DictionaryEntry:
		a := appendLink(e.paragraph(), n.Dictionary+".odt#"+BookmarkName(ir.AnchorAbbr(n.Entry)))
		newInlineEmitter(a).replay(n.Content)

	case *ir.GrammarInformation:
		appendSpan(e.paragraph(), StyleGrammar, "[")
		e.push(emitGrammarClose{text: grammarClose(n)})
		e.replay(n.Content)

	case *ir.RawHTML:
		d := rawDelimiter(n.Raw)
		appendSpan(e.paragraph(), StyleSpecial,
			"<raw:"+d+` mode="`+string(n.Mode)+`">`+n.Raw+"</raw:"+d+">")

	case *ir.Headline:
		e.p = nil
		e.paraStyle = HeadingStyle(n.Depth)
		e.paragraph()
		e.push(resetToDefault{})
		e.replay(n.Content)

	case *ir.LineBreak:
		e.lineBreak(n.Kind)

	case *ir.VerseSeparator:
		p := e.paragraph()
		appendSpan(p, StyleSpecial, "<vs>")
		appendSpan(p, e.textStyle, "/")
		appendSpan(p, StyleSpecial, "/")

	default:
		panic(errors.NewInvariant("emitter", "unhandled element %T", el))
	}
}

func (e *emitter) formatting(f *ir.FormattingInstruction) {
	switch f.Kind {
	case ir.FormatFootnoteLink:
		newInlineEmitter(appendLink(e.paragraph(), "#FootnoteLink")).replay(f.Content)
		return
	case ir.FormatLink:
		newInlineEmitter(appendLink(e.paragraph(), "#Link")).replay(f.Content)
		return
	}

	s := e.beginSpan(f.Kind)
	e.commitSpan(s, ir.IsPlainText(f.Content))
	e.replay(f.Content)
}

// pendingSpan is a formatting span whose rendering is not decided yet.
type pendingSpan struct {
	kind     ir.FormattingKind
	runStyle string
}

// beginSpan opens a formatting span. Nothing is written until commitSpan.
func (e *emitter) beginSpan(kind ir.FormattingKind) pendingSpan {
	e.paragraph()
	style, _ := RunStyle(kind)
	return pendingSpan{kind: kind, runStyle: style}
}

// commitSpan renders the span as a styled run when its only child is plain
// text and the kind has a run style, and as a literal "<code>" tag otherwise.
// Either way exactly one scope is pushed.
func (e *emitter) commitSpan(s pendingSpan, plainTextChild bool) {
	if plainTextChild && s.runStyle != "" {
		e.push(restoreTextStyle{style: e.textStyle})
		e.textStyle = s.runStyle
		return
	}
	e.literal("<" + s.kind.Code() + ">")
}

// literal writes an opening literal tag and pushes its close.
func (e *emitter) literal(tag string) {
	appendSpan(e.paragraph(), StyleSpecial, tag)
	e.push(emitLiteralClose{})
}

func (e *emitter) lineBreak(kind ir.LineBreakKind) {
	switch kind {
	case ir.BreakNewline:
		span := appendSpan(e.paragraph(), e.textStyle, "")
		span.CreateElement("text:line-break")
	case ir.BreakNewlineWithIndent:
		span := appendSpan(e.paragraph(), e.textStyle, "")
		span.CreateElement("text:line-break")
		span.CreateElement("text:tab")
	case ir.BreakParagraph:
		e.p = nil
		e.paragraph()
	default:
		panic(errors.NewInvariant("emitter", "unsupported line break kind %q", kind))
	}
}

// appendSpan appends value as a run of style to parent. When the last child
// of parent is already a run of that style the text is merged into it.
func appendSpan(parent *etree.Element, style, value string) *etree.Element {
	if n := len(parent.Child); n > 0 {
		if last, ok := parent.Child[n-1].(*etree.Element); ok && isSpan(last, style) {
			appendText(last, value)
			return last
		}
	}
	span := parent.CreateElement("text:span")
	span.CreateAttr("text:style-name", style)
	appendText(span, value)
	return span
}

func isSpan(el *etree.Element, style string) bool {
	return el.Space == "text" && el.Tag == "span" && el.SelectAttrValue("text:style-name", "") == style
}

func appendText(el *etree.Element, value string) {
	if value == "" {
		return
	}
	if n := len(el.Child); n > 0 {
		if cd, ok := el.Child[n-1].(*etree.CharData); ok {
			cd.Data += value
			return
		}
	}
	el.CreateText(value)
}

func appendLink(parent *etree.Element, href string) *etree.Element {
	a := parent.CreateElement("text:a")
	a.CreateAttr("xlink:type", "simple")
	a.CreateAttr("xlink:href", href)
	return a
}

// grammarClose builds the closing literal of a grammar annotation:
// "]" followed by "strongs[:morph[:index]] " per word.
func grammarClose(g *ir.GrammarInformation) string {
	var sb strings.Builder
	sb.WriteByte(']')
	for i, s := range g.Strongs {
		sb.WriteString(strconv.Itoa(s))
		if g.Morphology != nil {
			sb.WriteByte(':')
			sb.WriteString(g.Morphology[i])
			if g.SourceIndices != nil {
				sb.WriteByte(':')
				sb.WriteString(strconv.Itoa(g.SourceIndices[i]))
			}
		}
		sb.WriteByte(' ')
	}
	return sb.String()
}

const rawClose = "</raw:"

// rawDelimiter picks the raw markup delimiter for payload. It is "1" unless
// the payload contains "</raw:1>"; then it is a power of ten with more digits
// than any number following "</raw:" in the payload.
func rawDelimiter(payload string) string {
	if !strings.Contains(payload, rawClose+"1>") {
		return "1"
	}
	longest := 0
	rest := payload
	for {
		i := strings.Index(rest, rawClose)
		if i < 0 {
			break
		}
		rest = rest[i+len(rawClose):]
		n := 0
		for n < len(rest) && rest[n] >= '0' && rest[n] <= '9' {
			n++
		}
		if n > longest {
			longest = n
		}
	}
	return "1" + strings.Repeat("0", longest)
}
