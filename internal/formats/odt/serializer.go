package odt

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/FocuswithJustin/bibleodt/core/ir"
)

// ODF namespaces used by content.xml.
const (
	NamespaceOffice = "urn:oasis:names:tc:opendocument:xmlns:office:1.0"
	NamespaceText   = "urn:oasis:names:tc:opendocument:xmlns:text:1.0"
	NamespaceXLink  = "http://www.w3.org/1999/xlink"
)

// Stats summarizes a serialized document.
type Stats struct {
	Paragraphs int
	Bookmarks  int
	Verses     int
}

// Serialize builds the content.xml document for b. targets must come from
// CollectCrossReferences over the same Bible.
func Serialize(b *ir.Bible, targets XrefTargets) (*etree.Document, Stats) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("office:document-content")
	root.CreateAttr("xmlns:office", NamespaceOffice)
	root.CreateAttr("xmlns:text", NamespaceText)
	root.CreateAttr("xmlns:xlink", NamespaceXLink)
	body := root.CreateElement("office:body").CreateElement("office:text")

	var stats Stats

	title := newParagraph(body, StyleNextChapter)
	appendSpan(title, StyleContent, b.Name)

	e := newBlockEmitter(body, StyleContent)
	for _, bk := range b.Books {
		writeBookTitle(body, bk)
		stats.Bookmarks++

		for c, ch := range bk.Chapters {
			chapter := c + 1
			if chapter > 1 {
				sep := newParagraph(body, StyleNextChapter)
				appendSpan(sep, StyleIgnored, "– "+strconv.Itoa(chapter)+" –")
			}

			if ch.HasProlog() {
				e.replay(ch.Prolog)
				e.reset()
			}

			for _, v := range ch.Verses {
				key := ir.VerseKey(bk.Abbr, chapter, v.Number)
				names := append([]string{BookmarkName(key)}, bookmarkNames(targets.Targets(key))...)

				p := e.paragraph()
				for _, name := range names {
					bookmark(p, "text:bookmark-start", name)
				}
				appendSpan(p, StyleVerse, v.Number+" ")
				for _, name := range names {
					bookmark(p, "text:bookmark-end", name)
				}
				stats.Bookmarks += len(names)
				stats.Verses++

				e.replay(v.Content)
				e.reset()
			}
		}
	}

	stats.Paragraphs = len(doc.FindElements("//text:p"))
	return doc, stats
}

func writeBookTitle(body *etree.Element, bk *ir.Book) {
	p := newParagraph(body, StyleBook)
	name := BookmarkName(ir.AnchorAbbr(bk.Abbr))
	bookmark(p, "text:bookmark-start", name)
	appendSpan(p, StyleVerse, bk.Abbr)
	bookmark(p, "text:bookmark-end", name)
	appendSpan(p, StyleGrammar, bk.OSISID)
	appendSpan(p, StyleIgnored, " – ")
	if bk.ShortName != bk.LongName {
		appendSpan(p, StyleSpecial, bk.ShortName)
	}
	appendSpan(p, StyleContent, bk.LongName)
}

func newParagraph(parent *etree.Element, style string) *etree.Element {
	p := parent.CreateElement("text:p")
	p.CreateAttr("text:style-name", style)
	return p
}

func bookmark(p *etree.Element, tag, name string) {
	p.CreateElement(tag).CreateAttr("text:name", name)
}

func bookmarkNames(keys []string) []string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = BookmarkName(k)
	}
	return names
}
