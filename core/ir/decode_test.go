package ir

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	berrors "github.com/FocuswithJustin/bibleodt/core/errors"
)

const sampleJSON = `{
  "name": "Sample Bible",
  "books": [{
    "abbr": "Gen",
    "osis_id": "Gen",
    "short_name": "Genesis",
    "long_name": "The First Book of Moses",
    "chapters": [{
      "prolog": [{"type": "headline", "depth": 1, "children": [{"type": "text", "value": "Creation"}]}],
      "verses": [
        {"number": "1", "content": [
          {"type": "text", "value": "In the beginning "},
          {"type": "format", "kind": "divine-name", "children": [{"type": "text", "value": "God"}]},
          {"type": "footnote", "children": [{"type": "xref", "ref": "Gen.1.2", "children": [{"type": "text", "value": "v. 2"}]}]}
        ]},
        {"number": "2", "content": [
          {"type": "grammar", "strongs": [776], "morphology": ["N-NSF"], "children": [{"type": "text", "value": "earth"}]},
          {"type": "break", "kind": "newline"},
          {"type": "raw", "mode": "ONLINE", "raw": "<hr/>"},
          {"type": "variation", "variations": ["A", "B"], "children": [{"type": "text", "value": "x"}]},
          {"type": "extra", "priority": "SKIP", "category": "c", "key": "k", "value": "v"},
          {"type": "css", "css": "color: red", "children": [{"type": "text", "value": "red"}]},
          {"type": "dict", "dictionary": "strongs", "entry": "G1.2"},
          {"type": "vs"}
        ]}
      ]
    }]
  }]
}`

func TestDecodeSample(t *testing.T) {
	b, err := Decode(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if b.Name != "Sample Bible" {
		t.Errorf("Name = %q, want %q", b.Name, "Sample Bible")
	}
	if len(b.Books) != 1 {
		t.Fatalf("len(Books) = %d, want 1", len(b.Books))
	}
	bk := b.Books[0]
	if bk.LongName != "The First Book of Moses" || bk.OSISID != "Gen" {
		t.Errorf("book = %+v", bk)
	}
	ch := bk.Chapters[0]
	if !ch.HasProlog() {
		t.Fatal("chapter should have a prolog")
	}
	if h, ok := ch.Prolog[0].(*Headline); !ok || h.Depth != 1 {
		t.Errorf("prolog[0] = %#v, want depth-1 headline", ch.Prolog[0])
	}

	v1 := ch.Verses[0]
	if v1.Number != "1" || len(v1.Content) != 3 {
		t.Fatalf("verse 1 = %+v", v1)
	}
	fi, ok := v1.Content[1].(*FormattingInstruction)
	if !ok || fi.Kind != FormatDivineName || !IsPlainText(fi.Children()) {
		t.Errorf("verse 1 content[1] = %#v", v1.Content[1])
	}
	fn := v1.Content[2].(*Footnote)
	xref := fn.Content[0].(*CrossReference)
	want := &CrossReference{
		BookAbbr: "Gen", BookID: "Gen",
		FirstChapter: 1, FirstVerse: "2", LastChapter: 1, LastVerse: "2",
		Content: []Element{&Text{Value: "v. 2"}},
	}
	if diff := cmp.Diff(want, xref); diff != "" {
		t.Errorf("xref mismatch (-want +got):\n%s", diff)
	}

	v2 := ch.Verses[1].Content
	if len(v2) != 8 {
		t.Fatalf("verse 2 has %d elements, want 8", len(v2))
	}
	g := v2[0].(*GrammarInformation)
	if g.SourceIndices != nil || len(g.Morphology) != 1 {
		t.Errorf("grammar = %+v", g)
	}
	if lb := v2[1].(*LineBreak); lb.Kind != BreakNewline {
		t.Errorf("break kind = %q", lb.Kind)
	}
	if raw := v2[2].(*RawHTML); raw.Mode != RawHTMLOnline || raw.Raw != "<hr/>" {
		t.Errorf("raw = %+v", raw)
	}
	if extra := v2[4].(*ExtraAttribute); extra.Priority != PrioritySkip || extra.Value != "v" {
		t.Errorf("extra = %+v", extra)
	}
	if _, ok := v2[7].(*VerseSeparator); !ok {
		t.Errorf("v2[7] = %T, want *VerseSeparator", v2[7])
	}
}

func TestDecodeWithoutProlog(t *testing.T) {
	b, err := Decode(strings.NewReader(`{"name":"x","books":[{"abbr":"A","chapters":[{"verses":[]}]}]}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if b.Books[0].Chapters[0].HasProlog() {
		t.Error("chapter without prolog key should have no prolog")
	}
}

func TestDecodeEmptyProlog(t *testing.T) {
	b, err := Decode(strings.NewReader(`{"name":"x","books":[{"abbr":"A","chapters":[{"prolog":[],"verses":[]}]}]}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !b.Books[0].Chapters[0].HasProlog() {
		t.Error("explicit empty prolog should be kept")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath string
	}{
		{
			name:     "unknown element type",
			input:    `{"books":[{"abbr":"A","chapters":[{"verses":[{"number":"1","content":[{"type":"blink"}]}]}]}]}`,
			wantPath: "verse 1.content[0]",
		},
		{
			name:     "unknown formatting kind",
			input:    `{"books":[{"abbr":"A","chapters":[{"verses":[{"number":"3","content":[{"type":"text"},{"type":"format","kind":"sparkle"}]}]}]}]}`,
			wantPath: "verse 3.content[1]",
		},
		{
			name:     "bad reference",
			input:    `{"books":[{"abbr":"A","chapters":[{"prolog":[{"type":"footnote","children":[{"type":"xref","ref":"nope"}]}]}]}]}`,
			wantPath: "prolog[0].children[0]",
		},
		{
			name:  "malformed JSON",
			input: `{"books": [`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Decode should fail")
			}
			var pe *berrors.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T, want *errors.ParseError", err)
			}
			if pe.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", pe.Path, tt.wantPath)
			}
		})
	}
}
