package odt

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/bibleodt/core/errors"
	"github.com/FocuswithJustin/bibleodt/core/ir"
	"github.com/FocuswithJustin/bibleodt/core/xml"
)

// Paragraph styles.
const (
	StyleContent     = "BMC_5f_Content"
	StyleFootnote    = "Footnote"
	StyleBook        = "BMC_5f_Book"
	StyleNextChapter = "BMC_5f_NextChapter"
	headingPrefix    = "BMC_5f_Heading_5f_"
)

// Text styles. StyleContent doubles as the default text style.
const (
	StyleBold       = "BMC_5f_Content_2b_Bold"
	StyleItalic     = "BMC_5f_Content_2b_Italic"
	StyleDivineName = "BMC_5f_Content_2b_DivineName"
	StyleWOJ        = "BMC_5f_Content_2b_WOJ"
	StyleSpecial    = "BMC_5f_Special"
	StyleGrammar    = "BMC_5f_Grammar"
	StyleVerse      = "BMC_5f_Verse"
	StyleIgnored    = "BMC_5f_Ignored"
)

// DefaultStyle is the preset used when no style is given.
const DefaultStyle = "contrast"

const bookmarkPrefix = "BMC-"

var runStyles = map[ir.FormattingKind]string{
	ir.FormatBold:         StyleBold,
	ir.FormatItalic:       StyleItalic,
	ir.FormatDivineName:   StyleDivineName,
	ir.FormatWordsOfJesus: StyleWOJ,
}

// RunStyle returns the text style that renders kind directly.
// Kinds without a run style are written as literal tags.
func RunStyle(kind ir.FormattingKind) (string, bool) {
	s, ok := runStyles[kind]
	return s, ok
}

// HeadingStyle returns the paragraph style of a headline at depth.
func HeadingStyle(depth int) string {
	return headingPrefix + strconv.Itoa(depth)
}

// BookmarkName returns the bookmark name of an anchor key.
func BookmarkName(key string) string {
	return bookmarkPrefix + key
}

//go:embed resources/*.xml
var resources embed.FS

const stylesSuffix = "_styles.xml"

var presetName = regexp.MustCompile(`^[a-z]+$`)

// ResolveStyles opens the styles document selected by name.
// A lowercase name selects a bundled preset when one exists; anything else
// is treated as a path to a styles.xml file, which must be well-formed XML
// (otherwise a *errors.ParseError). The caller closes the stream.
func ResolveStyles(name string) (io.ReadCloser, error) {
	if presetName.MatchString(name) {
		f, err := resources.Open("resources/" + name + stylesSuffix)
		if err == nil {
			return f, nil
		}
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.NewIO("open styles", name, err)
	}
	if err := checkStyles(name, data); err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func checkStyles(name string, data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.NewParse("XML", name, "empty styles document")
	}
	res := xml.Validate(data)
	if res.Valid {
		return nil
	}
	first := res.Errors[0]
	return errors.NewParse("XML", name, fmt.Sprintf("line %d: %s", first.Line, first.Message))
}

// Presets returns the names of the bundled style presets, sorted.
func Presets() []string {
	entries, err := fs.ReadDir(resources, "resources")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), stylesSuffix); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func readResource(name string) ([]byte, error) {
	data, err := resources.ReadFile("resources/" + name)
	if err != nil {
		return nil, errors.Wrapf(err, "read bundled resource %s", name)
	}
	return data, nil
}
