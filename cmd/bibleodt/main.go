// Command bibleodt exports Bible document trees as OpenDocument text
// packages that can be edited in a word processor and read back.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/FocuswithJustin/bibleodt/core/errors"
	"github.com/FocuswithJustin/bibleodt/core/xml"
	"github.com/FocuswithJustin/bibleodt/internal/archive"
	"github.com/FocuswithJustin/bibleodt/internal/config"
	"github.com/FocuswithJustin/bibleodt/internal/formats/odt"
	"github.com/FocuswithJustin/bibleodt/internal/logging"
	"github.com/FocuswithJustin/bibleodt/internal/validation"
)

const version = "0.1.0"

// Globals are the flags shared by every command.
type Globals struct {
	Config    string `name:"config" short:"c" help:"Configuration file (default: ./bibleodt.yaml if present)" type:"path"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" help:"Log format (json, text, auto)"`

	Stdout io.Writer `kong:"-"`
}

// CLI defines the command-line interface for bibleodt.
var CLI struct {
	Globals

	Export  ExportCmd  `cmd:"" help:"Export a document tree as an ODT package"`
	Import  ImportCmd  `cmd:"" help:"Read an ODT package back into a document tree"`
	Inspect InspectCmd `cmd:"" help:"Report the structure of an ODT package"`
	Styles  StylesCmd  `cmd:"" help:"List bundled style presets or print one"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// setup loads the configuration, applies the logging flags and
// initializes the logger.
func (g *Globals) setup() (config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return config.Config{}, err
	}
	cfg = cfg.Override("", g.LogLevel, g.LogFormat)

	level, err := cfg.LogLevel()
	if err != nil {
		return config.Config{}, &errors.ValidationError{Field: "log-level", Value: g.LogLevel, Message: err.Error()}
	}
	format, err := cfg.LogFormat()
	if err != nil {
		return config.Config{}, &errors.ValidationError{Field: "log-format", Value: g.LogFormat, Message: err.Error()}
	}
	logging.InitLogger(level, format)
	return cfg, nil
}

func (g *Globals) stdout() io.Writer {
	if g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// ExportCmd writes a document tree to an ODT package.
type ExportCmd struct {
	Input  string `required:"" short:"i" help:"Document tree (JSON, optionally .xz or .gz compressed)" type:"existingfile"`
	Output string `arg:"" help:"Output ODT path" type:"path"`
	Style  string `arg:"" optional:"" help:"Style preset (contrast, plain, printable) or path to a styles.xml file"`
	JSON   bool   `help:"Print the result as JSON"`
}

func (c *ExportCmd) Run(g *Globals) error {
	cfg, err := g.setup()
	if err != nil {
		return err
	}
	cfg = cfg.Override(c.Style, "", "")

	if err := checkInputType(c.Input); err != nil {
		return err
	}
	b, err := archive.ReadBible(c.Input)
	if err != nil {
		return err
	}
	if cfg.BibleName != "" {
		b.Name = cfg.BibleName
	}

	res, err := odt.Export(context.Background(), b, odt.Options{
		OutputPath: c.Output,
		Style:      cfg.Style,
	})
	if err != nil {
		return err
	}

	out := g.stdout()
	if c.JSON {
		return writeJSON(out, res)
	}
	fmt.Fprintf(out, "Exported %s (style %s)\n", res.OutputPath, cfg.Style)
	fmt.Fprintf(out, "  Paragraphs: %d\n", res.Paragraphs)
	fmt.Fprintf(out, "  Bookmarks:  %d\n", res.Bookmarks)
	fmt.Fprintf(out, "  Size:       %d bytes\n", res.SizeBytes)
	fmt.Fprintf(out, "  BLAKE3:     %s\n", res.BLAKE3)
	return nil
}

// checkInputType rejects inputs whose content is not a document tree,
// such as an exported package passed by mistake.
func checkInputType(path string) error {
	if err := validation.ValidatePath(path); err != nil {
		return &errors.ValidationError{Field: "input", Value: path, Message: err.Error(), Err: err}
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.NewIO("open", path, err)
	}
	defer f.Close()

	ft, err := validation.ValidateFileType(f, path)
	if err != nil {
		return &errors.ValidationError{Field: "input", Value: path, Message: err.Error(), Err: err}
	}
	switch ft {
	case validation.FileTypeODT, validation.FileTypeZip:
		return &errors.ValidationError{Field: "input", Value: path,
			Message: fmt.Sprintf("%s is a %s package, not a document tree", path, ft)}
	}
	return nil
}

// ImportCmd reads an ODT package back into a document tree.
type ImportCmd struct {
	Path string `arg:"" help:"ODT package to import" type:"path"`
}

func (c *ImportCmd) Run(g *Globals) error {
	if _, err := g.setup(); err != nil {
		return err
	}
	_, err := odt.Import(c.Path)
	return err
}

// InspectCmd reports the structure of an ODT package.
type InspectCmd struct {
	Path    string `arg:"" help:"ODT package to inspect" type:"existingfile"`
	JSON    bool   `help:"Print the report as JSON"`
	Content bool   `help:"Pretty-print content.xml instead of the report"`
}

// InspectReport summarizes a package.
type InspectReport struct {
	Path           string   `json:"path"`
	Title          string   `json:"title"`
	Members        []string `json:"members"`
	MimeTypeFirst  bool     `json:"mimetype_first"`
	Paragraphs     int      `json:"paragraphs"`
	Bookmarks      int      `json:"bookmarks"`
	Footnotes      int      `json:"footnotes"`
	Links          int      `json:"links"`
	MetaParagraphs string   `json:"meta_paragraphs"`
	Consistent     bool     `json:"consistent"`
}

func (c *InspectCmd) Run(g *Globals) error {
	if _, err := g.setup(); err != nil {
		return err
	}
	out := g.stdout()
	if c.Content {
		pretty, err := formatContent(c.Path)
		if err != nil {
			return err
		}
		_, err = out.Write(pretty)
		return err
	}

	report, err := inspectPackage(c.Path)
	if err != nil {
		return err
	}
	logging.Debug("package inspected", "path", c.Path, "members", len(report.Members))

	if c.JSON {
		return writeJSON(out, report)
	}
	printReport(out, report)
	return nil
}

// openODT opens path after checking that it holds an ODT package.
func openODT(path string) (*archive.Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	ft, err := validation.ValidateFileType(f, path)
	f.Close()
	if err != nil {
		return nil, &errors.ValidationError{Field: "path", Value: path, Message: err.Error(), Err: err}
	}
	if ft != validation.FileTypeODT {
		return nil, errors.NewUnsupported(string(ft), "not an ODT package")
	}
	return archive.OpenPackage(path)
}

func formatContent(path string) ([]byte, error) {
	pkg, err := openODT(path)
	if err != nil {
		return nil, err
	}
	defer pkg.Close()

	content, err := pkg.ReadMember(odt.MemberContent)
	if err != nil {
		return nil, err
	}
	pretty, err := xml.Format(content, xml.FormatOptions{})
	if err != nil {
		return nil, &errors.ParseError{Format: "XML", Path: odt.MemberContent, Message: err.Error(), Err: err}
	}
	return pretty, nil
}

func inspectPackage(path string) (*InspectReport, error) {
	pkg, err := openODT(path)
	if err != nil {
		return nil, err
	}
	defer pkg.Close()

	report := &InspectReport{Path: path, Members: pkg.Members()}
	report.MimeTypeFirst = len(report.Members) > 0 && report.Members[0] == odt.MemberMimeType

	content, err := pkg.ReadMember(odt.MemberContent)
	if err != nil {
		return nil, err
	}
	doc, err := xml.Parse(content)
	if err != nil {
		return nil, &errors.ParseError{Format: "XML", Path: odt.MemberContent, Message: err.Error(), Err: err}
	}
	if root := doc.Root(); root == nil || root.Prefix() != "office" || root.Name() != "document-content" {
		return nil, errors.NewParse("XML", odt.MemberContent, "root element is not office:document-content")
	}
	// The first body paragraph carries the Bible name.
	title, err := doc.XPathFirst("//office:text/text:p[1]")
	if err != nil {
		return nil, err
	}
	if title != nil {
		report.Title = title.InnerText()
	}
	counts := []struct {
		path string
		dst  *int
	}{
		{"//text:p", &report.Paragraphs},
		{"//text:bookmark-start", &report.Bookmarks},
		{"//text:note", &report.Footnotes},
		{"//text:a", &report.Links},
	}
	for _, c := range counts {
		n, err := doc.Count(c.path)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}

	meta, err := pkg.ReadMember(odt.MemberMeta)
	if err != nil {
		return nil, err
	}
	mdoc, err := xml.Parse(meta)
	if err != nil {
		return nil, &errors.ParseError{Format: "XML", Path: odt.MemberMeta, Message: err.Error(), Err: err}
	}
	stat, err := mdoc.XPathFirst("//meta:document-statistic")
	if err != nil {
		return nil, err
	}
	if stat != nil {
		report.MetaParagraphs = stat.Attr("meta:paragraph-count")
	}

	report.Consistent = report.MimeTypeFirst && report.MetaParagraphs == strconv.Itoa(report.Paragraphs)
	return report, nil
}

func printReport(w io.Writer, r *InspectReport) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "%s\n", r.Path)
	fmt.Fprintf(w, "  Title:      %s\n", r.Title)
	fmt.Fprintf(w, "  Members:    %d\n", len(r.Members))
	for _, m := range r.Members {
		fmt.Fprintf(w, "    %s\n", m)
	}
	fmt.Fprintf(w, "  Paragraphs: %d (meta: %s)\n", r.Paragraphs, r.MetaParagraphs)
	fmt.Fprintf(w, "  Bookmarks:  %d\n", r.Bookmarks)
	fmt.Fprintf(w, "  Footnotes:  %d\n", r.Footnotes)
	fmt.Fprintf(w, "  Links:      %d\n", r.Links)
	if r.Consistent {
		fmt.Fprintf(w, "  Status:     %s\n", color.GreenString("OK"))
	} else {
		fmt.Fprintf(w, "  Status:     %s\n", color.RedString("INCONSISTENT"))
	}
}

// StylesCmd lists the bundled presets, or prints one.
type StylesCmd struct {
	Name string `arg:"" optional:"" help:"Preset to print"`
}

func (c *StylesCmd) Run(g *Globals) error {
	out := g.stdout()
	if c.Name == "" {
		for _, p := range odt.Presets() {
			if p == odt.DefaultStyle {
				fmt.Fprintf(out, "%s %s\n", p, color.CyanString("(default)"))
				continue
			}
			fmt.Fprintln(out, p)
		}
		return nil
	}

	rc, err := odt.ResolveStyles(c.Name)
	if err != nil {
		return err
	}
	defer rc.Close()
	if _, err := io.Copy(out, rc); err != nil {
		return errors.NewIO("write", "stdout", err)
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	fmt.Fprintf(g.stdout(), "bibleodt version %s\n", version)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("bibleodt"),
		kong.Description("Export Bible document trees as round-trip ODT packages"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&CLI.Globals)
	if err != nil {
		logging.CommandError(ctx.Command(), err)
	}
	ctx.FatalIfErrorf(err)
}
