package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/pkg/errors"
)

// Format selects a text rendering of a report
type Format uint8

const (
	FormatTOML Format = iota
	FormatMarkdown
	FormatHTML
)

var formatNames = map[string]Format{
	"toml":     FormatTOML,
	"markdown": FormatMarkdown,
	"md":       FormatMarkdown,
	"html":     FormatHTML,
}

// ParseFormat resolves a format name, case-insensitive
func ParseFormat(name string) (Format, error) {
	f, ok := formatNames[strings.ToLower(name)]
	if !ok {
		return 0, errors.Errorf("export: unknown format %q", name)
	}
	return f, nil
}

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatMarkdown:
		return "markdown"
	case FormatHTML:
		return "html"
	default:
		return "unknown"
	}
}

// ContentType is the MIME type of the rendering
func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "application/toml"
	}
}

// Render writes a single report in format f
func Render(w io.Writer, dto ReportDTO, f Format) error {
	switch f {
	case FormatTOML:
		return Write(w, dto)
	case FormatMarkdown:
		return write(w, Markdown(dto))
	case FormatHTML:
		return write(w, toHTML(Markdown(dto)))
	}
	return errors.Errorf("export: unknown format %d", f)
}

// RenderBatch writes a batch in format f
func RenderBatch(w io.Writer, batch BatchDTO, f Format) error {
	switch f {
	case FormatTOML:
		return WriteBatch(w, batch)
	case FormatMarkdown:
		return write(w, MarkdownBatch(batch))
	case FormatHTML:
		return write(w, toHTML(MarkdownBatch(batch)))
	}
	return errors.Errorf("export: unknown format %d", f)
}

// Markdown renders the report as a document of pipe tables
func Markdown(dto ReportDTO) []byte {
	var b bytes.Buffer
	c, s := dto.Config, dto.Summary

	fmt.Fprintf(&b, "# Run %s\n\n", dto.RunID)

	b.WriteString("## Configuration\n\n| parameter | value |\n| --- | --- |\n")
	fmt.Fprintf(&b, "| population | %d |\n", c.PopulationCount)
	fmt.Fprintf(&b, "| steps | %d |\n", c.StepCount)
	fmt.Fprintf(&b, "| seed | %d |\n", c.Seed)
	fmt.Fprintf(&b, "| x range | [%g, %g) |\n", c.MinX, c.MaxX)
	fmt.Fprintf(&b, "| mutation | [%g, %g] |\n", c.MinMutation, c.MaxMutation)
	fmt.Fprintf(&b, "| mutate best | %t |\n", c.MutateBest)

	b.WriteString("\n## Summary\n\n| statistic | value |\n| --- | --- |\n")
	fmt.Fprintf(&b, "| min | %.6g |\n", s.Min)
	fmt.Fprintf(&b, "| max | %.6g |\n", s.Max)
	fmt.Fprintf(&b, "| avg | %.6g |\n", s.Mean)
	fmt.Fprintf(&b, "| median | %.6g |\n", s.Median)
	fmt.Fprintf(&b, "| stddev | %.6g |\n", s.StdDev)
	fmt.Fprintf(&b, "| best | (%d, x=%.6g, score=%.6g) |\n", s.BestID, s.BestX, s.BestScore)

	b.WriteString("\n## Population\n\n| id | x | score |\n| --- | --- | --- |\n")
	for _, ind := range dto.Population {
		fmt.Fprintf(&b, "| %d | %.6g | %.6g |\n", ind.ID, ind.X, ind.Score)
	}

	if len(dto.Trace) > 0 {
		b.WriteString("\n## Trace\n\n| step | min | max | avg | diversity | best id | best x |\n")
		b.WriteString("| --- | --- | --- | --- | --- | --- | --- |\n")
		for _, p := range dto.Trace {
			fmt.Fprintf(&b, "| %d | %.6g | %.6g | %.6g | %.6g | %d | %.6g |\n",
				p.Step, p.Min, p.Max, p.Mean, p.Diversity, p.BestID, p.BestX)
		}
	}
	return b.Bytes()
}

// MarkdownBatch renders one comparison row per run
func MarkdownBatch(batch BatchDTO) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# Batch of %d runs\n\n", len(batch.Runs))
	b.WriteString("| seed | min | max | avg | stddev | best id | best x | run |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, r := range batch.Runs {
		s := r.Summary
		fmt.Fprintf(&b, "| %d | %.6g | %.6g | %.6g | %.6g | %d | %.6g | %s |\n",
			r.Config.Seed, s.Min, s.Max, s.Mean, s.StdDev, s.BestID, s.BestX, r.RunID)
	}
	return b.Bytes()
}

// toHTML converts Markdown with table support to an HTML fragment
// Parsers carry state, so each call builds its own
func toHTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML(md, p, r)
}

func write(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "export: write report")
	}
	return nil
}
