package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

// Renderer writes results to out and diagnostics to errOut in one mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   OutputMode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		styles: NewStyles(out, isTTY),
	}
}

// EffectiveMode resolves ModeAuto against the terminal state.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto && r.mode != "" {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// Styles returns the text-mode styles.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Out returns the result writer.
func (r *Renderer) Out() io.Writer {
	return r.out
}

// Println writes a line to the result writer.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

// Header writes a heading.
func (r *Renderer) Header(level int, text string) {
	switch r.EffectiveMode() {
	case ModeText:
		r.Println(r.styles.Header.Render(text))
	case ModeMarkdown:
		r.Println(FormatHeader(level, text))
	}
}

// Success reports a completed step.
func (r *Renderer) Success(msg string) {
	r.status("✓", r.styles.Success, msg)
}

// Warning reports a non-fatal problem.
func (r *Renderer) Warning(msg string) {
	r.status("!", r.styles.Warning, msg)
}

// Info reports neutral progress.
func (r *Renderer) Info(msg string) {
	r.status("i", r.styles.Info, msg)
}

// Error reports a failure on the diagnostics writer. It is shown in every
// mode so structured output on stdout stays parseable.
func (r *Renderer) Error(msg string) {
	if r.EffectiveMode() == ModeText {
		_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("✗ "+msg))
		return
	}
	_, _ = fmt.Fprintln(r.errOut, "Error: "+msg)
}

// Hint prints a suggestion on the diagnostics writer.
func (r *Renderer) Hint(msg string) {
	if r.EffectiveMode() == ModeText {
		_, _ = fmt.Fprintln(r.errOut, r.styles.Muted.Render("Hint: "+msg))
		return
	}
	_, _ = fmt.Fprintln(r.errOut, "Hint: "+msg)
}

func (r *Renderer) status(glyph string, style lipgloss.Style, msg string) {
	switch r.EffectiveMode() {
	case ModeText:
		r.Println(style.Render(glyph) + " " + msg)
	case ModeMarkdown:
		r.Println("- " + msg)
	}
}

// KeyValue writes a labelled value.
func (r *Renderer) KeyValue(key, value string) {
	switch r.EffectiveMode() {
	case ModeText:
		r.Println(r.styles.Key.Render(key+":") + " " + value)
	case ModeMarkdown:
		r.Println(FormatKeyValue(key, value))
	}
}

// Table writes rows under headers: a box table in text mode and a Markdown
// table otherwise.
func (r *Renderer) Table(headers []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, v := range row {
			tr[i] = v
		}
		t.AppendRow(tr)
	}

	if r.EffectiveMode() == ModeText {
		t.Render()
		return
	}
	t.RenderMarkdown()
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as a YAML document.
func (r *Renderer) YAML(v any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Structured writes v in the renderer's structured mode (JSON or YAML).
func (r *Renderer) Structured(v any) error {
	if r.EffectiveMode() == ModeYAML {
		return r.YAML(v)
	}
	return r.JSON(v)
}

// FormatHeader formats a Markdown heading.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue formats a Markdown bold key followed by its value.
func FormatKeyValue(key, value string) string {
	return "**" + key + ":** " + value
}
