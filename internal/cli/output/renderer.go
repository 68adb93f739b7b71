// Package output renders CLI output in a mode suited to the
// destination: styled text on a TTY, plain text when piped, or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
)

// OutputMode selects how the renderer formats output.
type OutputMode string

const (
	ModeAuto  OutputMode = "auto"
	ModeText  OutputMode = "text"
	ModePlain OutputMode = "plain"
	ModeJSON  OutputMode = "json"
)

// Mode parses a mode string, defaulting to auto.
func Mode(s string) OutputMode {
	switch OutputMode(s) {
	case ModeText, ModePlain, ModeJSON:
		return OutputMode(s)
	default:
		return ModeAuto
	}
}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Renderer writes formatted output to an out and error stream.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   OutputMode
	isTTY  bool
}

// NewRenderer creates a renderer, detecting TTY state from out.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return NewRendererWithTTY(out, errOut, isTTY, mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
// Tests use this to force either styled or plain output.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	return &Renderer{out: out, errOut: errOut, mode: mode, isTTY: isTTY}
}

// EffectiveMode resolves ModeAuto to text (TTY) or plain (piped).
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModePlain
}

func (r *Renderer) styled() bool {
	return r.EffectiveMode() == ModeText && r.isTTY
}

// Println writes a plain line to the out stream.
func (r *Renderer) Println(s string) {
	fmt.Fprintln(r.out, s)
}

// Printf writes formatted text to the out stream.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Success writes a success line.
func (r *Renderer) Success(s string) {
	if r.styled() {
		fmt.Fprintln(r.out, successStyle.Render("✓ "+s))
		return
	}
	fmt.Fprintln(r.out, s)
}

// Warning writes a warning line to the error stream.
func (r *Renderer) Warning(s string) {
	if r.styled() {
		fmt.Fprintln(r.errOut, warnStyle.Render("! "+s))
		return
	}
	fmt.Fprintln(r.errOut, "warning: "+s)
}

// Error writes an error line to the error stream.
func (r *Renderer) Error(s string) {
	if r.styled() {
		fmt.Fprintln(r.errOut, errorStyle.Render("✗ "+s))
		return
	}
	fmt.Fprintln(r.errOut, "error: "+s)
}

// StatusLine writes a name with a pass/warn/fail marker and an
// optional note, used for check-style listings.
func (r *Renderer) StatusLine(name, status, note string) {
	marker := "-"
	style := successStyle
	switch status {
	case "pass", "success":
		marker = "✓"
	case "warn":
		marker, style = "!", warnStyle
	case "fail", "error":
		marker, style = "✗", errorStyle
	}
	line := marker + " " + name
	if note != "" {
		line += "  (" + note + ")"
	}
	if r.styled() {
		fmt.Fprintln(r.out, style.Render(line))
		return
	}
	fmt.Fprintln(r.out, line)
}

// Table renders rows under a header. On a TTY the table is drawn with
// light box characters; piped output uses a minimal layout that stays
// grep-friendly.
func (r *Renderer) Table(header []string, rows [][]string) {
	tw := table.NewWriter()
	tw.SetOutputMirror(r.out)

	hdr := make(table.Row, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	tw.AppendHeader(hdr)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, c := range row {
			tr[i] = c
		}
		tw.AppendRow(tr)
	}

	if r.styled() {
		tw.SetStyle(table.StyleLight)
		tw.Render()
		return
	}
	tw.SetStyle(table.Style{
		Box:     table.StyleBoxDefault,
		Options: table.OptionsNoBordersAndSeparators,
	})
	tw.Render()
}

// JSON writes v as indented JSON to the out stream.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
