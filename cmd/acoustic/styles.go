package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A40000"))

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Italic(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Width(24)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AAAA"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00AA00"))

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)
)

func styledHelp(options kong.HelpOptions, ctx *kong.Context) error {
	fmt.Fprintln(ctx.Stdout, titleStyle.Render("acoustic "+version))
	fmt.Fprintln(ctx.Stdout, descStyle.Render(description))
	fmt.Fprintln(ctx.Stdout)

	return kong.DefaultHelpPrinter(options, ctx)
}

// report is a titled list of label/value lines followed by an optional
// table.
type report struct {
	title  string
	rows   [][2]string
	header []string
	cells  [][]string
	notes  []string
}

func newReport(title string) *report {
	return &report{title: title}
}

func (r *report) add(label, format string, args ...any) {
	r.rows = append(r.rows, [2]string{label, fmt.Sprintf(format, args...)})
}

func (r *report) note(format string, args ...any) {
	r.notes = append(r.notes, fmt.Sprintf(format, args...))
}

func (r *report) columns(header ...string) {
	r.header = header
}

func (r *report) row(cells ...string) {
	r.cells = append(r.cells, cells)
}

func (r *report) render(w io.Writer) error {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(r.title))
	sb.WriteString("\n")

	for _, kv := range r.rows {
		sb.WriteString("  ")
		sb.WriteString(labelStyle.Render(kv[0]))
		sb.WriteString(valueStyle.Render(kv[1]))
		sb.WriteString("\n")
	}

	if len(r.header) > 0 {
		sb.WriteString("\n")
		sb.WriteString(r.table())
	}

	for _, n := range r.notes {
		sb.WriteString(noteStyle.Render(n))
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

func (r *report) table() string {
	widths := make([]int, len(r.header))
	for i, h := range r.header {
		widths[i] = lipgloss.Width(h)
	}

	for _, row := range r.cells {
		for i, c := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(c))
			}
		}
	}

	var sb strings.Builder

	line := func(cells []string, style lipgloss.Style) {
		sb.WriteString(" ")

		for i, c := range cells {
			if i >= len(widths) {
				break
			}

			sb.WriteString(" ")
			sb.WriteString(style.Width(widths[i]).Align(lipgloss.Right).Render(c))
		}

		sb.WriteString("\n")
	}

	line(r.header, headerStyle)

	for _, row := range r.cells {
		line(row, valueStyle)
	}

	return sb.String()
}
