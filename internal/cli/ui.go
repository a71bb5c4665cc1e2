package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// stderr receives status output so stdout stays free for AGP, BED and FASTA.
var stderr io.Writer = os.Stderr

// Palette (ANSI 256).
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle renders view headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	// StyleDim renders hints and secondary lines.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
	// StyleValue renders paths and numbers.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	styleSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// marker is the leading glyph of a status line.
type marker struct {
	glyph string
	style lipgloss.Style
	tint  bool // also color the message
}

var (
	markSuccess = marker{"✓", lipgloss.NewStyle().Foreground(colorGreen), false}
	markError   = marker{"✗", lipgloss.NewStyle().Foreground(colorRed), false}
	markWarning = marker{"!", lipgloss.NewStyle().Foreground(colorYellow), true}
	markInfo    = marker{"›", lipgloss.NewStyle().Foreground(colorGray), false}
)

func (m marker) print(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if m.tint {
		msg = m.style.Render(msg)
	}
	fmt.Fprintln(stderr, m.style.Render(m.glyph)+" "+msg)
}

func printSuccess(format string, args ...any) { markSuccess.print(format, args...) }
func printError(format string, args ...any)   { markError.print(format, args...) }
func printWarning(format string, args ...any) { markWarning.print(format, args...) }
func printInfo(format string, args ...any)    { markInfo.print(format, args...) }

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stderr, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written output file.
func printFile(path string) {
	fmt.Fprintln(stderr, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

// printKeyValue writes an aligned "key value" line to w.
func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+StyleValue.Render(value))
}
