package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mizuleo/tstruct/internal/tserr"
)

// RenderSuccessPanel renders content in a success-styled panel.
func RenderSuccessPanel(title, content string) string {
	return renderPanel("✓ "+title, content, theme.Success)
}

// RenderErrorPanel renders content in an error-styled panel.
func RenderErrorPanel(title, content string) string {
	return renderPanel("✗ "+title, content, theme.Error)
}

// RenderInfoPanel renders content in an info-styled panel.
func RenderInfoPanel(title, content string) string {
	return renderPanel("→ "+title, content, theme.Info)
}

func renderPanel(title, content string, style lipgloss.Style) string {
	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.GetForeground()).
		Padding(1, 2)

	titleRendered := lipgloss.NewStyle().
		Bold(true).
		Foreground(style.GetForeground()).
		Render(title)

	return panelStyle.Render(titleRendered + "\n\n" + content)
}

// Section renders a section with a header and separator.
func Section(title, content string) string {
	header := theme.Header.Render(title)
	separator := theme.Dim.Render(strings.Repeat("─", len([]rune(title))))
	return lipgloss.JoinVertical(lipgloss.Left, header, separator, content)
}

// FormatKeyValue formats a key-value pair.
func FormatKeyValue(key, value string) string {
	return theme.Dim.Render(key+": ") + value
}

// FormatCount formats a count with singular/plural form.
func FormatCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// FormatError formats an error for CLI display. Coded errors with an
// attached source render a caret span under the offending text, followed
// by any notes and help suggestions:
//
//	error[E1001]: no token matches input
//	  CREATE TABLE t @
//	                 ^
//	  help: ...
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var terr *tserr.Error
	if !errors.As(err, &terr) {
		return Error("error") + ": " + err.Error() + "\n"
	}

	var b strings.Builder
	b.WriteString(Error(fmt.Sprintf("error[%s]", terr.GetCode())))
	b.WriteString(": " + terr.GetMessage() + "\n")

	if src, ok := terr.Source(); ok {
		writeSourceSpan(&b, terr, src)
	}

	for _, note := range terr.Notes() {
		b.WriteString("  " + Dim("note: ") + note + "\n")
	}
	for _, help := range terr.Helps() {
		b.WriteString("  " + Info("help: ") + help + "\n")
	}
	if cause := terr.GetCause(); cause != nil {
		b.WriteString("  " + Dim("cause: ") + cause.Error() + "\n")
	}

	return b.String()
}

// writeSourceSpan prints the source line with a caret run under the span.
// Multi-line sources print only the line holding the span start.
func writeSourceSpan(b *strings.Builder, terr *tserr.Error, src string) {
	start, end, ok := terr.Span()
	if !ok {
		if pos, posOK := terr.Pos(); posOK {
			start, end, ok = pos, pos+1, true
		}
	}
	if !ok || start < 0 || start > len(src) {
		return
	}

	lineStart := strings.LastIndexByte(src[:start], '\n') + 1
	lineEnd := len(src)
	if i := strings.IndexByte(src[lineStart:], '\n'); i >= 0 {
		lineEnd = lineStart + i
	}
	line := src[lineStart:lineEnd]
	if end > lineEnd {
		end = lineEnd
	}

	width := end - start
	if width < 1 {
		width = 1
	}

	b.WriteString("  " + line + "\n")
	b.WriteString("  " + strings.Repeat(" ", start-lineStart))
	b.WriteString(Error(strings.Repeat("^", width)) + "\n")
}
