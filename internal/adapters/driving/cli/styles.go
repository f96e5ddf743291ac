package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
)

// Palette shared by every command.
var (
	colourPrimary = lipgloss.Color("#7C3AED")
	colourMuted   = lipgloss.Color("#6C7086")
	colourSuccess = lipgloss.Color("#A6E3A1")
	colourWarning = lipgloss.Color("#F9E2AF")
	colourError   = lipgloss.Color("#F38BA8")
	colourBorder  = lipgloss.Color("#45475A")
)

// printer renders styled output when writing to a terminal and plain text
// otherwise, so piped output and tests see no escape codes.
type printer struct {
	out    io.Writer
	styled bool

	title   lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
}

func newPrinter(cmd *cobra.Command) *printer {
	out := cmd.OutOrStdout()
	p := &printer{out: out, styled: isTerminal(out)}
	if p.styled {
		p.title = lipgloss.NewStyle().Bold(true).Foreground(colourPrimary)
		p.muted = lipgloss.NewStyle().Foreground(colourMuted)
		p.success = lipgloss.NewStyle().Foreground(colourSuccess)
		p.warning = lipgloss.NewStyle().Foreground(colourWarning)
		p.failure = lipgloss.NewStyle().Foreground(colourError)
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Title renders a section heading.
func (p *printer) Title(s string) string { return p.title.Render(s) }

// Muted renders secondary text.
func (p *printer) Muted(s string) string { return p.muted.Render(s) }

// Status renders a run status in its colour.
func (p *printer) Status(s domain.RunStatus) string {
	switch s {
	case domain.RunStatusSuccess:
		return p.success.Render(s.String())
	case domain.RunStatusPartial:
		return p.warning.Render(s.String())
	case domain.RunStatusFailed:
		return p.failure.Render(s.String())
	default:
		return p.muted.Render(s.String())
	}
}

// OK renders a success or failure marker.
func (p *printer) OK(ok bool, s string) string {
	if ok {
		return p.success.Render(s)
	}
	return p.failure.Render(s)
}

// Table renders rows under headers with a rounded border.
func (p *printer) Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...)
	if p.styled {
		header := lipgloss.NewStyle().Bold(true).Foreground(colourPrimary).Padding(0, 1)
		cell := lipgloss.NewStyle().Padding(0, 1)
		t = t.BorderStyle(lipgloss.NewStyle().Foreground(colourBorder)).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return header
				}
				return cell
			})
	} else {
		cell := lipgloss.NewStyle().Padding(0, 1)
		t = t.StyleFunc(func(_, _ int) lipgloss.Style { return cell })
	}
	return t.Render()
}
