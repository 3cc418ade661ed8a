package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	sidebarW     = 24
	headerLines  = 2
	footerLines  = 2
	minBodyH     = 6
	minMainW     = 30
	modalMaxW    = 72
	modalMinW    = 36
	modalPadding = 2
)

// normalizePane forces s to exactly width columns (ANSI-aware) and height
// lines so JoinHorizontal stays stable.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i, ln := range lines {
		lines[i] = fitLine(ln, width)
	}
	return strings.Join(lines, "\n")
}

// fitLine truncates (with an ellipsis) or pads ln to width columns.
func fitLine(ln string, width int) string {
	w := xansi.StringWidth(ln)
	if w > width {
		switch {
		case width <= 0:
			return ""
		case width == 1:
			ln = xansi.Cut(ln, 0, 1)
		default:
			ln = xansi.Cut(ln, 0, width-1) + "…"
		}
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

func modalWidth(termW int) int {
	w := termW - 8
	if w > modalMaxW {
		w = modalMaxW
	}
	if w < modalMinW {
		w = modalMinW
	}
	return w
}

func modalBodyWidth(termW int) int {
	return modalWidth(termW) - 2*modalPadding - 2
}

func renderModalBox(termW int, title, body string) string {
	w := modalWidth(termW)
	head := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(title)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Padding(1, modalPadding).
		Width(w - 2)
	return box.Render(head + "\n\n" + body)
}

// placeCentered renders box centered on a blank canvas of the given size.
func placeCentered(width, height int, box string) string {
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
