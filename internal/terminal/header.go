package terminal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/JackWReid/textedit/internal/editor"
)

// HeaderRows is the number of rows above the text area.
const HeaderRows = 1

var headerStyle = lipgloss.NewStyle().Reverse(true)

// headerText lays out the header bar content in exactly width cells. The
// message wins over the file name when both do not fit.
func headerText(st editor.Status, width int) string {
	if width <= 0 {
		return ""
	}
	left, right := st.Left(), st.Right()
	right = truncate.String(right, uint(width))
	rw := lipgloss.Width(right)
	if width-rw < 2 {
		left = ""
	} else {
		left = truncate.StringWithTail(left, uint(width-rw), "…")
	}
	gap := width - lipgloss.Width(left) - rw
	return left + strings.Repeat(" ", max(gap, 0)) + right
}

func header(st editor.Status, width int) string {
	return headerStyle.Render(headerText(st, width))
}
