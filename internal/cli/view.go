package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/agptools/pkg/agp"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	listHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	listCurrent  = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	listMinus    = lipgloss.NewStyle().Foreground(colorYellow)
)

func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view [AGP]",
		Short: "Browse a layout interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.loadLayout(cmd, agpArg(args, 0))
			if err != nil {
				return err
			}
			if doc.Layout.Len() == 0 {
				printInfo("Layout is empty")
				return nil
			}
			p := tea.NewProgram(NewLayoutModel(doc.Layout),
				tea.WithContext(cmd.Context()),
				tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}

// =============================================================================
// LayoutModel - Interactive layout browser
// =============================================================================

// LayoutModel is the bubbletea model for browsing objects and their records.
// The list view shows one row per object; enter opens the records of the
// object under the cursor.
type LayoutModel struct {
	Objects []*agp.Object
	Cursor  int
	Offset  int
	Height  int

	// Open is the index of the object whose records are shown, or -1.
	Open      int
	RecCursor int
	RecOffset int
}

// NewLayoutModel creates a browser over l.
func NewLayoutModel(l *agp.Layout) LayoutModel {
	return LayoutModel{
		Objects: l.Objects(),
		Height:  15,
		Open:    -1,
	}
}

func (m LayoutModel) Init() tea.Cmd {
	return nil
}

func (m LayoutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace":
			if m.Open < 0 {
				return m, tea.Quit
			}
			m.Open = -1
		case "up", "k":
			if m.Open >= 0 {
				m.RecCursor, m.RecOffset = moveUp(m.RecCursor, m.RecOffset)
			} else {
				m.Cursor, m.Offset = moveUp(m.Cursor, m.Offset)
			}
		case "down", "j":
			if m.Open >= 0 {
				m.RecCursor, m.RecOffset = moveDown(m.RecCursor, m.RecOffset, m.Objects[m.Open].Count(), m.Height)
			} else {
				m.Cursor, m.Offset = moveDown(m.Cursor, m.Offset, len(m.Objects), m.Height)
			}
		case "enter":
			if m.Open < 0 && len(m.Objects) > 0 {
				m.Open = m.Cursor
				m.RecCursor, m.RecOffset = 0, 0
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func moveUp(cursor, offset int) (int, int) {
	if cursor > 0 {
		cursor--
		if cursor < offset {
			offset = cursor
		}
	}
	return cursor, offset
}

func moveDown(cursor, offset, n, height int) (int, int) {
	if cursor < n-1 {
		cursor++
		if cursor >= offset+height {
			offset = cursor - height + 1
		}
	}
	return cursor, offset
}

func (m LayoutModel) View() string {
	if m.Open >= 0 {
		return m.recordsView()
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Objects"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ records  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Objects))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		o := m.Objects[i]
		rows = append(rows, []string{
			cursorMark(i == m.Cursor),
			o.Name(),
			strconv.Itoa(o.Len()),
			strconv.Itoa(o.ComponentCount()),
			strconv.Itoa(o.GapLen()),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Object", "Length", "Components", "Gap bp").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeader
			}
			if m.Offset+row == m.Cursor {
				return listCurrent
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Objects))))
	return b.String()
}

func (m LayoutModel) recordsView() string {
	obj := m.Objects[m.Open]
	recs := obj.Records()

	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s (%d bp)", obj.Name(), obj.Len())))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  esc back  q quit"))
	b.WriteString("\n\n")

	end := min(m.RecOffset+m.Height, len(recs))
	rows := [][]string{}
	for i := m.RecOffset; i < end; i++ {
		rows = append(rows, recordRow(recs[i], i == m.RecCursor))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Part", "Start", "End", "Type", "Component / Gap", "Span", "Ori").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeader
			}
			idx := m.RecOffset + row
			if idx == m.RecCursor {
				return listCurrent
			}
			if idx < len(recs) {
				if recs[idx].IsGap() {
					return listDimStyle
				}
				if c, ok := recs[idx].Component(); ok && c.Orientation == agp.Minus && col == 7 {
					return listMinus
				}
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.RecCursor+1, len(recs))))
	return b.String()
}

func recordRow(r agp.Record, current bool) []string {
	row := []string{cursorMark(current), strconv.Itoa(r.Part), strconv.Itoa(r.Start), strconv.Itoa(r.End)}
	switch p := r.Payload.(type) {
	case agp.Component:
		return append(row, p.TypeLetter(), p.ID, fmt.Sprintf("%d-%d", p.Start, p.End), p.OrientationToken())
	case agp.Gap:
		return append(row, p.TypeLetter(), p.Type, strconv.Itoa(p.Length), "")
	}
	return row
}

func cursorMark(current bool) string {
	if current {
		return "▸ "
	}
	return "  "
}
