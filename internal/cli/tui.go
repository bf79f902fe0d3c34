package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/backtoschool/progcompare/pkg/format"
	"github.com/backtoschool/progcompare/pkg/program"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// ProgramPickerModel - Interactive selection of two programs
// =============================================================================

// ProgramPickerModel is the bubbletea model for choosing the two programs of
// a comparison. The first enter picks program A, the second picks program B.
type ProgramPickerModel struct {
	Programs []program.Program
	Cursor   int
	Height   int
	Offset   int

	// Picked holds indexes into Programs in selection order.
	Picked []int
	// Cancelled is set when the user quits before picking two programs.
	Cancelled bool
}

// NewProgramPickerModel creates a new picker over programs.
func NewProgramPickerModel(programs []program.Program) ProgramPickerModel {
	return ProgramPickerModel{
		Programs: programs,
		Height:   15,
	}
}

// Selection returns the chosen pair, or nil, nil when the picker was left
// early.
func (m ProgramPickerModel) Selection() (*program.Program, *program.Program) {
	if m.Cancelled || len(m.Picked) != 2 {
		return nil, nil
	}
	a, b := m.Programs[m.Picked[0]], m.Programs[m.Picked[1]]
	return &a, &b
}

func (m ProgramPickerModel) Init() tea.Cmd {
	return nil
}

func (m ProgramPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Cancelled = true
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Programs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "backspace":
			if len(m.Picked) > 0 {
				m.Picked = m.Picked[:len(m.Picked)-1]
			}
		case "enter", " ":
			if len(m.Programs) == 0 || m.isPicked(m.Cursor) {
				return m, nil
			}
			m.Picked = append(m.Picked, m.Cursor)
			if len(m.Picked) == 2 {
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-7, 5)
	}
	return m, nil
}

func (m ProgramPickerModel) isPicked(i int) bool {
	for _, p := range m.Picked {
		if p == i {
			return true
		}
	}
	return false
}

func (m ProgramPickerModel) View() string {
	var b strings.Builder

	title := "Select Program A"
	if len(m.Picked) == 1 {
		title = "Select Program B"
	}
	b.WriteString(StyleTitle.Render(title))
	if len(m.Picked) == 1 {
		b.WriteString(listDimStyle.Render("  (A: " + m.Programs[m.Picked[0]].DisplayName("Program A") + ")"))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  ⌫ undo  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Programs))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Programs[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := ""
		for n, idx := range m.Picked {
			if idx == i {
				mark = string(rune('A' + n))
			}
		}

		fee := format.Currency(p.TuitionFeeAmount, p.Currency, p.TuitionFeePeriod)
		rows = append(rows, []string{
			cursor,
			mark,
			strconv.FormatInt(p.ID, 10),
			p.DisplayName("Unnamed program"),
			orDash(format.UniversityName(p.University)),
			orDash(format.Level(p.Level)),
			orDash(fee),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "ID", "Program", "University", "Level", "Fee").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			idx := m.Offset + row
			switch {
			case idx == m.Cursor:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			case m.isPicked(idx):
				return lipgloss.NewStyle().Foreground(colorCyan)
			case col >= 4:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Programs))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
