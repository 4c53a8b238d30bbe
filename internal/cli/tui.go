package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// maxReports bounds the number of reports the live view keeps.
const maxReports = 200

// =============================================================================
// watchModel - Live template report view
// =============================================================================

// reportMsg carries one template report into the model.
type reportMsg templateReport

// reportsDoneMsg signals that the report channel was closed.
type reportsDoneMsg struct{}

// waitForReport returns a command that delivers the next report.
func waitForReport(ch <-chan templateReport) tea.Cmd {
	return func() tea.Msg {
		rep, ok := <-ch
		if !ok {
			return reportsDoneMsg{}
		}
		return reportMsg(rep)
	}
}

// watchModel is the bubbletea model for "fcss watch --tui". The newest
// report is shown first.
type watchModel struct {
	reports []templateReport
	source  <-chan templateReport
	Cursor  int
	Height  int
	Offset  int
	done    bool
}

func newWatchModel(source <-chan templateReport) watchModel {
	return watchModel{source: source, Height: 15}
}

func (m watchModel) Init() tea.Cmd {
	return waitForReport(m.source)
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportMsg:
		m.reports = append([]templateReport{templateReport(msg)}, m.reports...)
		if len(m.reports) > maxReports {
			m.reports = m.reports[:maxReports]
		}
		if m.Cursor > 0 && m.Cursor < len(m.reports)-1 {
			m.Cursor++
		}
		m.clampOffset()
		return m, waitForReport(m.source)
	case reportsDoneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.reports)-1 {
				m.Cursor++
			}
		}
		m.clampOffset()
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
		m.clampOffset()
	}
	return m, nil
}

func (m *watchModel) clampOffset() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Template Signatures"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	if len(m.reports) == 0 {
		b.WriteString(listDimStyle.Render("  waiting for template changes..."))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.reports))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		r := m.reports[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			r.Time.Format("15:04:05"),
			filepath.Base(r.Path),
			fmt.Sprint(r.Known.Len()),
			fmt.Sprint(r.Unknown.Len()),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Time", "File", "Known", "Unknown").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.reports) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if idx == m.Cursor {
				base = base.Bold(true)
			}
			if col == 4 && m.reports[idx].Unknown.Len() > 0 {
				return base.Foreground(colorYellow)
			}
			if idx == m.Cursor {
				return base.Foreground(colorCyan)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	sel := m.reports[m.Cursor]
	b.WriteString(listSelectedStyle.Render(sel.Path))
	b.WriteString("\n")
	if sel.Unknown.Len() == 0 {
		b.WriteString(styleKnown.Render("  " + iconSuccess + " every class is declared"))
	} else {
		for _, sig := range sel.Unknown.Sorted() {
			b.WriteString(styleMiss.Render("  " + iconWarning + " " + sig))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.reports))))

	return b.String()
}

// runWatchTUI shows reports until the user quits or the source closes.
// Logging is silenced while the view owns the terminal.
func (c *CLI) runWatchTUI(ctx context.Context, reports <-chan templateReport) error {
	c.Logger.SetOutput(io.Discard)
	defer c.Logger.SetOutput(c.out)

	_, err := tea.NewProgram(newWatchModel(reports), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
