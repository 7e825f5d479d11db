package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/graph"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// =============================================================================
// PassListModel - Interactive pass browser
// =============================================================================

// PassListModel is the bubbletea model for browsing compiled passes. The
// selected pass is shown in a detail pane below the list.
type PassListModel struct {
	Pipeline *pipeline.PostProcess
	Cursor   int
	Height   int
	Offset   int
}

// NewPassListModel creates a new pass list model.
func NewPassListModel(pp *pipeline.PostProcess) PassListModel {
	return PassListModel{
		Pipeline: pp,
		Height:   10,
	}
}

func (m PassListModel) Init() tea.Cmd {
	return nil
}

func (m PassListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.Pipeline.Graph)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < n-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(n-1, 0)
		}
	case tea.WindowSizeMsg:
		// Leave room for the title, the help line and the detail pane.
		m.Height = max(msg.Height-20, 3)
	}

	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m, nil
}

func (m PassListModel) View() string {
	var b strings.Builder
	pp := m.Pipeline

	b.WriteString(StyleTitle.Render(pp.Name))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(pp.Hint))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(pp.Graph) == 0 {
		b.WriteString(StyleWarning.Render("No passes"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(pp.Graph))
	b.WriteString(passTable(pp.Graph[m.Offset:end], m.Offset, m.Cursor))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  pool: %s", m.Cursor+1, len(pp.Graph), strings.Join(pp.RTPool, ", "))))
	b.WriteString("\n")
	b.WriteString(detailBoxStyle.Render(passDetail(pp.Graph[m.Cursor])))
	b.WriteString("\n")

	return b.String()
}

// passTable renders passes as a table. first is the index of passes[0] in
// execution order; the row at cursor is highlighted. A negative cursor
// highlights nothing.
func passTable(passes []pipeline.Pass, first, cursor int) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(passes))
	for i, p := range passes {
		marker := "  "
		if first+i == cursor {
			marker = "▸ "
		}
		var inputs []string
		for _, in := range p.Inputs {
			inputs = append(inputs, in.Name()+"←"+in.Source())
		}
		rows = append(rows, []string{
			marker,
			fmt.Sprint(first + i + 1),
			p.Name,
			orDash(strings.Join(inputs, " ")),
			p.Output,
			fmt.Sprint(len(p.Uniforms)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Pass", "Inputs", "Output", "Uniforms").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle()
			if col == 1 || col == 5 {
				base = base.Foreground(colorGray)
			}
			if first+row == cursor {
				return base.Foreground(colorCyan).Bold(true)
			}
			if passes[row].Output == graph.ResourceOutScreen && col == 4 {
				return base.Foreground(colorGreen)
			}
			return base
		})

	return t.Render()
}

// passDetail describes one pass: shaders, bindings, uniforms and clear color.
func passDetail(p pipeline.Pass) string {
	var b strings.Builder
	line := func(key, value string) {
		b.WriteString(lipgloss.NewStyle().Foreground(colorGray).Width(10).Render(key))
		b.WriteString(" ")
		b.WriteString(StyleValue.Render(value))
		b.WriteString("\n")
	}

	line("vs", p.VS)
	line("fs", p.FS)
	for _, in := range p.Inputs {
		line("input", in.Name()+" ← "+in.Source())
	}
	for _, name := range slices.Sorted(maps.Keys(p.Textures)) {
		line("texture", name+" ← "+p.Textures[name])
	}
	for _, key := range slices.Sorted(maps.Keys(p.Uniforms)) {
		u := p.Uniforms[key]
		line(u.Type().String(), key+" = "+u.String())
	}
	if p.BaseColor != nil {
		line("clear", fmt.Sprint(p.BaseColor[:]))
	}
	line("output", p.Output)

	return strings.TrimSuffix(b.String(), "\n")
}
