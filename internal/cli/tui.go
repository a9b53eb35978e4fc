package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pondevelopment/harkje/pkg/org"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// CollapseModel - Interactive collapse selection
// =============================================================================

// collapseRow is one visible line in the tree view.
type collapseRow struct {
	node  *org.Node
	depth int
}

// CollapseModel is the bubbletea model for interactively collapsing
// subtrees. Space toggles collapse on the highlighted node, enter
// confirms the selection, q or esc cancels.
type CollapseModel struct {
	Root      *org.Node
	Collapsed map[string]bool
	Confirmed bool

	rows   []collapseRow
	cursor int
	height int
	offset int
}

// NewCollapseModel creates a collapse model seeded with the given
// collapsed ids.
func NewCollapseModel(root *org.Node, collapsed []string) CollapseModel {
	m := CollapseModel{
		Root:      root,
		Collapsed: make(map[string]bool, len(collapsed)),
		height:    20,
	}
	for _, id := range collapsed {
		m.Collapsed[id] = true
	}
	m.rebuild()
	return m
}

// CollapsedIDs returns the selected ids in tree order.
func (m CollapseModel) CollapsedIDs() []string {
	var ids []string
	m.Root.Walk(func(n *org.Node) {
		if m.Collapsed[n.ID] {
			ids = append(ids, n.ID)
		}
	})
	return ids
}

// rebuild recomputes the visible rows, hiding children of collapsed
// nodes.
func (m *CollapseModel) rebuild() {
	m.rows = m.rows[:0]
	var walk func(n *org.Node, depth int)
	walk = func(n *org.Node, depth int) {
		m.rows = append(m.rows, collapseRow{node: n, depth: depth})
		if m.Collapsed[n.ID] {
			return
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(m.Root, 0)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
}

func (m CollapseModel) Init() tea.Cmd {
	return nil
}

func (m CollapseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case " ":
			n := m.rows[m.cursor].node
			if !n.IsLeaf() {
				if m.Collapsed[n.ID] {
					delete(m.Collapsed, n.ID)
				} else {
					m.Collapsed[n.ID] = true
				}
				m.rebuild()
			}
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m CollapseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Collapse Subtrees"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.offset; i < end; i++ {
		row := m.rows[i]
		n := row.node

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		marker := "  "
		switch {
		case n.IsLeaf():
		case m.Collapsed[n.ID]:
			marker = StyleWarning.Render("▸") + " "
		default:
			marker = listDimStyle.Render("▾") + " "
		}

		label := n.Name
		if n.Title != "" {
			label += "  " + listDimStyle.Render(n.Title)
		}
		if m.Collapsed[n.ID] {
			label += listDimStyle.Render(fmt.Sprintf("  (%d hidden)", n.Count()-1))
		}

		line := cursor + strings.Repeat("  ", row.depth) + marker + label
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d collapsed", m.cursor+1, len(m.rows), len(m.Collapsed))))

	return b.String()
}
