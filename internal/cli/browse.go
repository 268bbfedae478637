package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/typewire/typewire/pkg/typegraph"
	"github.com/typewire/typewire/pkg/wire"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newBrowseCmd creates the browse command for interactive node navigation.
func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [file]",
		Short: "Interactively browse a type-graph document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := wire.DeserializeFile(args[0])
			if err != nil {
				return err
			}
			model := NewNodeListModel(args[0], types)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}
}

// =============================================================================
// NodeListModel - Interactive node browsing
// =============================================================================

// NodeListModel is the bubbletea model for browsing the nodes of a decoded
// document. The right-hand detail pane shows the selected node's outgoing
// references by position.
type NodeListModel struct {
	Title     string
	Types     []typegraph.TypeBase
	positions map[typegraph.TypeBase]int
	Cursor    int
	Height    int
	Offset    int
}

// NewNodeListModel creates a new node list model for the given document.
func NewNodeListModel(title string, types []typegraph.TypeBase) NodeListModel {
	positions := make(map[typegraph.TypeBase]int, len(types))
	for i, t := range types {
		positions[t] = i
	}
	return NodeListModel{
		Title:     title,
		Types:     types,
		positions: positions,
		Height:    15,
	}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Types)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			// Jump to the first node the selection references.
			if refs := m.references(m.Cursor); len(refs) > 0 {
				m.Cursor = refs[0].target
				if m.Cursor < m.Offset || m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ follow reference  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Types) {
		end = len(m.Types)
	}

	for i := m.Offset; i < end; i++ {
		t := m.Types[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%3d  %-13s %s", cursor, i, variantName(t), nodeDetail(t))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detailView())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Types))))

	return b.String()
}

// detailView lists the selected node's outgoing references.
func (m NodeListModel) detailView() string {
	refs := m.references(m.Cursor)
	if len(refs) == 0 {
		return listDimStyle.Render("  no outgoing references")
	}

	var b strings.Builder
	b.WriteString(listDimStyle.Render("  references:"))
	b.WriteString("\n")
	for _, r := range refs {
		b.WriteString(fmt.Sprintf("    %s %s %s\n",
			listDimStyle.Render(r.label),
			listDimStyle.Render(iconArrow),
			listNormalStyle.Render(fmt.Sprintf("%d (%s)", r.target, variantName(m.Types[r.target])))))
	}
	return strings.TrimRight(b.String(), "\n")
}

// nodeRef is one outgoing reference of a node, resolved to a position.
type nodeRef struct {
	label  string
	target int
}

// references lists the outgoing references of the node at pos.
func (m NodeListModel) references(pos int) []nodeRef {
	var refs []nodeRef
	add := func(ref typegraph.TypeReference, label string) {
		if ref == nil {
			return
		}
		if target, ok := m.positions[ref.Resolve()]; ok {
			refs = append(refs, nodeRef{label: label, target: target})
		}
	}

	switch n := m.Types[pos].(type) {
	case *typegraph.ObjectType:
		for _, name := range n.Properties.Names() {
			p, _ := n.Properties.Get(name)
			add(p.Type, name)
		}
		add(n.AdditionalProperties, "*")
	case *typegraph.ArrayType:
		add(n.ItemType, "item")
	case *typegraph.ResourceType:
		add(n.Body, "body")
	case *typegraph.UnionType:
		for i, ref := range n.Elements {
			add(ref, fmt.Sprintf("|%d", i))
		}
	case *typegraph.DiscriminatedObjectType:
		for _, name := range n.BaseProperties.Names() {
			p, _ := n.BaseProperties.Get(name)
			add(p.Type, name)
		}
		for _, v := range sortedKeys(n.Elements) {
			add(n.Elements[v], n.Discriminator+"="+v)
		}
	case *typegraph.ResourceFunctionType:
		add(n.Input, "input")
		add(n.Output, "output")
	}
	return refs
}

func sortedKeys(m map[string]typegraph.TypeReference) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
