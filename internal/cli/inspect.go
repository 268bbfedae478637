package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/typewire/typewire/pkg/typegraph"
	"github.com/typewire/typewire/pkg/wire"
)

// newInspectCmd creates the inspect command for examining type-graph documents.
// It decodes the document and prints one row per node with its position,
// variant and identifying content, followed by per-variant counts.
func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the nodes of a type-graph document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0])
		},
	}
	return cmd
}

func runInspect(cmd *cobra.Command, input string) error {
	logger := loggerFromContext(cmd.Context())
	p := newProgress(logger)

	types, err := wire.DeserializeFile(input)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Decoded %d nodes", len(types)))

	printNewline()
	printInfo("%s", StyleTitle.Render(input))
	fmt.Println(nodeTable(types))
	printStats(countVariants(types))
	printNewline()
	printNextStep("Render a diagram", "typewire render "+input)
	return nil
}

// nodeTable renders one row per node: position, variant, summary.
func nodeTable(types []typegraph.TypeBase) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(types))
	for i, t := range types {
		rows[i] = []string{strconv.Itoa(i), variantName(t), nodeDetail(t)}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Variant", "Detail").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}
