package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blocks/pkg/generator/registry"
)

// listCommand creates the list command showing every generator.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List generators and the formats they support",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kindStyle := lipgloss.NewStyle().Foreground(colorCyan).Width(18)
			w := c.stdout()
			for _, info := range registry.Describe() {
				var tags []string
				if info.Animated {
					tags = append(tags, "animated")
				}
				if info.Random {
					tags = append(tags, "random")
				}
				line := kindStyle.Render(info.Kind) + " " + StyleValue.Render(strings.Join(info.Formats, ", "))
				if len(tags) > 0 {
					line += "  " + StyleDim.Render(strings.Join(tags, " · "))
				}
				fmt.Fprintln(w, line)
			}
			return nil
		},
	}
}
