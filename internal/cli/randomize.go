package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blocks/pkg/config"
	"github.com/matzehuels/blocks/pkg/generator/registry"
)

// randomizeCommand creates the randomize command, which writes a random
// parameter document for a kind.
func (c *CLI) randomizeCommand() *cobra.Command {
	var (
		seed   uint64
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "randomize <kind>",
		Short: "Write a parameter document with random parameters",
		Long: `Write a parameter document with random parameters for a generator.

The document can be edited and rendered with 'blocks generate' or kept up to
date with 'blocks watch'. The same --seed always produces the same document.`,
		Example: `  blocks randomize gradient --seed 42
  blocks randomize blob -o blob.toml
  blocks randomize clip-path --format yaml`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: registry.Kinds(),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := registry.New(args[0])
			if err != nil {
				return err
			}
			if err := randomize(g, seed); err != nil {
				return err
			}

			if output != "" {
				if err := config.SaveDocument(output, g); err != nil {
					return err
				}
				printSuccess("Randomized %s", g.Kind())
				printFile(output)
				printNextStep("Render it", fmt.Sprintf("blocks generate %s", output))
				return nil
			}
			return config.EncodeDocument(c.stdout(), g, format)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().StringVar(&format, "format", config.FormatTOML, "document format for stdout: toml, yaml, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the document to a file (format from extension)")

	return cmd
}
