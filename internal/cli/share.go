package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blocks/pkg/config"
	"github.com/matzehuels/blocks/pkg/share"
)

// shareCommand creates the share command for encoding and decoding share
// tokens.
func (c *CLI) shareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Encode parameters into a share token, or decode one",
	}

	cmd.AddCommand(c.shareEncodeCommand())
	cmd.AddCommand(c.shareDecodeCommand())

	return cmd
}

// shareEncodeCommand creates the "share encode" subcommand.
func (c *CLI) shareEncodeCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "encode [document]",
		Short: "Print the share token for a parameter document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			g, err := loadGenerator(input, kind)
			if err != nil {
				return err
			}
			token, err := share.Encode(g)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.stdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "encode this kind's defaults when no document is given")
	_ = cmd.RegisterFlagCompletionFunc("kind", completeKinds)

	return cmd
}

// shareDecodeCommand creates the "share decode" subcommand.
func (c *CLI) shareDecodeCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "decode <token>",
		Short: "Turn a share token back into a parameter document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := share.Decode(args[0])
			if err != nil {
				return err
			}
			if output != "" {
				if err := config.SaveDocument(output, g); err != nil {
					return err
				}
				printSuccess("Decoded %s", g.Kind())
				printFile(output)
				return nil
			}
			return config.EncodeDocument(c.stdout(), g, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", config.FormatTOML, "document format for stdout: toml, yaml, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the document to a file (format from extension)")

	return cmd
}
