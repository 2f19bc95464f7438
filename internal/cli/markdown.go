package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blocks/pkg/errors"
	"github.com/matzehuels/blocks/pkg/generator/registry"
	"github.com/matzehuels/blocks/pkg/markdown"
	"github.com/matzehuels/blocks/pkg/pipeline"
	"github.com/matzehuels/blocks/pkg/printer"
)

// markdownOpts holds the command-line flags for the markdown command.
type markdownOpts struct {
	title    string
	margin   float64
	fontSize float64
	pdf      bool
	output   string
	preview  bool
	noCache  bool
}

// markdownCommand creates the markdown command.
func (c *CLI) markdownCommand() *cobra.Command {
	d := markdown.Default()
	opts := markdownOpts{margin: d.Margin, fontSize: d.FontSize}

	cmd := &cobra.Command{
		Use:   "markdown <file.md>",
		Short: "Convert Markdown to a print-ready HTML document or PDF",
		Long: `Convert a Markdown file to a standalone, print-ready HTML document.

With --pdf the document is printed to PDF through headless Chrome (launched
locally, or the instance at [printer] control_url in the settings file).
With --preview the Markdown is rendered in the terminal instead.`,
		Example: `  blocks markdown README.md > readme.html
  blocks markdown notes.md --pdf -o notes.pdf
  blocks markdown notes.md --preview`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMarkdown(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.title, "title", "", "document title (default: file name)")
	cmd.Flags().Float64Var(&opts.margin, "margin", opts.margin, "page margin in millimetres")
	cmd.Flags().Float64Var(&opts.fontSize, "font-size", opts.fontSize, "body font size in points")
	cmd.Flags().BoolVar(&opts.pdf, "pdf", false, "print to PDF")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "render in the terminal")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runMarkdown converts one markdown file.
func (c *CLI) runMarkdown(ctx context.Context, input string, opts markdownOpts) error {
	src, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNotFound, err, "read %s", input)
	}

	if opts.preview {
		out, err := previewMarkdown(string(src))
		if err != nil {
			return err
		}
		fmt.Fprint(c.stdout(), out)
		return nil
	}

	m := &markdown.Markdown{
		Title:    opts.title,
		Source:   string(src),
		Margin:   opts.margin,
		FontSize: opts.fontSize,
	}
	if m.Title == "" {
		m.Title = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}
	m.Normalize()

	format := registry.FormatHTML
	if opts.pdf {
		format = registry.FormatPDF
	}

	return c.withRunner(ctx, opts.noCache, func(ctx context.Context, runner *pipeline.Runner) error {
		result, err := runner.Execute(ctx, pipeline.Options{
			Generator: m,
			Formats:   []string{format},
			Logger:    c.Logger,
		})
		if err != nil {
			return err
		}
		if err := result.Failed[format]; err != nil {
			return err
		}
		if format == registry.FormatPDF {
			if pages, err := printer.PageCount(result.Artifacts[format]); err == nil {
				c.Logger.Info("printed document", "title", m.Title, "pages", pages)
			}
		}
		_, err = writeArtifacts(artifactWriteParams{
			result: result,
			output: opts.output,
			stdout: c.stdout(),
		})
		return err
	})
}

// previewMarkdown renders src for the terminal.
func previewMarkdown(src string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "create markdown renderer")
	}
	out, err := r.Render(src)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "render markdown")
	}
	return out, nil
}
