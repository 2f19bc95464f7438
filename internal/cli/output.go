package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/blocks/pkg/generator"
	"github.com/matzehuels/blocks/pkg/generator/registry"
	"github.com/matzehuels/blocks/pkg/pipeline"
)

// extensions maps output formats to file extensions.
var extensions = map[string]string{
	registry.FormatCSS:      ".css",
	registry.FormatTailwind: ".txt",
	registry.FormatSVG:      ".svg",
	registry.FormatHTML:     ".html",
	registry.FormatPNG:      ".png",
	registry.FormatPDF:      ".pdf",
}

// textFormats can be written straight to a terminal.
var textFormats = map[string]bool{
	registry.FormatCSS:      true,
	registry.FormatTailwind: true,
	registry.FormatSVG:      true,
	registry.FormatHTML:     true,
}

// fileName returns the default file name for an artifact.
func fileName(g generator.Generator, format string) string {
	ext := extensions[format]
	if n, ok := g.(generator.Namer); ok {
		return strings.TrimSuffix(n.FileName(format), "."+format) + ext
	}
	return g.Kind() + ext
}

// artifactWriteParams describes where the artifacts of one run go.
type artifactWriteParams struct {
	result *pipeline.Result
	output string    // output file (single format) or base path (multiple)
	stdout io.Writer // receives a lone text artifact when output is empty
}

// writeArtifacts writes a pipeline result to disk (or stdout) and reports
// what was written, skipped and failed.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	res := p.result
	outputs := res.Outputs()

	for _, f := range res.Skipped {
		printWarning("%s does not support %s, skipped", res.Stats.Kind, f)
	}
	for f, err := range res.Failed {
		printError("%s export failed: %v", f, err)
	}

	if p.output == "" && len(outputs) == 1 && textFormats[outputs[0].Format] {
		data := outputs[0].Body
		if _, err := p.stdout.Write(data); err != nil {
			return nil, err
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			fmt.Fprintln(p.stdout)
		}
		return nil, nil
	}

	var written []string
	for _, o := range outputs {
		path := outputPath(res.Generator, o.Format, p.output, len(outputs) > 1)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return written, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, o.Body, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	if len(written) > 0 {
		printSuccess("Generated %s", res.Stats.Kind)
		for _, path := range written {
			printFile(path)
		}
		printStats(res)
	}
	return written, nil
}

// outputPath resolves the path for one format. With several formats the
// output is treated as a base path (or a directory when it ends in a
// separator).
func outputPath(g generator.Generator, format, output string, multiple bool) string {
	switch {
	case output == "":
		return fileName(g, format)
	case strings.HasSuffix(output, string(os.PathSeparator)):
		return filepath.Join(output, fileName(g, format))
	case !multiple:
		return output
	default:
		return strings.TrimSuffix(output, filepath.Ext(output)) + extensions[format]
	}
}
