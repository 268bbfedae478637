package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/typewire/typewire/pkg/render"
	"github.com/typewire/typewire/pkg/wire"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path; empty derives it from the input
	format   string // output format: "dot" or "svg"
	detailed bool   // include flags, scopes and descriptions in node labels
}

// newRenderCmd creates the render command for generating diagrams.
// It decodes a type-graph document and emits Graphviz DOT or a rendered SVG.
//
// Default settings:
//   - format: svg
//   - output: input path with the format as its extension
func newRenderCmd() *cobra.Command {
	opts := renderOpts{format: formatSVG}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a type-graph document as a diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input path with format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show flags, scopes and descriptions in node labels")

	return cmd
}

// validateFormat checks that the format is either "dot" or "svg".
func validateFormat(f string) error {
	if f != formatDOT && f != formatSVG {
		return fmt.Errorf("invalid format: %s (must be 'dot' or 'svg')", f)
	}
	return nil
}

// outputPath derives the output file path from the output flag and input path.
// If output is empty, the input's extension is replaced with the format.
func outputPath(output, input, format string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
}

// runRender decodes the document and writes it in the requested format.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	types, err := wire.DeserializeFile(input)
	if err != nil {
		return err
	}
	logger.Infof("Decoded %d nodes", len(types))

	dot := render.ToDOT(types, render.Options{Detailed: opts.detailed})

	var data []byte
	switch opts.format {
	case formatDOT:
		data = []byte(dot)
	case formatSVG:
		logger.Debug("Rendering SVG via graphviz")
		data, err = render.RenderSVG(ctx, dot)
		if err != nil {
			return err
		}
	}
	logger.Debugf("Generated %s: %d bytes", opts.format, len(data))

	path := outputPath(opts.output, input, opts.format)
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}

	printSuccess("Rendered %s", input)
	printFile(path)
	return nil
}

// openOutput opens path for writing, or stdout when path is "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
