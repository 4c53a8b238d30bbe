package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	fcsserrors "github.com/matzehuels/fcss/pkg/errors"
	"github.com/matzehuels/fcss/pkg/render/importgraph"
	"github.com/matzehuels/fcss/pkg/resolve"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output string
	format string
	dir    string
	short  bool
}

// graphCommand creates the graph command, which draws the file-level import
// graph of a reg file.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: formatSVG}

	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Draw the import graph of a reg file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateGraphFormat(opts.format); err != nil {
				return err
			}
			return c.runGraph(cmd.Context(), args[0], opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg or dot")
	cmd.Flags().StringVar(&opts.dir, "dir", "", "directory import paths are relative to (default: working directory)")
	cmd.Flags().BoolVar(&opts.short, "short", false, "label files by base name")

	return cmd
}

func validateGraphFormat(f string) error {
	if f != formatDOT && f != formatSVG {
		return fcsserrors.New(fcsserrors.ErrCodeInvalidFormat, "unknown format %q (use svg or dot)", f)
	}
	return nil
}

func (c *CLI) runGraph(ctx context.Context, file string, opts graphOpts, stdout io.Writer) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	g, err := resolve.Graph(ctx, resolve.FileReader{Dir: opts.dir}, file)
	if err != nil {
		return err
	}
	logger.Debug("import graph", "files", len(g.Files()))

	dot := importgraph.ToDOT(g, importgraph.Options{ShortLabels: opts.short})
	out := []byte(dot)
	if opts.format == formatSVG {
		spinner := newSpinnerWithContext(ctx, "Rendering SVG...")
		spinner.Start()
		out, err = importgraph.RenderSVG(ctx, dot)
		spinner.Stop()
		if err != nil {
			return fmt.Errorf("render import graph: %w", err)
		}
	}

	if err := writeOutput(opts.output, out, stdout); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Graphed %d files", len(g.Files())))
	return nil
}
