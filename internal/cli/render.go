package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fcss/pkg/config"
	fcsserrors "github.com/matzehuels/fcss/pkg/errors"
	"github.com/matzehuels/fcss/pkg/parse"
	"github.com/matzehuels/fcss/pkg/render"
	"github.com/matzehuels/fcss/pkg/sheet"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	resolveOpts
	output    string // output file; stdout when empty
	noResolve bool   // print the parsed tree with imports left in place
	diff      bool   // print a diff of the source against the canonical text
}

// renderCommand creates the render command, which prints a reg file in
// canonical form after resolving its imports.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file|->",
		Short: "Resolve imports and print a reg file in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.noResolve, "no-resolve", false, "leave @import directives unresolved")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "show how the source differs from its canonical form")
	opts.resolveOpts.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts, stdin io.Reader, stdout io.Writer) error {
	prog := newProgress(loggerFromContext(ctx))

	src, tree, err := c.loadSheet(ctx, input, opts.resolveOpts, !opts.noResolve, stdin)
	if err != nil {
		return err
	}

	switch {
	case opts.diff:
		err = writeOutput(opts.output, []byte(render.Diff(src, render.Sheet(tree))), stdout)
	case opts.output == "":
		err = render.Write(stdout, tree)
	default:
		err = writeOutput(opts.output, []byte(render.Sheet(tree)), stdout)
	}
	if err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Rendered %s", input))
	if opts.output != "" {
		printStats(tree.Stats())
	}
	return nil
}

// loadSheet reads and parses input ("-" for stdin) and, when resolveImports
// is set, resolves its imports. It returns the source text with the tree.
func (c *CLI) loadSheet(ctx context.Context, input string, opts resolveOpts, resolveImports bool, stdin io.Reader) (string, sheet.Mapping, error) {
	data, err := readInput(input, stdin)
	if err != nil {
		return "", nil, err
	}
	tree, err := parse.Document(string(data))
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", input, err)
	}
	if !resolveImports || !tree.HasImport() {
		return string(data), tree, nil
	}

	res, closeCache, err := c.newResolver(opts, config.DefaultCacheTTL)
	if err != nil {
		return "", nil, err
	}
	defer closeCache()

	tree, err = res.Resolve(ctx, tree)
	if err != nil {
		return "", nil, err
	}
	return string(data), tree, nil
}

func readInput(input string, stdin io.Reader) ([]byte, error) {
	if input == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fcsserrors.Wrap(fcsserrors.ErrCodeIO, err, "read stdin")
		}
		return data, nil
	}
	data, err := os.ReadFile(input)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fcsserrors.Wrap(fcsserrors.ErrCodeFileNotFound, err, "file %s not found", input)
	}
	if err != nil {
		return nil, fcsserrors.Wrap(fcsserrors.ErrCodeIO, err, "read %s", input)
	}
	return data, nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fcsserrors.Wrap(fcsserrors.ErrCodeIO, err, "write %s", path)
	}
	printSuccess("Wrote output")
	printFile(path)
	return nil
}
