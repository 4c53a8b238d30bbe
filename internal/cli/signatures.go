package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	fcsserrors "github.com/matzehuels/fcss/pkg/errors"
	"github.com/matzehuels/fcss/pkg/signature"
)

// signaturesOpts holds the command-line flags for the signatures command.
type signaturesOpts struct {
	resolveOpts
	classes   []string // class lines given on the command line
	templates []string // template files to scan for class attributes
	plain     bool     // one signature per line, no table
}

// signaturesCommand creates the signatures command. It lists the signatures
// a reg file declares, the signatures used by class lines or templates, or,
// given both, how they relate.
func (c *CLI) signaturesCommand() *cobra.Command {
	var opts signaturesOpts

	cmd := &cobra.Command{
		Use:   "signatures [file]",
		Short: "List class signatures of a reg file, class lines or templates",
		Example: `  fcss signatures main.reg
  fcss signatures --classes ".h-12 .w-12 .b-1-fff"
  fcss signatures main.reg --template src/App.vue`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			return c.runSignatures(cmd.Context(), file, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringArrayVar(&opts.classes, "classes", nil, "class line, e.g. \".h-12 .w-12\" (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.templates, "template", "t", nil, "template file to scan for class attributes (repeatable)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print one signature per line")
	opts.resolveOpts.register(cmd)

	return cmd
}

func (c *CLI) runSignatures(ctx context.Context, file string, opts signaturesOpts, stdin io.Reader, stdout io.Writer) error {
	if file == "" && len(opts.classes) == 0 && len(opts.templates) == 0 {
		return fcsserrors.New(fcsserrors.ErrCodeInvalidInput, "give a reg file, --classes or --template")
	}

	var declared, used signature.Set
	if file != "" {
		_, tree, err := c.loadSheet(ctx, file, opts.resolveOpts, true, stdin)
		if err != nil {
			return err
		}
		declared = signature.Extract(tree)
	}
	if len(opts.classes) > 0 || len(opts.templates) > 0 {
		lines := append([]string(nil), opts.classes...)
		for _, path := range opts.templates {
			data, err := readInput(path, stdin)
			if err != nil {
				return err
			}
			lines = append(lines, signature.ScanClasses(data)...)
		}
		used = signature.FromClasses(lines)
	}

	if opts.plain {
		for _, s := range declared.Union(used).Sorted() {
			fmt.Fprintln(stdout, s)
		}
		return nil
	}
	_, err := fmt.Fprintln(stdout, signatureTable(declared, used))
	return err
}

// signatureTable renders the signatures with the side they come from. A nil
// set means that side was not requested.
func signatureTable(declared, used signature.Set) string {
	headers := []string{"#", "Signature"}
	if declared != nil && used != nil {
		headers = append(headers, "Status")
	}
	t := newTable(headers...)

	for i, s := range declared.Union(used).Sorted() {
		row := []string{strconv.Itoa(i + 1), s}
		if declared != nil && used != nil {
			row = append(row, signatureStatus(declared.Has(s), used.Has(s)))
		}
		t.Row(row...)
	}
	return t.Render()
}

func signatureStatus(declared, used bool) string {
	switch {
	case declared && used:
		return styleKnown.Render("declared, used")
	case used:
		return styleMiss.Render("used, not declared")
	default:
		return StyleDim.Render("declared, unused")
	}
}
