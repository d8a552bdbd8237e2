package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idelchi/treegen/internal/treegen"
)

// DefaultRoot is the output directory used when none is given.
const DefaultRoot = "test-tree"

// CLI represents the command-line interface.
type CLI struct {
	version string
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	// warningDepth is the deepest tree generated without confirmation.
	warningDepth int
}

// New creates a new CLI instance with the given version, bound to the process streams.
func New(version string) CLI {
	return CLI{
		version:      version,
		in:           os.Stdin,
		out:          os.Stdout,
		errOut:       os.Stderr,
		warningDepth: treegen.WarningDepth,
	}
}

// WithIO returns a copy of the CLI reading answers from in and writing to out and errOut.
func (c CLI) WithIO(in io.Reader, out, errOut io.Writer) CLI {
	c.in, c.out, c.errOut = in, out, errOut

	return c
}

//nolint:gochecknoglobals // Config constant
var allowedOutputs = []string{"table", "json"}

func help(w io.Writer, flags *pflag.FlagSet) {
	fmt.Fprintln(w, heredoc.Doc(`
		treegen generates a synthetic directory tree for testing tooling against large file counts.

		Usage:

			treegen [flags] <depth> [output-dir]

		Positional Arguments:
		  depth                  Number of directory levels, root included. Must be >= 1.
		  output-dir             Directory to generate into. Defaults to "test-tree".
		                         An existing directory is removed first.

		Every directory holds index.js importing nine children f1..f9. Above the last
		level each fN.js imports ./fN/index from a subdirectory of the same name; on
		the last level each fN.js is a leaf holding a depth marker.

		Depths above 5 ask for confirmation unless --yes is given.
	`))
	printDepthTable(w, treegen.WarningDepth)
	fmt.Fprintln(w, "\nFlags:")
	fmt.Fprint(w, flags.FlagUsages())
}

func addFlags(flags *pflag.FlagSet, options *treegen.Options) {
	flags.BoolVarP(&options.Yes, "yes", "y", false, "Skip the confirmation prompt for deep trees")
	flags.BoolVar(&options.Verify, "verify", false, "Verify the generated layout after generation")
	flags.StringVarP(&options.Output, "output", "o", "table", "Output format: json or table")
	flags.DurationVar(&options.ProgressInterval, "progress-interval", treegen.DefaultProgressInterval,
		"Interval between progress updates")
	flags.BoolVar(&options.Debug, "debug", false, "Enable debug output")

	flags.SortFlags = false
}

// parseDepth converts the depth argument, rejecting anything below 1.
func parseDepth(arg string) (int, error) {
	depth, err := strconv.Atoi(arg)
	if err != nil || depth < 1 {
		return 0, fmt.Errorf("invalid depth %q: %w", arg, treegen.ErrInvalidDepth)
	}

	return depth, nil
}

// negativeDepth returns the first negative number among args, which pflag
// would otherwise reject as an unknown shorthand flag, and whether help was requested.
func negativeDepth(args []string) (depth string, help bool) {
	for _, arg := range args {
		if arg == "--" {
			break
		}

		if arg == "-h" || arg == "--help" {
			help = true
		}

		if depth == "" && strings.HasPrefix(arg, "-") {
			if _, err := strconv.Atoi(arg); err == nil {
				depth = arg
			}
		}
	}

	return depth, help
}

func (c CLI) command() *cobra.Command {
	var options treegen.Options

	cmd := &cobra.Command{
		Use:           "treegen <depth> [output-dir]",
		Short:         "Generate a synthetic directory tree",
		Version:       c.version,
		Args:          cobra.MaximumNArgs(2), //nolint:mnd // depth and output-dir
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}

			depth, err := parseDepth(args[0])
			if err != nil {
				return err
			}

			options.Depth = depth

			options.Root = DefaultRoot
			if len(args) > 1 {
				options.Root = args[1]
			}

			if !slices.Contains(allowedOutputs, options.Output) {
				return fmt.Errorf("invalid output format %q: must be one of %v", options.Output, allowedOutputs)
			}

			return c.logic(cmd.Context(), options)
		},
	}

	cmd.SetIn(c.in)
	cmd.SetOut(c.out)
	cmd.SetErr(c.errOut)
	cmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		help(cmd.OutOrStdout(), cmd.Flags())
	})
	cmd.SetVersionTemplate("{{ .Version }}\n")

	addFlags(cmd.Flags(), &options)

	return cmd
}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute(args []string) error {
	cmd := c.command()

	if args == nil {
		args = []string{}
	}

	if depth, help := negativeDepth(args); depth != "" {
		if help {
			cmd.InitDefaultHelpFlag()
			cmd.InitDefaultVersionFlag()

			return cmd.Help()
		}

		_, err := parseDepth(depth)

		return err
	}

	cmd.SetArgs(args)

	return cmd.ExecuteContext(context.Background())
}
