package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/idelchi/treegen/internal/treegen"
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && isatty.IsTerminal(f.Fd())
}

func (c CLI) logic(ctx context.Context, options treegen.Options) error {
	log := newLogger(c.errOut, options.Debug)
	defer func() { _ = log.Sync() }()

	if options.Depth > c.warningDepth {
		printWarning(c.out, options.Depth)

		if !options.Yes {
			ok, err := confirm(c.in, c.out, "Do you want to continue?")
			if err != nil {
				return err
			}

			if !ok {
				fmt.Fprintln(c.out, "Cancelled.")

				return nil
			}
		}
	}

	enableProgress := options.Output != "json" &&
		!options.Debug &&
		isTerminal(c.errOut)

	generator := treegen.Generator{
		Logger:           log,
		ProgressInterval: options.ProgressInterval,
	}

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(c.errOut, "\033[?25l")
		defer fmt.Fprint(c.errOut, "\033[?25h")

		total := treegen.FileCount(options.Depth)
		generator.Progress = func(files int64) {
			msg := fmt.Sprintf("Generating… %s of %s files", humanize.Comma(files), count(total))
			fmt.Fprintf(c.errOut, "\r\033[2K%s\r", msg)
		}
	}

	start := time.Now()
	_, err := generator.Generate(ctx, options.Depth, options.Root)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(c.errOut, "\r\033[2K\r")
	}

	if err != nil {
		return fmt.Errorf("generating tree: %w", err)
	}

	elapsed := time.Since(start)

	stats, err := treegen.Collect(options.Root)
	if err != nil {
		return fmt.Errorf("collecting statistics: %w", err)
	}

	summary := Summary{
		Depth:     options.Depth,
		Root:      options.Root,
		Stats:     stats,
		HumanSize: treegen.FormatBytes(stats.Size),
		Elapsed:   elapsed,
	}

	if options.Verify {
		report, err := treegen.Verify(ctx, options.Root, options.Depth, log)
		if err != nil {
			return fmt.Errorf("verifying tree: %w", err)
		}

		summary.Verification = report
	}

	switch options.Output {
	case "json":
		err = PrintJSON(summary, c.out)
	default:
		err = PrintTable(summary, c.out)
	}

	if err != nil {
		return err
	}

	if summary.Verification != nil && !summary.Verification.OK() {
		return fmt.Errorf("verification failed with %d problems", len(summary.Verification.Violations))
	}

	return nil
}
