package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/modu-ai/scaffold/internal/core/project"
	"github.com/modu-ai/scaffold/internal/ui"
	"github.com/modu-ai/scaffold/internal/verify"
)

// errCheckFailed is returned when a checked tree has problems.
var errCheckFailed = errors.New("check failed")

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Verify a generated project",
	Long: `Verify a generated project against the selection recorded in its
.scaffold.yaml: go.mod module path and requirements, Go syntax and
formatting, leftover placeholders and, for SQLite projects, that the
migrations apply.

Without a directory, the nearest parent containing .scaffold.yaml is used.
With --build, go mod tidy and go build ./... are run as well.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheckCmd,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().Bool("build", false, "Also run go mod tidy and go build ./... (needs the Go toolchain and network)")
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	dir := ""
	if len(args) > 0 {
		dir = args[0]
	}
	return runCheck(cmd.Context(), cmd.OutOrStdout(), dir, getBoolFlag(cmd, "build"))
}

// runCheck verifies one tree and prints its report.
func runCheck(ctx context.Context, w io.Writer, dir string, build bool) error {
	d, err := requireDeps()
	if err != nil {
		return err
	}

	if dir == "" {
		dir, err = project.FindProjectRoot("")
		if err != nil {
			return err
		}
	}

	report, err := d.Checker.Check(ctx, dir)
	if err != nil {
		return err
	}
	printReport(w, d.Theme, report)
	if !report.Passed() {
		return fmt.Errorf("%w: %s has %d problem(s)", errCheckFailed, dir, len(report.Problems()))
	}

	if build {
		spinner := ui.NewProgress(d.Theme, d.Headless, w).Spinner("Building " + dir)
		err := verify.Build(ctx, dir)
		spinner.Stop()
		if err != nil {
			_, _ = fmt.Fprintln(w, d.Theme.ErrorCard("Build failed", err.Error()))
			return fmt.Errorf("%w: %w", errCheckFailed, err)
		}
		_, _ = fmt.Fprintln(w, d.Theme.Success.Render("✓")+" go build ./... succeeded")
	}
	return nil
}

func printReport(w io.Writer, theme *ui.Theme, r *verify.Report) {
	details := []string{
		theme.KeyValue("selection", r.Manifest.Selection.String()),
		theme.KeyValue("files    ", fmt.Sprint(r.Files)),
	}
	for _, is := range r.Issues {
		mark := theme.Warning.Render("!")
		if is.Severity == verify.SeverityError {
			mark = theme.Error.Render("✗")
		}
		details = append(details, mark+" "+is.String())
	}

	title := fmt.Sprintf("%s: %d problem(s), %d warning(s)", r.Dir, len(r.Problems()), len(r.Warnings()))
	if r.Passed() {
		_, _ = fmt.Fprintln(w, theme.SuccessCard(title, details...))
		return
	}
	_, _ = fmt.Fprintln(w, theme.ErrorCard(title, details...))
}
