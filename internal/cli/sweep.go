package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/modu-ai/scaffold/internal/core/project"
	"github.com/modu-ai/scaffold/internal/core/selection"
	"github.com/modu-ai/scaffold/internal/ui"
	"github.com/modu-ai/scaffold/pkg/models"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Generate and verify every valid selection",
	Long: `Generate one project per valid selection into <out>/<family>_<engine>_<library>
and verify each generated tree.

Each combination is independent: a failure is reported and the sweep
continues. The command fails if any combination failed to generate or verify.

Examples:
  scaffold sweep --out /tmp/sweep
  scaffold sweep --out /tmp/sweep --template api-service --db sqlite,postgres`,
	Args:    cobra.NoArgs,
	PreRunE: validateSweepFlags,
	RunE:    runSweepCmd,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().String("out", "", "Parent directory of the generated trees (required)")
	sweepCmd.Flags().Int("jobs", 0, "Concurrent generations (default: sweep.jobs from config, then GOMAXPROCS)")
	sweepCmd.Flags().String("name", "sweep", "Project name used for every combination")
	sweepCmd.Flags().StringSlice("template", nil, "Only these template families")
	sweepCmd.Flags().StringSlice("db", nil, "Only these database engines")
	sweepCmd.Flags().StringSlice("lib", nil, "Only these database libraries")
	sweepCmd.Flags().Bool("force", false, "Replace existing trees (old trees are moved to backups)")
	sweepCmd.Flags().Bool("no-verify", false, "Skip verification of generated trees")
	_ = sweepCmd.MarkFlagRequired("out")
}

// sweepOptions are the inputs of scaffold sweep.
type sweepOptions struct {
	Out       string
	Jobs      int
	Name      string
	Families  []models.TemplateFamily
	Engines   []models.DBEngine
	Libraries []models.DBLibrary
	Force     bool
	NoVerify  bool
}

func validateSweepFlags(cmd *cobra.Command, _ []string) error {
	if jobs := getIntFlag(cmd, "jobs"); jobs < 0 {
		return fmt.Errorf("invalid --jobs value %d: must not be negative", jobs)
	}
	for _, v := range getStringSliceFlag(cmd, "template") {
		if !models.TemplateFamily(v).IsValid() {
			return fmt.Errorf("invalid --template value %q: must be one of: %s", v, joinValues(models.AllTemplateFamilies()))
		}
	}
	for _, v := range getStringSliceFlag(cmd, "db") {
		if !models.DBEngine(v).IsValid() {
			return fmt.Errorf("invalid --db value %q: must be one of: %s", v, joinValues(models.AllDBEngines()))
		}
	}
	for _, v := range getStringSliceFlag(cmd, "lib") {
		if !models.DBLibrary(v).IsValid() {
			return fmt.Errorf("invalid --lib value %q: must be one of: %s", v, joinValues(models.AllDBLibraries()))
		}
	}
	return nil
}

func runSweepCmd(cmd *cobra.Command, _ []string) error {
	opts := sweepOptions{
		Out:       getStringFlag(cmd, "out"),
		Jobs:      getIntFlag(cmd, "jobs"),
		Name:      getStringFlag(cmd, "name"),
		Families:  toValues[models.TemplateFamily](getStringSliceFlag(cmd, "template")),
		Engines:   toValues[models.DBEngine](getStringSliceFlag(cmd, "db")),
		Libraries: toValues[models.DBLibrary](getStringSliceFlag(cmd, "lib")),
		Force:     getBoolFlag(cmd, "force"),
		NoVerify:  getBoolFlag(cmd, "no-verify"),
	}
	return runSweep(cmd.Context(), cmd.OutOrStdout(), opts)
}

func toValues[T ~string](vals []string) []T {
	out := make([]T, len(vals))
	for i, v := range vals {
		out[i] = T(v)
	}
	return out
}

// runSweep generates every selected combination, then verifies each tree.
func runSweep(ctx context.Context, w io.Writer, opts sweepOptions) error {
	d, err := requireDeps()
	if err != nil {
		return err
	}

	filter := project.SweepFilter(opts.Families, opts.Engines, opts.Libraries)
	total := 0
	for _, sel := range selection.All() {
		if filter(sel) {
			total++
		}
	}
	if total == 0 {
		return errors.New("no valid selection matches the filters")
	}

	jobs := opts.Jobs
	if jobs == 0 {
		jobs = d.Config.Sweep.Jobs
	}

	progress := ui.NewProgress(d.Theme, d.Headless, w)
	bar := progress.Start("Generating", total)
	report, err := d.Generator.Sweep(ctx, project.SweepOptions{
		Out:       expandHome(opts.Out),
		Context:   models.ProjectContext{ProjectName: opts.Name},
		Jobs:      jobs,
		Overwrite: opts.Force,
		Filter:    filter,
		Progress: func(res project.SweepResult, _, _ int) {
			if res.Err != nil {
				bar.Println(d.Theme.Error.Render("✗") + " " + res.Selection.Slug() + ": " + res.Err.Error())
			}
			bar.Increment(1)
		},
	})
	bar.Done()
	if err != nil {
		return err
	}

	failed := len(report.Failed())
	var unverified []string
	if !opts.NoVerify {
		unverified = verifySweep(ctx, w, d, report)
	}

	summary := []string{
		d.Theme.KeyValue("generated ", fmt.Sprintf("%d/%d", len(report.Results)-failed, len(report.Results))),
		d.Theme.KeyValue("location  ", expandHome(opts.Out)),
	}
	if !opts.NoVerify {
		summary = append(summary, d.Theme.KeyValue("verified  ", fmt.Sprintf("%d/%d", len(report.Results)-failed-len(unverified), len(report.Results)-failed)))
	}

	if failed > 0 || len(unverified) > 0 {
		_, _ = fmt.Fprintln(w, d.Theme.ErrorCard("Sweep finished with failures", summary...))
		if err := report.Err(); err != nil {
			return err
		}
		return fmt.Errorf("%w: %d tree(s) did not verify", project.ErrSweepFailed, len(unverified))
	}

	_, _ = fmt.Fprintln(w, d.Theme.SuccessCard("Sweep finished", summary...))
	return nil
}

// verifySweep checks every generated tree and returns the slugs of those
// with problems.
func verifySweep(ctx context.Context, w io.Writer, d *Dependencies, report *project.SweepReport) []string {
	var bad []string
	for _, res := range report.Results {
		if res.Err != nil {
			continue
		}
		r, err := d.Checker.Check(ctx, res.Destination)
		if err != nil {
			bad = append(bad, res.Selection.Slug())
			_, _ = fmt.Fprintln(w, d.Theme.Error.Render("✗")+" "+res.Selection.Slug()+": "+err.Error())
			continue
		}
		if !r.Passed() {
			bad = append(bad, res.Selection.Slug())
			printReport(w, d.Theme, r)
		}
	}
	return bad
}
