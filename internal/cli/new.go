package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modu-ai/scaffold/internal/cli/wizard"
	"github.com/modu-ai/scaffold/internal/config"
	"github.com/modu-ai/scaffold/internal/core/materialize"
	"github.com/modu-ai/scaffold/internal/core/project"
	"github.com/modu-ai/scaffold/internal/core/selection"
	"github.com/modu-ai/scaffold/internal/ui"
	"github.com/modu-ai/scaffold/pkg/models"
)

var newCmd = &cobra.Command{
	Use:   "new [project-name]",
	Short: "Generate a new project",
	Long: `Generate a new project from a template family, database engine and
database library.

Missing choices are asked interactively when running in a terminal. With
--non-interactive, or when output is not a terminal, they are taken from the
config file defaults instead.

Examples:
  scaffold new orders --template api-service --db sqlite --lib sqlx
  scaffold new site --template web-app --db postgres --lib gorm --module github.com/acme/site
  scaffold new tool --template cli-tool --non-interactive`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: validateNewFlags,
	RunE:    runNewCmd,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().String("template", "", "Template family: api-service, web-app, cli-tool")
	newCmd.Flags().String("db", "", "Database engine: none, sqlite, mysql, postgres, mssql, mongodb")
	newCmd.Flags().String("lib", "", "Database library: none, stdlib, sqlx, gorm, mongodb")
	newCmd.Flags().String("locale", "", "Project locale as a BCP 47 tag (default: en)")
	newCmd.Flags().String("module", "", "Go module path (default: project name)")
	newCmd.Flags().String("dir", "", "Destination directory (default: <output_dir>/<project-name>)")
	newCmd.Flags().Bool("force", false, "Replace a non-empty destination (the old tree is moved to a backup)")
	newCmd.Flags().Bool("non-interactive", false, "Skip the interactive wizard; use flags and config defaults")
}

// newOptions are the inputs of scaffold new.
type newOptions struct {
	Name           string
	Template       string
	DB             string
	Lib            string
	Locale         string
	Module         string
	Dir            string
	Force          bool
	NonInteractive bool
}

// validateNewFlags rejects unknown axis values before anything runs.
func validateNewFlags(cmd *cobra.Command, _ []string) error {
	if v := getStringFlag(cmd, "template"); v != "" && !models.TemplateFamily(v).IsValid() {
		return fmt.Errorf("invalid --template value %q: must be one of: %s", v, joinValues(models.AllTemplateFamilies()))
	}
	if v := getStringFlag(cmd, "db"); v != "" && !models.DBEngine(v).IsValid() {
		return fmt.Errorf("invalid --db value %q: must be one of: %s", v, joinValues(models.AllDBEngines()))
	}
	if v := getStringFlag(cmd, "lib"); v != "" && !models.DBLibrary(v).IsValid() {
		return fmt.Errorf("invalid --lib value %q: must be one of: %s", v, joinValues(models.AllDBLibraries()))
	}
	return nil
}

func joinValues[T ~string](vals []T) string {
	s := make([]string, len(vals))
	for i, v := range vals {
		s[i] = string(v)
	}
	return strings.Join(s, ", ")
}

func runNewCmd(cmd *cobra.Command, args []string) error {
	opts := newOptions{
		Template:       getStringFlag(cmd, "template"),
		DB:             getStringFlag(cmd, "db"),
		Lib:            getStringFlag(cmd, "lib"),
		Locale:         getStringFlag(cmd, "locale"),
		Module:         getStringFlag(cmd, "module"),
		Dir:            getStringFlag(cmd, "dir"),
		Force:          getBoolFlag(cmd, "force"),
		NonInteractive: getBoolFlag(cmd, "non-interactive"),
	}
	if len(args) > 0 {
		opts.Name = args[0]
	}
	return runNew(cmd.Context(), cmd.OutOrStdout(), opts)
}

// runNew collects the selection, generates the project and prints a summary.
func runNew(ctx context.Context, w io.Writer, opts newOptions) error {
	d, err := requireDeps()
	if err != nil {
		return err
	}

	answers := wizard.WizardResult{
		ProjectName:    opts.Name,
		ModulePath:     opts.Module,
		Locale:         opts.Locale,
		TemplateFamily: opts.Template,
		DBEngine:       opts.DB,
		DBLibrary:      opts.Lib,
	}

	if opts.NonInteractive || d.Headless.IsHeadless() {
		if answers.ProjectName == "" {
			return errors.New("project name is required: pass it as an argument or run in a terminal")
		}
		fillDefaults(&answers, d.Config.Defaults)
	} else {
		res, err := wizard.RunWithDefaults(answers)
		if err != nil {
			if errors.Is(err, wizard.ErrCancelled) {
				_, _ = fmt.Fprintln(w, "Cancelled.")
				return nil
			}
			return err
		}
		answers = *res
	}

	sel := answers.Selection()
	pc := answers.ProjectContext()

	dest := opts.Dir
	if dest == "" {
		dest = filepath.Join(expandHome(d.Config.OutputDir), pc.ProjectName)
	}

	d.Logger.Debug("generating project", "selection", sel.String(), "project", pc.ProjectName, "destination", dest)

	spinner := ui.NewProgress(d.Theme, d.Headless, w).Spinner(fmt.Sprintf("Generating %s (%s)", pc.ProjectName, sel))
	res, err := d.Generator.Generate(ctx, project.GenerateOptions{
		Selection:   sel,
		Context:     pc,
		Destination: dest,
		Overwrite:   opts.Force,
	})
	spinner.Stop()
	if err != nil {
		if errors.Is(err, materialize.ErrDestinationConflict) {
			return fmt.Errorf("%w\nuse --force to move the existing directory aside, or --dir to choose another", err)
		}
		return err
	}

	printGenerated(w, d.Theme, pc, res)
	return nil
}

// fillDefaults completes the answers from the configured defaults. Database
// defaults are only used when they fit the chosen family and engine.
func fillDefaults(a *wizard.WizardResult, def config.Defaults) {
	if a.TemplateFamily == "" {
		a.TemplateFamily = string(def.Template)
	}
	if a.Locale == "" {
		a.Locale = def.Locale
	}

	if selection.SupportsDatabase(models.TemplateFamily(a.TemplateFamily)) {
		if a.DBEngine == "" {
			a.DBEngine = string(def.DBEngine)
		}
		libs := selection.LibrariesFor(models.DBEngine(a.DBEngine))
		if a.DBLibrary == "" && slices.Contains(libs, def.DBLibrary) {
			a.DBLibrary = string(def.DBLibrary)
		}
		if a.DBLibrary == "" && len(libs) > 0 {
			a.DBLibrary = string(libs[0])
		}
	}

	wizard.Complete(a)
}

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func printGenerated(w io.Writer, theme *ui.Theme, pc models.ProjectContext, res *project.GenerateResult) {
	details := []string{
		theme.KeyValue("template ", res.Selection.String()),
		theme.KeyValue("module   ", pc.EffectiveModulePath()),
		theme.KeyValue("location ", res.Destination),
		theme.KeyValue("files    ", strconv.Itoa(len(res.Files))),
	}
	if res.BackupPath != "" {
		details = append(details, theme.KeyValue("backup   ", res.BackupPath))
	}

	_, _ = fmt.Fprintln(w, theme.SuccessCard("Created "+pc.ProjectName, details...))
	_, _ = fmt.Fprintln(w, theme.RenderMarkdown(nextSteps(res), 80))
}

// nextSteps returns markdown instructions derived from the generated files.
func nextSteps(res *project.GenerateResult) string {
	has := func(name string) bool { return slices.Contains(res.Files, name) }

	run := "go run ."
	for _, f := range res.Files {
		if dir, ok := strings.CutSuffix(f, "/main.go"); ok && strings.HasPrefix(dir, "cmd/") {
			run = "go run ./" + dir
			break
		}
	}

	var b strings.Builder
	b.WriteString("## Next steps\n\n```sh\n")
	fmt.Fprintf(&b, "cd %s\n", res.Destination)
	b.WriteString("go mod tidy\n")
	if has(".env.example") {
		b.WriteString("cp .env.example .env\n")
	}
	if has(path.Join("scripts", "reset-db.sh")) {
		b.WriteString("./scripts/reset-db.sh\n")
	}
	b.WriteString(run + "\n")
	b.WriteString("```\n\nRun `go test ./...` to run the generated tests.\n")
	return b.String()
}
