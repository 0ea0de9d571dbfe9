package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/modu-ai/scaffold/internal/core/selection"
	"github.com/modu-ai/scaffold/internal/ui"
	"github.com/modu-ai/scaffold/pkg/models"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List template families and the database compatibility matrix",
	Long: `List the selection axes and which database libraries can drive which
engines. With --selections, print every valid selection, one per line, in
the family_engine_library form used by scaffold sweep.`,
	Args: cobra.NoArgs,
	RunE: runListCmd,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().Bool("selections", false, "Print every valid selection, one per line")
}

var familyDescriptions = map[models.TemplateFamily]string{
	models.FamilyAPIService: "HTTP JSON API",
	models.FamilyWebApp:     "Server-rendered pages with static assets",
	models.FamilyCLITool:    "Command-line program",
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	d, err := requireDeps()
	if err != nil {
		return err
	}
	if getBoolFlag(cmd, "selections") {
		printSelections(cmd.OutOrStdout())
		return nil
	}
	printCatalog(cmd.OutOrStdout(), d.Theme)
	return nil
}

func printSelections(w io.Writer) {
	for _, sel := range selection.All() {
		_, _ = fmt.Fprintln(w, sel.Slug())
	}
}

func printCatalog(w io.Writer, theme *ui.Theme) {
	families := make([][]string, 0, len(models.AllTemplateFamilies()))
	for _, f := range models.AllTemplateFamilies() {
		db := "yes"
		if !selection.SupportsDatabase(f) {
			db = "no"
		}
		families = append(families, []string{string(f), db, familyDescriptions[f]})
	}

	libs := models.AllDBLibraries()
	headers := []string{"ENGINE \\ LIBRARY"}
	for _, l := range libs {
		headers = append(headers, string(l))
	}
	matrix := make([][]string, 0, len(models.AllDBEngines()))
	for _, e := range models.AllDBEngines() {
		row := []string{string(e)}
		for _, l := range libs {
			mark := ""
			if selection.Validate(models.Selection{TemplateFamily: models.FamilyAPIService, DBEngine: e, DBLibrary: l}) == nil {
				mark = "✓"
			}
			row = append(row, mark)
		}
		matrix = append(matrix, row)
	}

	_, _ = fmt.Fprintln(w, theme.Title.Render("Template families"))
	_, _ = fmt.Fprintln(w, theme.Table([]string{"FAMILY", "DATABASE", "DESCRIPTION"}, families))
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, theme.Title.Render("Database compatibility"))
	_, _ = fmt.Fprintln(w, theme.Table(headers, matrix))
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, theme.Muted.Render(fmt.Sprintf("%d valid selections", len(selection.All()))))
}
