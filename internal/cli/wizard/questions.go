package wizard

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/mod/module"

	"github.com/modu-ai/scaffold/internal/core/selection"
	"github.com/modu-ai/scaffold/pkg/models"
)

// defaultProjectName is offered when no project name was given.
const defaultProjectName = "my-service"

// DefaultQuestions returns the questions still needed to complete preset.
// Answers already present in preset are not asked again. The questions
// follow this order:
// 1. Wizard language
// 2. Project name
// 3. Module path (optional)
// 4. Template family
// 5. Database engine (families with a database only)
// 6. Database library (filtered by engine)
func DefaultQuestions(preset WizardResult) []Question {
	var qs []Question

	if preset.Locale == "" {
		qs = append(qs, Question{
			ID:          "locale",
			Type:        QuestionTypeSelect,
			Title:       "Select language",
			Description: "Used by this wizard and recorded in the generated project.",
			// Default option must be first to avoid the huh v0.8.0 viewport
			// YOffset bug that hides options above the selected one.
			Options: []Option{
				{Label: "English", Value: "en", Desc: "English"},
				{Label: "Korean (한국어)", Value: "ko", Desc: "Korean"},
				{Label: "Japanese (日本語)", Value: "ja", Desc: "Japanese"},
				{Label: "Chinese (中文)", Value: "zh", Desc: "Chinese"},
			},
			Default:  models.DefaultLocale,
			Required: true,
		})
	}

	if preset.ProjectName == "" {
		qs = append(qs, Question{
			ID:          "project_name",
			Type:        QuestionTypeInput,
			Title:       "Enter project name",
			Description: "Letters, digits, '.', '_' and '-'; must start with a letter.",
			Default:     defaultProjectName,
			Required:    true,
			Check:       checkProjectName,
		})
	}

	if preset.ModulePath == "" {
		qs = append(qs, Question{
			ID:          "module_path",
			Type:        QuestionTypeInput,
			Title:       "Enter Go module path",
			Description: "For example github.com/acme/orders. Press Enter to use the project name.",
			Check:       checkModulePath,
		})
	}

	if preset.TemplateFamily == "" {
		qs = append(qs, Question{
			ID:          "template",
			Type:        QuestionTypeSelect,
			Title:       "Select template",
			Description: "The kind of project to generate.",
			Options: []Option{
				{Label: "API service", Value: string(models.FamilyAPIService), Desc: "HTTP JSON API"},
				{Label: "Web app", Value: string(models.FamilyWebApp), Desc: "Server-rendered pages with static assets"},
				{Label: "CLI tool", Value: string(models.FamilyCLITool), Desc: "Command-line program, no database"},
			},
			Default:  string(models.FamilyAPIService),
			Required: true,
		})
	}

	if preset.DBEngine == "" {
		qs = append(qs, Question{
			ID:          "db_engine",
			Type:        QuestionTypeSelect,
			Title:       "Select database engine",
			Description: "The database the generated project connects to.",
			Options: []Option{
				{Label: "None", Value: string(models.EngineNone), Desc: "No database"},
				{Label: "SQLite", Value: string(models.EngineSQLite), Desc: "Embedded file database"},
				{Label: "MySQL", Value: string(models.EngineMySQL), Desc: "MySQL or MariaDB server"},
				{Label: "PostgreSQL", Value: string(models.EnginePostgres), Desc: "PostgreSQL server"},
				{Label: "SQL Server", Value: string(models.EngineMSSQL), Desc: "Microsoft SQL Server"},
				{Label: "MongoDB", Value: string(models.EngineMongoDB), Desc: "Document database"},
			},
			Default:   string(models.EngineNone),
			Required:  true,
			Condition: hasDatabase,
		})
	}

	if preset.DBLibrary == "" {
		qs = append(qs, Question{
			ID:          "db_library",
			Type:        QuestionTypeSelect,
			Title:       "Select database library",
			Description: "How the generated code talks to the database.",
			Options: []Option{
				{Label: "None", Value: string(models.LibraryNone), Desc: "No database access"},
				{Label: "database/sql", Value: string(models.LibraryStdlib), Desc: "Standard library only"},
				{Label: "sqlx", Value: string(models.LibrarySqlx), Desc: "database/sql extensions"},
				{Label: "GORM", Value: string(models.LibraryGorm), Desc: "ORM"},
				{Label: "MongoDB driver", Value: string(models.LibraryMongoDB), Desc: "Official Go driver"},
			},
			Required: true,
			Condition: func(r *WizardResult) bool {
				return hasDatabase(r) && r.DBEngine != string(models.EngineNone)
			},
			Filter: librariesForEngine,
		})
	}

	return qs
}

// hasDatabase reports whether the chosen family can have a database.
func hasDatabase(r *WizardResult) bool {
	return selection.SupportsDatabase(models.TemplateFamily(r.TemplateFamily))
}

// librariesForEngine keeps the options that can drive the chosen engine.
func librariesForEngine(r *WizardResult, opts []Option) []Option {
	libs := selection.LibrariesFor(models.DBEngine(r.DBEngine))
	return slices.DeleteFunc(slices.Clone(opts), func(o Option) bool {
		return !slices.Contains(libs, models.DBLibrary(o.Value))
	})
}

func checkProjectName(v string) error {
	if !selection.IsValidProjectName(v) {
		return fmt.Errorf("%q is not a valid project name", v)
	}
	return nil
}

func checkModulePath(v string) error {
	if err := module.CheckImportPath(v); err != nil {
		return errors.New("not a valid module path")
	}
	return nil
}

// Complete fills the selection axes the wizard skipped: families without a
// database get none/none, and engine none gets library none. Answers that
// were given are never changed.
func Complete(r *WizardResult) {
	if !hasDatabase(r) {
		if r.DBEngine == "" {
			r.DBEngine = string(models.EngineNone)
		}
		if r.DBLibrary == "" {
			r.DBLibrary = string(models.LibraryNone)
		}
	}
	if r.DBEngine == string(models.EngineNone) && r.DBLibrary == "" {
		r.DBLibrary = string(models.LibraryNone)
	}
	if r.Locale == "" {
		r.Locale = models.DefaultLocale
	}
}

// FilteredQuestions returns questions filtered by their conditions.
// Questions whose conditions return false are excluded.
func FilteredQuestions(questions []Question, result *WizardResult) []Question {
	filtered := make([]Question, 0, len(questions))
	for _, q := range questions {
		if q.Condition == nil || q.Condition(result) {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

// QuestionByID finds a question by its ID.
func QuestionByID(questions []Question, id string) *Question {
	for i := range questions {
		if questions[i].ID == id {
			return &questions[i]
		}
	}
	return nil
}
