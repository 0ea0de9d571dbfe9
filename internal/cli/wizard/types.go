// Package wizard provides an interactive huh-based wizard that collects the
// selection and project context for scaffold new.
package wizard

import (
	"errors"

	"github.com/modu-ai/scaffold/pkg/models"
)

// WizardResult holds the user's answers. Fields that were already known
// before the wizard started are carried over unchanged.
type WizardResult struct {
	// Project
	ProjectName string // Project name (required)
	ModulePath  string // Go module path (optional, defaults to ProjectName)
	Locale      string // Wizard and project language code: en, ko, ja, zh

	// Selection
	TemplateFamily string // api-service, web-app, cli-tool
	DBEngine       string // none, sqlite, mysql, postgres, mssql, mongodb
	DBLibrary      string // none, stdlib, sqlx, gorm, mongodb
}

// Selection returns the selection described by the answers.
func (r *WizardResult) Selection() models.Selection {
	return models.Selection{
		TemplateFamily: models.TemplateFamily(r.TemplateFamily),
		DBEngine:       models.DBEngine(r.DBEngine),
		DBLibrary:      models.DBLibrary(r.DBLibrary),
	}
}

// ProjectContext returns the project context described by the answers.
func (r *WizardResult) ProjectContext() models.ProjectContext {
	return models.ProjectContext{
		ProjectName: r.ProjectName,
		ModulePath:  r.ModulePath,
		Locale:      r.Locale,
	}
}

// QuestionType represents the type of wizard question.
type QuestionType int

const (
	// QuestionTypeSelect is a single-choice selection question.
	QuestionTypeSelect QuestionType = iota
	// QuestionTypeInput is a text input question.
	QuestionTypeInput
)

// Question defines a single wizard question.
type Question struct {
	ID          string                   // Unique identifier
	Type        QuestionType             // Select or Input
	Title       string                   // Question title
	Description string                   // Additional description
	Options     []Option                 // Options for select questions
	Default     string                   // Default value
	Required    bool                     // Whether the field is required
	Condition   func(*WizardResult) bool // Condition for showing this question

	// Filter narrows Options against earlier answers. It runs when the
	// question is reached.
	Filter func(*WizardResult, []Option) []Option

	// Check validates a non-empty input answer.
	Check func(string) error
}

// Option represents a selectable option.
type Option struct {
	Label string // Display label
	Value string // Actual value stored
	Desc  string // Optional description
}

// Error definitions for the wizard package.
var (
	// ErrCancelled is returned when the user cancels the wizard.
	ErrCancelled = errors.New("wizard cancelled by user")
	// ErrNoQuestions is returned when no questions are provided.
	ErrNoQuestions = errors.New("no questions provided")
	// ErrNoOptions is returned when filtering leaves a select question empty.
	ErrNoOptions = errors.New("no options available")
)
