package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/modu-ai/scaffold/pkg/models"
)

// Brand colors for dark terminals; light variants are set in newWizardTheme.
const (
	ColorPrimary   = "#DA7756"
	ColorSecondary = "#F4B183"
	ColorSuccess   = "#10B981"
	ColorError     = "#EF4444"
	ColorText      = "#F9FAFB"
	ColorMuted     = "#9CA3AF"
	ColorBorder    = "#4B5563"
)

// Run asks the questions in order, starting from the answers in preset,
// and returns the completed result.
// Each question runs as its own independent huh.Form to avoid the huh v0.8.x
// YOffset scroll bug that occurs when multiple groups share a single viewport.
func Run(questions []Question, preset WizardResult) (*WizardResult, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	result := preset
	locale := models.NormalizeLocale(preset.Locale)
	theme := newWizardTheme()

	for i := range questions {
		q := &questions[i]

		if q.Condition != nil && !q.Condition(&result) {
			continue
		}

		g, err := buildQuestionGroup(q, &result, &locale)
		if err != nil {
			return nil, err
		}
		form := huh.NewForm(g).
			WithTheme(theme).
			WithAccessible(false)

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, ErrCancelled
			}
			return nil, fmt.Errorf("wizard error: %w", err)
		}
	}

	Complete(&result)
	return &result, nil
}

// RunWithDefaults asks whatever preset is missing. It returns preset,
// completed, without prompting when nothing is missing.
func RunWithDefaults(preset WizardResult) (*WizardResult, error) {
	questions := DefaultQuestions(preset)
	if len(questions) == 0 {
		Complete(&preset)
		return &preset, nil
	}
	return Run(questions, preset)
}

// buildQuestionGroup creates a huh.Group for a single question.
func buildQuestionGroup(q *Question, result *WizardResult, locale *string) (*huh.Group, error) {
	var field huh.Field

	switch q.Type {
	case QuestionTypeSelect:
		sel, err := buildSelectField(q, result, locale)
		if err != nil {
			return nil, err
		}
		field = sel
	case QuestionTypeInput:
		field = buildInputField(q, result, locale)
	}

	return huh.NewGroup(field), nil
}

// localizedOptions returns the question's options in the current locale,
// narrowed by its filter.
func localizedOptions(q *Question, result *WizardResult, locale string) []Option {
	lq := GetLocalizedQuestion(q, locale)
	if q.Filter != nil {
		return q.Filter(result, lq.Options)
	}
	return lq.Options
}

// buildSelectField creates a huh.Select field for a select-type question.
// Options are built eagerly; OptionsFunc in huh v0.8.x forces a fixed height
// that resets the viewport offset on every update.
func buildSelectField(q *Question, result *WizardResult, locale *string) (*huh.Select[string], error) {
	options := localizedOptions(q, result, *locale)
	if len(options) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoOptions, q.ID)
	}

	selected := options[0].Value
	for _, opt := range options {
		if opt.Value == q.Default {
			selected = q.Default
		}
	}

	opts := make([]huh.Option[string], len(options))
	for i, opt := range options {
		key := opt.Label
		if opt.Desc != "" {
			key = opt.Label + " - " + opt.Desc
		}
		opts[i] = huh.NewOption(key, opt.Value)
	}

	sel := huh.NewSelect[string]().
		TitleFunc(func() string {
			return GetLocalizedQuestion(q, *locale).Title
		}, locale).
		DescriptionFunc(func() string {
			return GetLocalizedQuestion(q, *locale).Description
		}, locale).
		Options(opts...).
		Value(&selected)

	sel.Validate(func(val string) error {
		saveAnswer(q.ID, val, result, locale)
		return nil
	})

	return sel, nil
}

// buildInputField creates a huh.Input field for an input-type question.
func buildInputField(q *Question, result *WizardResult, locale *string) *huh.Input {
	var value string

	inp := huh.NewInput().
		TitleFunc(func() string {
			return GetLocalizedQuestion(q, *locale).Title
		}, locale).
		DescriptionFunc(func() string {
			return GetLocalizedQuestion(q, *locale).Description
		}, locale).
		Value(&value)

	if q.Default != "" {
		inp = inp.Placeholder(q.Default)
	}

	return inp.Validate(func(val string) error {
		v, err := answerInput(q, val, *locale)
		if err != nil {
			return err
		}
		saveAnswer(q.ID, v, result, locale)
		return nil
	})
}

// answerInput applies the default, the required rule and the question's
// check to a raw input value.
func answerInput(q *Question, val, locale string) (string, error) {
	v := strings.TrimSpace(val)
	if v == "" {
		v = q.Default
	}
	if v == "" {
		if q.Required {
			return "", errors.New(GetUIStrings(locale).ErrorRequired)
		}
		return "", nil
	}
	if q.Check != nil {
		if err := q.Check(v); err != nil {
			return "", err
		}
	}
	return v, nil
}

// saveAnswer stores an answer in the result.
func saveAnswer(id, value string, result *WizardResult, locale *string) {
	switch id {
	case "locale":
		result.Locale = value
		*locale = value
	case "project_name":
		result.ProjectName = value
	case "module_path":
		result.ModulePath = value
	case "template":
		result.TemplateFamily = value
	case "db_engine":
		result.DBEngine = value
	case "db_library":
		result.DBLibrary = value
	}
}

// newWizardTheme creates a huh.Theme in the CLI palette.
func newWizardTheme() *huh.Theme {
	t := huh.ThemeBase()

	primary := lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: ColorPrimary}
	secondary := lipgloss.AdaptiveColor{Light: "#D97757", Dark: ColorSecondary}
	green := lipgloss.AdaptiveColor{Light: "#059669", Dark: ColorSuccess}
	red := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: ColorError}
	text := lipgloss.AdaptiveColor{Light: "#111827", Dark: ColorText}
	muted := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: ColorMuted}
	border := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: ColorBorder}

	t.Focused.Base = t.Focused.Base.BorderForeground(border)
	t.Focused.Card = t.Focused.Base
	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	t.Focused.NextIndicator = t.Focused.NextIndicator.Foreground(primary)
	t.Focused.PrevIndicator = t.Focused.PrevIndicator.Foreground(primary)
	t.Focused.Option = t.Focused.Option.Foreground(text)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(text)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(primary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(muted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(secondary)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Card = t.Blurred.Base
	t.Blurred.NextIndicator = lipgloss.NewStyle()
	t.Blurred.PrevIndicator = lipgloss.NewStyle()

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description

	return t
}
