package selection

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/mod/module"

	"github.com/modu-ai/scaffold/pkg/models"
)

// projectNamePattern keeps names usable as directory names on every
// platform and as the last element of a Go module path.
var projectNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9._-]*$`)

// windowsReserved are device names Windows refuses as file names.
var windowsReserved = []string{
	"con", "prn", "aux", "nul",
	"com1", "com2", "com3", "com4", "com5", "com6", "com7", "com8", "com9",
	"lpt1", "lpt2", "lpt3", "lpt4", "lpt5", "lpt6", "lpt7", "lpt8", "lpt9",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("projectname", func(fl validator.FieldLevel) bool {
		return IsValidProjectName(fl.Field().String())
	})
	_ = v.RegisterValidation("modulepath", func(fl validator.FieldLevel) bool {
		return module.CheckImportPath(fl.Field().String()) == nil
	})
	return v
}

// Validate checks a selection against the compatibility rules. It returns
// nil or an *IncompatibleSelectionError.
func Validate(sel models.Selection) error {
	reject := func(format string, args ...any) error {
		return &IncompatibleSelectionError{Selection: sel, Reason: fmt.Sprintf(format, args...)}
	}

	if !sel.TemplateFamily.IsValid() {
		return reject("unknown template family %q", sel.TemplateFamily)
	}
	if !sel.DBEngine.IsValid() {
		return reject("unknown database engine %q", sel.DBEngine)
	}
	if !sel.DBLibrary.IsValid() {
		return reject("unknown database library %q", sel.DBLibrary)
	}

	if !SupportsDatabase(sel.TemplateFamily) && sel.HasDatabase() {
		return reject("template family %s has no database integration point; engine and library must be none", sel.TemplateFamily)
	}

	engines := compatibility[sel.DBLibrary]
	if slices.Contains(engines, sel.DBEngine) {
		return nil
	}
	if sel.DBLibrary == models.LibraryNone {
		return reject("database engine %s requires an access library", sel.DBEngine)
	}
	names := make([]string, len(engines))
	for i, e := range engines {
		names[i] = string(e)
	}
	return reject("library %s does not support database engine %s (supported: %s)",
		sel.DBLibrary, sel.DBEngine, strings.Join(names, ", "))
}

// All returns every valid selection in axis display order.
func All() []models.Selection {
	var all []models.Selection
	for _, f := range models.AllTemplateFamilies() {
		for _, e := range models.AllDBEngines() {
			for _, l := range models.AllDBLibraries() {
				sel := models.Selection{TemplateFamily: f, DBEngine: e, DBLibrary: l}
				if Validate(sel) == nil {
					all = append(all, sel)
				}
			}
		}
	}
	return all
}

// IsValidProjectName reports whether name is a usable project name.
func IsValidProjectName(name string) bool {
	if !projectNamePattern.MatchString(name) || strings.HasSuffix(name, ".") {
		return false
	}
	stem, _, _ := strings.Cut(strings.ToLower(name), ".")
	return !slices.Contains(windowsReserved, stem)
}

// ValidateContext checks the caller-supplied project context. It returns nil
// or an *InvalidContextError.
func ValidateContext(pc models.ProjectContext) error {
	err := validate.Struct(pc)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidContext, err)
	}

	out := &InvalidContextError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
			Value:   fe.Value(),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "projectname":
		return "must start with a letter and contain only letters, digits, '.', '-' or '_'"
	case "modulepath":
		return "must be a valid Go module path"
	case "bcp47_language_tag":
		return "must be a BCP 47 language tag such as en or zh-CN"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
