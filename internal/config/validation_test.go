package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefaultConfig(t *testing.T) {
	assert.NoError(t, Validate(NewDefaultConfig()))
}

func TestValidateReportsConfigKeys(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Defaults.DBEngine = "oracle"
	cfg.Log.Level = "loud"
	cfg.Defaults.Locale = "not a tag"

	err := Validate(cfg)
	require.Error(t, err)

	var verrs *ValidationErrors
	require.True(t, errors.As(err, &verrs))

	fields := make(map[string]string)
	for _, ve := range verrs.Errors {
		fields[ve.Field] = ve.Message
		assert.ErrorIs(t, &ve, ErrInvalidConfig)
	}
	assert.Contains(t, fields, "defaults.db_engine")
	assert.Contains(t, fields, "log.level")
	assert.Contains(t, fields, "defaults.locale")
	assert.Equal(t, "must be one of: debug, info, warn, error", fields["log.level"])
}

func TestValidationErrorsMessage(t *testing.T) {
	err := &ValidationErrors{Errors: []ValidationError{
		{Field: "sweep.jobs", Message: "must be at least 0", Value: -1, Wrapped: ErrInvalidConfig},
	}}
	assert.Equal(t, `validation failed with 1 error(s): validation error: field "sweep.jobs": must be at least 0 (got: -1)`, err.Error())
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, "validation: no errors", (&ValidationErrors{}).Error())
}
