package validation_test

import (
	"testing"

	"github.com/architect/backoffice/internal/common/validation"
	"github.com/stretchr/testify/assert"
)

func TestValidateStringRange(t *testing.T) {
	assert.NoError(t, validation.ValidateStringRange("12345678", 8, 30))
	assert.Error(t, validation.ValidateStringRange("1234", 8, 30))
	assert.Error(t, validation.ValidateStringRange("", 1, 5))
}

func TestValidateDocumentNumber(t *testing.T) {
	assert.NoError(t, validation.ValidateDocumentNumber("dni", "12345678"))
	assert.Error(t, validation.ValidateDocumentNumber("dni", "1234"), "too short")
	assert.Error(t, validation.ValidateDocumentNumber("dni", "1234567a"), "not numeric")

	assert.NoError(t, validation.ValidateDocumentNumber("ruc", "20123456789"))
	assert.Error(t, validation.ValidateDocumentNumber("ruc", "20123"), "too short")
	assert.Error(t, validation.ValidateDocumentNumber("ruc", "201234567890"), "too long")

	// Unknown document types fall back to a length window
	assert.NoError(t, validation.ValidateDocumentNumber("passport", "AB1234567"))
	assert.Error(t, validation.ValidateDocumentNumber("passport", "AB1"))
}

func TestValidateHexColor(t *testing.T) {
	assert.NoError(t, validation.ValidateHexColor("#336699"))
	assert.NoError(t, validation.ValidateHexColor(""), "empty keeps the column default")
	assert.Error(t, validation.ValidateHexColor("336699"), "missing #")
	assert.Error(t, validation.ValidateHexColor("#33669g"))
}
