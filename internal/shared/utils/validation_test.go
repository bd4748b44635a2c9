package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusvoice/internal/shared/errors"
)

type noticeForm struct {
	Title    string `json:"title" validate:"required,max=10"`
	Priority string `json:"priority" validate:"omitempty,oneof=low high"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(noticeForm{Title: "Water"}))

	err := ValidateStruct(noticeForm{Priority: "urgent"})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	appErr := errors.GetAppError(err)
	assert.Contains(t, appErr.Details, "title is required")
	assert.Contains(t, appErr.Details, "priority must be one of [low high]")
}
