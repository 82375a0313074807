package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/UsersAPI_Go/internal/domain"
	"github.com/osse101/UsersAPI_Go/internal/dto"
)

func TestIsValidLogin(t *testing.T) {
	valid := []string{"a", "Z", "0", "johnDoe375", "ABCxyz123"}
	for _, login := range valid {
		assert.True(t, IsValidLogin(login), login)
	}

	invalid := []string{"", " ", "john doe", "john_doe", "john-doe", "jöhn", "john!", "a.b", "x\n"}
	for _, login := range invalid {
		assert.False(t, IsValidLogin(login), login)
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	v := New()

	err := v.ValidateStruct(dto.UserToCreateDto{Login: "jdoe", FirstName: "John", LastName: "Doe"})

	assert.NoError(t, err)
}

func TestValidateStruct_AggregatesAllFields(t *testing.T) {
	v := New()

	err := v.ValidateStruct(dto.UserToUpdateDto{Login: "bad login"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidationFailed))

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{domain.ErrMsgLoginCharset}, verr.Fields["Login"])
	assert.Equal(t, []string{domain.ErrMsgFieldRequired}, verr.Fields["FirstName"])
	assert.Equal(t, []string{domain.ErrMsgFieldRequired}, verr.Fields["LastName"])
}

func TestValidateStruct_EmptyLoginIsRequiredNotCharset(t *testing.T) {
	v := New()

	err := v.ValidateStruct(dto.UserToCreateDto{FirstName: "John", LastName: "Doe"})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{domain.ErrMsgFieldRequired}, verr.Fields["Login"])
	assert.Len(t, verr.Fields, 1)
}

func TestFormatValidationError_PassesThroughOtherErrors(t *testing.T) {
	other := errors.New("boom")

	assert.Same(t, other, FormatValidationError(other))
}
