package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_AddKeepsEveryMessage(t *testing.T) {
	verr := NewValidationError()
	verr.Add("Login", ErrMsgFieldRequired)
	verr.Add("Login", ErrMsgLoginCharset)
	verr.Add("LastName", ErrMsgFieldRequired)

	assert.Equal(t, []string{ErrMsgFieldRequired, ErrMsgLoginCharset}, verr.Fields["Login"])
	assert.Equal(t, []string{ErrMsgFieldRequired}, verr.Fields["LastName"])
}

func TestValidationError_ZeroValueAdd(t *testing.T) {
	var verr ValidationError
	verr.Add("Login", ErrMsgFieldRequired)

	assert.True(t, verr.HasErrors())
}

func TestValidationError_AccumulatesPerField(t *testing.T) {
	verr := NewValidationError()
	verr.Add("Login", ErrMsgFieldRequired)
	verr.Add("Login", ErrMsgLoginCharset)
	verr.Add("FirstName", ErrMsgFieldRequired)

	assert.Equal(t, []string{ErrMsgFieldRequired, ErrMsgLoginCharset}, verr.Fields["Login"])
	assert.Len(t, verr.Fields["FirstName"], 1)
}

func TestValidationError_OrNil(t *testing.T) {
	assert.NoError(t, NewValidationError().OrNil())

	var nilErr *ValidationError
	assert.False(t, nilErr.HasErrors())

	verr := NewValidationError()
	verr.Add("Login", ErrMsgFieldRequired)
	assert.Error(t, verr.OrNil())
}

func TestValidationError_ErrorIsSortedAndMatchesSentinel(t *testing.T) {
	verr := NewValidationError()
	verr.Add("Login", ErrMsgLoginCharset)
	verr.Add("FirstName", ErrMsgFieldRequired)

	assert.Equal(t,
		"validation failed: FirstName: This field is required, Login: Login should contain only letters or digits",
		verr.Error())

	wrapped := fmt.Errorf("create: %w", verr)
	assert.ErrorIs(t, wrapped, ErrValidationFailed)
	assert.NotErrorIs(t, wrapped, ErrUserNotFound)

	var target *ValidationError
	require.True(t, errors.As(wrapped, &target))
	assert.Same(t, verr, target)
}

func TestSentinelWrapping(t *testing.T) {
	err := fmt.Errorf("%w: %s", ErrUserNotFound, "abc")

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Contains(t, err.Error(), ErrMsgUserNotFound)
}
