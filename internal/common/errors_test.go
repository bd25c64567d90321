package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	cause := fmt.Errorf("%w: manifest: connection refused", ErrLoadTimeout)
	err := NewUserError("could not load the collection schedule", cause)

	assert.Equal(t, "could not load the collection schedule: "+cause.Error(), err.Error())
	assert.ErrorIs(t, err, ErrLoadTimeout, "sentinels must stay reachable through the wrap")

	var userErr *UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, "could not load the collection schedule", userErr.UserMessage)
	assert.Equal(t, cause, userErr.Unwrap())
}

func TestUserError_NoCause(t *testing.T) {
	err := NewUserError("nothing matched the filter", nil)
	assert.Equal(t, "nothing matched the filter", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}
