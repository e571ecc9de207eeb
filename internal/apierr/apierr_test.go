package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusCodes(t *testing.T) {
	t.Parallel()

	require.Equal(t, http.StatusBadRequest, MalformedRequest("m").Status)
	require.Equal(t, http.StatusUnauthorized, AuthenticationFailure("m").Status)
	require.Equal(t, http.StatusForbidden, NotLoggedIn().Status)
	require.Equal(t, http.StatusInternalServerError, Persistence(errors.New("down")).Status)
}

func TestCauseStaysInternal(t *testing.T) {
	t.Parallel()

	cause := errors.New("driver: connection refused")
	err := Persistence(cause)

	// The client-visible message never carries driver detail.
	require.Equal(t, "Internal error.", err.Error())
	require.ErrorIs(t, err, cause)
}

func TestUnwrapThroughWrapping(t *testing.T) {
	t.Parallel()

	inner := AuthenticationFailure("Authentication failed.")
	wrapped := fmt.Errorf("handle login: %w", inner)

	var apiErr *Error
	require.True(t, errors.As(wrapped, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
}
