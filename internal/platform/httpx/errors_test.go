package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pinkbella/storefront/internal/shared"
)

func respond(t *testing.T, err error) (int, ProblemDetail) {
	t.Helper()
	rec := httptest.NewRecorder()
	RespondError(rec, err)
	var pd ProblemDetail
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&pd))
	return rec.Code, pd
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		title  string
	}{
		{"validation", shared.Validationf("quantity must be positive"), http.StatusBadRequest, "Invalid Request"},
		{"not found", shared.NotFound("order", 7), http.StatusNotFound, "Not Found"},
		{"conflict", shared.InsufficientStock(100, 1, 3), http.StatusConflict, "Conflict"},
		{"dependency", shared.Dependency("carrier", "request failed", errors.New("boom")), http.StatusBadGateway, "Upstream Failure"},
		{"transaction", &shared.TransactionError{Err: errors.New("boom")}, http.StatusInternalServerError, "Internal Error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Internal Error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, pd := respond(t, tc.err)
			require.Equal(t, tc.status, status)
			require.Equal(t, tc.title, pd.Title)
			require.Equal(t, tc.status, pd.Status)
		})
	}
}

func TestRespondErrorUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("quote shipping: %w", shared.Dependency("carrier", "no shipping options", nil))
	status, pd := respond(t, wrapped)
	require.Equal(t, http.StatusBadGateway, status)
	require.Contains(t, pd.Detail, "no shipping options")
}

func TestRespondErrorHidesTransactionCause(t *testing.T) {
	status, pd := respond(t, &shared.TransactionError{Err: errors.New("pq: secret dsn detail")})
	require.Equal(t, http.StatusInternalServerError, status)
	require.NotContains(t, pd.Detail, "secret")
}
