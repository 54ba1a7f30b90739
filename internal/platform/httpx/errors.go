package httpx

import (
	"errors"
	"net/http"

	"github.com/pinkbella/storefront/internal/shared"
)

// RespondError maps the typed error taxonomy to HTTP responses. Each error
// kind gets its own status class; nothing is coerced to a generic failure
// when a more specific kind is known.
func RespondError(w http.ResponseWriter, err error) {
	var (
		validation  *shared.ValidationError
		notFound    *shared.NotFoundError
		conflict    *shared.ConflictError
		dependency  *shared.DependencyError
		transaction *shared.TransactionError
	)
	switch {
	case errors.As(err, &validation):
		Problem(w, http.StatusBadRequest, "Invalid Request", validation.Reason)
	case errors.As(err, &notFound):
		Problem(w, http.StatusNotFound, "Not Found", notFound.Error())
	case errors.As(err, &conflict):
		Problem(w, http.StatusConflict, "Conflict", conflict.Error())
	case errors.As(err, &dependency):
		Problem(w, http.StatusBadGateway, "Upstream Failure", dependency.Error())
	case errors.As(err, &transaction):
		Problem(w, http.StatusInternalServerError, "Internal Error", "transaction failed")
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
