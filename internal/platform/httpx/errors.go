package httpx

import (
	"errors"
	"net/http"

	"github.com/doylio/eros-server/internal/shared"
)

// RespondError maps domain errors to HTTP responses using RFC7807.
//
// Credential failures stay a bare 400 so the response never reveals whether
// the username or the password was wrong. Role failures map to 401, not 403:
// existing clients depend on that status.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", "")
	case errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusBadRequest, "Bad Request", "")
	case errors.Is(err, shared.ErrValidation),
		errors.Is(err, shared.ErrDuplicate):
		Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, shared.ErrUnauthorized),
		errors.Is(err, shared.ErrInvalidToken),
		errors.Is(err, shared.ErrSuperuserRequired):
		Problem(w, http.StatusUnauthorized, "Unauthorized", "")
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
