package http

import (
	"errors"
	"net/http"

	"github.com/dkotelnikov/user-service/internal/service"
	"github.com/dkotelnikov/user-service/internal/store"
	"github.com/dkotelnikov/user-service/internal/utils"
	"github.com/dkotelnikov/user-service/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:        http.StatusBadRequest,
	service.ErrValidationNoUserIDProvided: http.StatusBadRequest,
	service.ErrVersionIsNotSpecified:      http.StatusBadRequest,

	store.ErrUserNotFound:          http.StatusNotFound,
	store.ErrUsernameAlreadyExists: http.StatusConflict,
	store.ErrEmailAlreadyExists:    http.StatusConflict,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError maps err to an HTTP status and writes the JSON error
// body. Internal failures get a generic message so that driver and SQL
// details never reach the client.
func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFromError(err)

	message := err.Error()
	switch {
	case status == http.StatusInternalServerError:
		message = "internal server error"
	case errors.Is(err, store.ErrUserNotFound):
		// canonical body, independent of any context wrapped around the sentinel
		message = "User not found"
	}

	writeError(w, status, message)
}

func writeError(w http.ResponseWriter, status int, message string) {
	utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}
