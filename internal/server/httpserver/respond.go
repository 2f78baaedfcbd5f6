package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/talentauth/internal/common"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Error codes in response bodies.
const (
	CodeInvalidInput       = "invalid_input"
	CodeDuplicateIdentity  = "duplicate_identity"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUnauthenticated    = "unauthenticated"
	CodeServerError        = "server_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// classify maps an error to its status, code and client-facing message.
// Anything outside the taxonomy is a server error and its text is never
// returned to the client.
func classify(err error) (int, errorResponse) {
	var inputErr *common.InputError
	switch {
	case errors.As(err, &inputErr):
		return http.StatusBadRequest, errorResponse{CodeInvalidInput, inputErr.Reason}
	case errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest, errorResponse{CodeInvalidInput, "Invalid input"}
	case errors.Is(err, common.ErrDuplicateIdentity):
		return http.StatusConflict, errorResponse{CodeDuplicateIdentity, "User already exists"}
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusBadRequest, errorResponse{CodeInvalidCredentials, "Invalid credentials"}
	case errors.Is(err, common.ErrUnauthenticated):
		return http.StatusUnauthorized, errorResponse{CodeUnauthenticated, "Not authenticated"}
	default:
		return http.StatusInternalServerError, errorResponse{CodeServerError, "Server error"}
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, body := classify(err)
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return common.NewInputError("Request body too large")
		}
		return common.NewInputError("Malformed request body")
	}
	return nil
}
