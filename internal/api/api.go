// Package api exposes the taskpad REST surface and its access guard.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"git.sr.ht/~jakintosh/taskpad/internal/revocation"
	"git.sr.ht/~jakintosh/taskpad/internal/service"
	"git.sr.ht/~jakintosh/taskpad/internal/tokens"
)

type API struct {
	service    *service.Service
	verifier   tokens.Verifier
	denylist   *revocation.Denylist
	corsOrigin string
}

// New builds the API. denylist may be nil when no deny-list file is
// configured; corsOrigin may be empty to disable CORS headers.
func New(
	svc *service.Service,
	verifier tokens.Verifier,
	denylist *revocation.Denylist,
	corsOrigin string,
) *API {
	return &API{
		service:    svc,
		verifier:   verifier,
		denylist:   denylist,
		corsOrigin: corsOrigin,
	}
}

func decodeRequest[T any](req *T, w http.ResponseWriter, r *http.Request) bool {
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logApiErr(r, "bad json request")
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func returnJson(data any, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

func returnJsonStatus(data any, status int, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logErr("failed to encode response: %v", err)
	}
}

type messageBody struct {
	Message string `json:"message"`
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	returnJsonStatus(&messageBody{Message: message}, status, w)
}

// writeError maps service errors onto client-visible status codes.
// Anything unrecognized is logged server-side and collapsed to a generic
// 500 so internals never leak.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeMessage(w, http.StatusBadRequest, "Invalid input data")
	case errors.Is(err, service.ErrEmailTaken):
		writeMessage(w, http.StatusBadRequest, "Email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "Unauthorized access")
	default:
		logApiErr(r, err.Error())
		writeMessage(w, http.StatusInternalServerError, "Server error")
	}
}

func logApiErr(r *http.Request, msg string) {
	log.Printf("%s %s: %s\n", r.Method, r.RequestURI, msg)
}

func logErr(format string, v ...any) {
	log.Printf(format+"\n", v...)
}
