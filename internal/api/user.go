package api

import (
	"net/http"

	"git.sr.ht/~jakintosh/taskpad/internal/service"
)

type AuthUserResponse struct {
	UserID int64        `json:"user_id"`
	User   service.User `json:"user"`
}

// AuthUser echoes the identity the access guard resolved from the
// bearer token.
func (a *API) AuthUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := identityFrom(r)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Authorization required")
			return
		}

		response := AuthUserResponse{
			UserID: token.UserID(),
			User: service.User{
				ID:    token.UserID(),
				Name:  token.Name(),
				Email: token.Email(),
			},
		}
		returnJson(&response, w)
	}
}
