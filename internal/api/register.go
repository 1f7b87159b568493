package api

import (
	"net/http"

	"git.sr.ht/~jakintosh/taskpad/internal/service"
)

type RegistrationRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegistrationResponse struct {
	Message string        `json:"message"`
	User    *service.User `json:"user"`
}

func (a *API) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegistrationRequest
		if ok := decodeRequest(&req, w, r); !ok {
			return
		}

		user, err := a.service.Register(req.Name, req.Email, req.Password)
		if err != nil {
			writeError(w, r, err)
			return
		}

		response := RegistrationResponse{
			Message: "User registered successfully",
			User:    user,
		}
		returnJsonStatus(&response, http.StatusCreated, w)
	}
}
