package api

import (
	"net/http"

	"git.sr.ht/~jakintosh/taskpad/internal/service"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginUser is the user shape the login response carries. The upstream
// client reads both `id` and `user_id`, so the id is duplicated.
type LoginUser struct {
	service.User
	UserID int64 `json:"user_id"`
}

type LoginResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    LoginUser `json:"user"`
}

func (a *API) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if ok := decodeRequest(&req, w, r); !ok {
			return
		}

		token, user, err := a.service.Login(req.Email, req.Password)
		if err != nil {
			writeError(w, r, err)
			return
		}

		response := LoginResponse{
			Message: "Login successful",
			Token:   token.Encoded(),
			User: LoginUser{
				User:   *user,
				UserID: user.ID,
			},
		}
		returnJson(&response, w)
	}
}
