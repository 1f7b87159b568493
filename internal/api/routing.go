package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router builds the full route table. Every /auth and /tasks route sits
// behind RequireAuth; the service layer re-checks ownership on top of
// that. Bulk and search routes are registered before the {id}/{userId}
// routes so the literal path segments win the match.
func (a *API) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", a.Home()).Methods("GET")
	r.HandleFunc("/register", a.Register()).Methods("POST")
	r.HandleFunc("/login", a.Login()).Methods("POST")

	guarded := r.PathPrefix("/").Subrouter()
	guarded.Use(a.RequireAuth)
	guarded.HandleFunc("/auth/user", a.AuthUser()).Methods("GET")
	guarded.HandleFunc("/tasks", a.AddTask()).Methods("POST")
	guarded.HandleFunc("/tasks/search/{userId}", a.SearchTasks()).Methods("GET")
	guarded.HandleFunc("/tasks/paginate/{userId}", a.PaginateTasks()).Methods("GET")
	guarded.HandleFunc("/tasks/complete-all/{userId}", a.CompleteAll()).Methods("PUT")
	guarded.HandleFunc("/tasks/delete-all/{userId}", a.DeleteAll()).Methods("DELETE")
	guarded.HandleFunc("/tasks/{userId}", a.ListTasks()).Methods("GET")
	guarded.HandleFunc("/tasks/{id}", a.UpdateTask()).Methods("PUT")
	guarded.HandleFunc("/tasks/{id}", a.DeleteTask()).Methods("DELETE")

	return a.withCORS(r)
}

func (a *API) Home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Welcome to the To-Do API"))
	}
}

// withCORS reproduces the upstream CORS policy: one allowed origin, the
// four verbs the API uses, and the Content-Type/Authorization headers.
// Preflight requests are answered here, before routing.
func (a *API) withCORS(next http.Handler) http.Handler {
	if a.corsOrigin == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", a.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
