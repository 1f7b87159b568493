package api

import (
	"net/http"
	"strconv"

	"git.sr.ht/~jakintosh/taskpad/internal/service"
	"github.com/gorilla/mux"
)

type AddTaskRequest struct {
	Text    string `json:"text"`
	OwnerID int64  `json:"user_id"`
}

type UpdateTaskRequest struct {
	Completed bool `json:"completed"`
}

type TaskPageResponse struct {
	UserID int64          `json:"user_id"`
	Tasks  []service.Task `json:"tasks"`
}

func (a *API) ListTasks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := identityFrom(r)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Authorization required")
			return
		}
		ownerID, ok := pathID(w, r, "userId")
		if !ok {
			return
		}

		tasks, err := a.service.ListTasks(token.UserID(), ownerID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		returnJson(tasks, w)
	}
}

func (a *API) AddTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := identityFrom(r)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Authorization required")
			return
		}
		var req AddTaskRequest
		if ok := decodeRequest(&req, w, r); !ok {
			return
		}

		task, err := a.service.AddTask(token.UserID(), req.OwnerID, req.Text)
		if err != nil {
			writeError(w, r, err)
			return
		}
		returnJsonStatus(task, http.StatusCreated, w)
	}
}

// UpdateTask sets the completed flag. Updating an id that no longer
// exists succeeds with a null body, mirroring delete idempotency.
func (a *API) UpdateTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := identityFrom(r)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Authorization required")
			return
		}
		taskID, ok := pathID(w, r, "id")
		if !ok {
			return
		}
		var req UpdateTaskRequest
		if ok := decodeRequest(&req, w, r); !ok {
			return
		}

		task, err := a.service.SetTaskCompletion(token.UserID(), taskID, req.Completed)
		if err != nil {
			writeError(w, r, err)
			return
		}
		returnJson(task, w)
	}
}

func (a *API) DeleteTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := identityFrom(r)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Authorization required")
			return
		}
		taskID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		if err := a.service.DeleteTask(token.UserID(), taskID); err != nil {
			writeError(w, r, err)
			return
		}
		w.Write([]byte("Task deleted"))
	}
}

func (a *API) SearchTasks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := identityFrom(r)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Authorization required")
			return
		}
		ownerID, ok := pathID(w, r, "userId")
		if !ok {
			return
		}
		query := r.URL.Query().Get("query")

		tasks, err := a.service.SearchTasks(token.UserID(), ownerID, query)
		if err != nil {
			writeError(w, r, err)
			return
		}
		returnJson(tasks, w)
	}
}

// PaginateTasks reads page and limit from the query string. Junk paging
// input degrades to an empty page instead of an error.
func (a *API) PaginateTasks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := identityFrom(r)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Authorization required")
			return
		}
		ownerID, ok := pathID(w, r, "userId")
		if !ok {
			return
		}

		queries := r.URL.Query()
		page, pageErr := strconv.Atoi(queries.Get("page"))
		limit, limitErr := strconv.Atoi(queries.Get("limit"))
		if pageErr != nil || limitErr != nil {
			page, limit = 0, 0
		}

		tasks, err := a.service.PaginateTasks(token.UserID(), ownerID, page, limit)
		if err != nil {
			writeError(w, r, err)
			return
		}
		response := TaskPageResponse{
			UserID: ownerID,
			Tasks:  tasks,
		}
		returnJson(&response, w)
	}
}

func (a *API) CompleteAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := identityFrom(r)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Authorization required")
			return
		}
		ownerID, ok := pathID(w, r, "userId")
		if !ok {
			return
		}

		if err := a.service.CompleteAll(token.UserID(), ownerID); err != nil {
			writeError(w, r, err)
			return
		}
		w.Write([]byte("All tasks marked as complete"))
	}
}

func (a *API) DeleteAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := identityFrom(r)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Authorization required")
			return
		}
		ownerID, ok := pathID(w, r, "userId")
		if !ok {
			return
		}

		if err := a.service.DeleteAll(token.UserID(), ownerID); err != nil {
			writeError(w, r, err)
			return
		}
		w.Write([]byte("All tasks deleted"))
	}
}

func pathID(
	w http.ResponseWriter,
	r *http.Request,
	name string,
) (
	int64,
	bool,
) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		logApiErr(r, "non-numeric path id")
		writeMessage(w, http.StatusBadRequest, "Invalid input data")
		return 0, false
	}
	return id, true
}
