package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"git.sr.ht/~jakintosh/taskpad/internal/api"
	"git.sr.ht/~jakintosh/taskpad/internal/service"
)

var (
	ErrNoSession    = errors.New("no session")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRequest      = errors.New("request failed")
	ErrResponse     = errors.New("invalid response")
)

// Client is the consuming side's session manager. Login stores the
// issued token and user locally; every authenticated call attaches the
// token as a bearer credential. A 401/403 from the server surfaces as
// ErrUnauthorized so the caller can redirect to re-authentication.
type Client struct {
	baseURL string
	http    *http.Client

	token string
	user  *service.User
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// Authenticated reports whether a login session is held.
func (c *Client) Authenticated() bool { return c.token != "" }

// Token returns the stored bearer token, empty if not logged in.
func (c *Client) Token() string { return c.token }

// User returns the logged-in user, nil if not logged in.
func (c *Client) User() *service.User { return c.user }

// Logout clears the stored token and user.
func (c *Client) Logout() {
	c.token = ""
	c.user = nil
}

func (c *Client) Register(
	name string,
	email string,
	password string,
) (
	*service.User,
	error,
) {
	req := api.RegistrationRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}
	res := api.RegistrationResponse{}
	if err := c.do(http.MethodPost, "/register", &req, &res, false); err != nil {
		return nil, err
	}
	return res.User, nil
}

func (c *Client) Login(
	email string,
	password string,
) error {
	req := api.LoginRequest{
		Email:    email,
		Password: password,
	}
	res := api.LoginResponse{}
	if err := c.do(http.MethodPost, "/login", &req, &res, false); err != nil {
		return err
	}

	c.token = res.Token
	c.user = &res.User.User
	return nil
}

func (c *Client) AuthUser() (*service.User, error) {
	res := api.AuthUserResponse{}
	if err := c.do(http.MethodGet, "/auth/user", nil, &res, true); err != nil {
		return nil, err
	}
	return &res.User, nil
}

func (c *Client) Tasks() ([]service.Task, error) {
	if !c.Authenticated() {
		return nil, ErrNoSession
	}
	tasks := []service.Task{}
	path := fmt.Sprintf("/tasks/%d", c.user.ID)
	if err := c.do(http.MethodGet, path, nil, &tasks, true); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) AddTask(text string) (*service.Task, error) {
	if !c.Authenticated() {
		return nil, ErrNoSession
	}
	req := api.AddTaskRequest{
		Text:    text,
		OwnerID: c.user.ID,
	}
	task := service.Task{}
	if err := c.do(http.MethodPost, "/tasks", &req, &task, true); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) SetCompleted(
	taskID int64,
	completed bool,
) (
	*service.Task,
	error,
) {
	if !c.Authenticated() {
		return nil, ErrNoSession
	}
	req := api.UpdateTaskRequest{Completed: completed}
	task := service.Task{}
	path := fmt.Sprintf("/tasks/%d", taskID)
	if err := c.do(http.MethodPut, path, &req, &task, true); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(taskID int64) error {
	if !c.Authenticated() {
		return ErrNoSession
	}
	path := fmt.Sprintf("/tasks/%d", taskID)
	return c.do(http.MethodDelete, path, nil, nil, true)
}

func (c *Client) Search(query string) ([]service.Task, error) {
	if !c.Authenticated() {
		return nil, ErrNoSession
	}
	tasks := []service.Task{}
	path := fmt.Sprintf("/tasks/search/%d?query=%s", c.user.ID, url.QueryEscape(query))
	if err := c.do(http.MethodGet, path, nil, &tasks, true); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) Paginate(
	page int,
	limit int,
) (
	[]service.Task,
	error,
) {
	if !c.Authenticated() {
		return nil, ErrNoSession
	}
	res := api.TaskPageResponse{}
	path := fmt.Sprintf("/tasks/paginate/%d?page=%d&limit=%d", c.user.ID, page, limit)
	if err := c.do(http.MethodGet, path, nil, &res, true); err != nil {
		return nil, err
	}
	return res.Tasks, nil
}

func (c *Client) CompleteAll() error {
	if !c.Authenticated() {
		return ErrNoSession
	}
	path := fmt.Sprintf("/tasks/complete-all/%d", c.user.ID)
	return c.do(http.MethodPut, path, nil, nil, true)
}

func (c *Client) DeleteAll() error {
	if !c.Authenticated() {
		return ErrNoSession
	}
	path := fmt.Sprintf("/tasks/delete-all/%d", c.user.ID)
	return c.do(http.MethodDelete, path, nil, nil, true)
}

func (c *Client) do(
	method string,
	path string,
	body any,
	response any,
	authed bool,
) error {
	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("%w: couldn't encode body: %v", ErrRequest, err)
		}
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusUnauthorized,
		res.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case res.StatusCode >= 400:
		return fmt.Errorf("%w: status %d", ErrRequest, res.StatusCode)
	}

	if response != nil {
		if err := json.NewDecoder(res.Body).Decode(response); err != nil {
			return fmt.Errorf("%w: %v", ErrResponse, err)
		}
	}
	return nil
}
