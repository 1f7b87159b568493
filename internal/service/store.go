package service

// User is the public identity shape. The password hash never leaves the
// store interfaces below.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Task is a single to-do item. Every task has exactly one owner, set at
// creation and immutable afterwards.
type Task struct {
	ID        int64  `json:"id"`
	OwnerID   int64  `json:"user_id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// IdentityStore handles persistence of user identity data.
// InsertIdentity must enforce email uniqueness and return ErrEmailTaken
// on conflict, so that two concurrent registrations can't both succeed.
type IdentityStore interface {
	InsertIdentity(name string, email string, secret []byte) (id int64, err error)
	GetIdentityByEmail(email string) (user *User, secret []byte, err error)
	EmailExists(email string) (bool, error)
}

// TaskStore handles persistence of tasks
type TaskStore interface {
	InsertTask(owner int64, text string) (*Task, error)
	GetTask(id int64) (*Task, error)
	TasksByOwner(owner int64) ([]Task, error)
	SetTaskCompleted(id int64, completed bool) error
	DeleteTask(id int64) error
	SearchTasks(owner int64, query string) ([]Task, error)
	TasksPage(owner int64, limit int, offset int) ([]Task, error)
	CompleteAll(owner int64) error
	DeleteAll(owner int64) error
}
