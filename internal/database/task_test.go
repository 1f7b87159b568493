package database_test

import (
	"path/filepath"
	"testing"

	"git.sr.ht/~jakintosh/taskpad/internal/database"
)

func setupStore(t *testing.T) *database.SQLiteStore {
	t.Helper()
	store := database.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func insertOwner(t *testing.T, store *database.SQLiteStore, email string) int64 {
	t.Helper()
	id, err := store.InsertIdentity("Owner", email, []byte("hash"))
	if err != nil {
		t.Fatalf("InsertIdentity failed: %v", err)
	}
	return id
}

func TestInsertTask_Defaults(t *testing.T) {
	t.Parallel()
	store := setupStore(t)
	owner := insertOwner(t, store, "owner@example.com")

	// inserted task gets an id, the right owner, and completed=false
	task, err := store.InsertTask(owner, "buy milk")
	if err != nil {
		t.Fatalf("InsertTask failed: %v", err)
	}
	if task.ID == 0 {
		t.Error("expected assigned task id")
	}
	if task.OwnerID != owner {
		t.Errorf("owner = %d, want %d", task.OwnerID, owner)
	}
	if task.Completed {
		t.Error("new task should not be completed")
	}
}

func TestGetTask_Missing(t *testing.T) {
	t.Parallel()
	store := setupStore(t)

	// a missing id is (nil, nil), not an error
	task, err := store.GetTask(9999)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if task != nil {
		t.Errorf("expected nil task, got %+v", task)
	}
}

func TestTasksByOwner_Scoped(t *testing.T) {
	t.Parallel()
	store := setupStore(t)
	alice := insertOwner(t, store, "alice@example.com")
	bob := insertOwner(t, store, "bob@example.com")

	if _, err := store.InsertTask(alice, "alice 1"); err != nil {
		t.Fatalf("InsertTask failed: %v", err)
	}
	if _, err := store.InsertTask(alice, "alice 2"); err != nil {
		t.Fatalf("InsertTask failed: %v", err)
	}
	if _, err := store.InsertTask(bob, "bob 1"); err != nil {
		t.Fatalf("InsertTask failed: %v", err)
	}

	// only the owner's tasks come back
	tasks, err := store.TasksByOwner(alice)
	if err != nil {
		t.Fatalf("TasksByOwner failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("alice task count = %d, want 2", len(tasks))
	}
	for _, task := range tasks {
		if task.OwnerID != alice {
			t.Errorf("task %d has owner %d, want %d", task.ID, task.OwnerID, alice)
		}
	}
}

func TestSetTaskCompleted(t *testing.T) {
	t.Parallel()
	store := setupStore(t)
	owner := insertOwner(t, store, "owner@example.com")

	task, err := store.InsertTask(owner, "buy milk")
	if err != nil {
		t.Fatalf("InsertTask failed: %v", err)
	}

	if err := store.SetTaskCompleted(task.ID, true); err != nil {
		t.Fatalf("SetTaskCompleted failed: %v", err)
	}

	fetched, err := store.GetTask(task.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if !fetched.Completed {
		t.Error("task should be completed")
	}
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()
	store := setupStore(t)
	owner := insertOwner(t, store, "owner@example.com")

	task, err := store.InsertTask(owner, "buy milk")
	if err != nil {
		t.Fatalf("InsertTask failed: %v", err)
	}

	if err := store.DeleteTask(task.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	fetched, err := store.GetTask(task.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if fetched != nil {
		t.Errorf("expected task gone, got %+v", fetched)
	}

	// deleting again is not an error
	if err := store.DeleteTask(task.ID); err != nil {
		t.Errorf("second DeleteTask failed: %v", err)
	}
}

func TestSearchTasks(t *testing.T) {
	t.Parallel()
	store := setupStore(t)
	owner := insertOwner(t, store, "owner@example.com")
	other := insertOwner(t, store, "other@example.com")

	for _, text := range []string{"Buy MILK", "buy bread"} {
		if _, err := store.InsertTask(owner, text); err != nil {
			t.Fatalf("InsertTask failed: %v", err)
		}
	}
	// the other owner's matching task must not leak into results
	if _, err := store.InsertTask(other, "buy milk too"); err != nil {
		t.Fatalf("InsertTask failed: %v", err)
	}

	tasks, err := store.SearchTasks(owner, "milk")
	if err != nil {
		t.Fatalf("SearchTasks failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Text != "Buy MILK" {
		t.Errorf("unexpected search result: %+v", tasks)
	}
}

func TestTasksPage(t *testing.T) {
	t.Parallel()
	store := setupStore(t)
	owner := insertOwner(t, store, "owner@example.com")

	for i := 0; i < 5; i++ {
		if _, err := store.InsertTask(owner, "task"); err != nil {
			t.Fatalf("InsertTask failed: %v", err)
		}
	}

	page, err := store.TasksPage(owner, 2, 0)
	if err != nil {
		t.Fatalf("TasksPage failed: %v", err)
	}
	if len(page) != 2 {
		t.Errorf("page size = %d, want 2", len(page))
	}

	page, err = store.TasksPage(owner, 2, 4)
	if err != nil {
		t.Fatalf("TasksPage failed: %v", err)
	}
	if len(page) != 1 {
		t.Errorf("final page size = %d, want 1", len(page))
	}
}

func TestCompleteAllAndDeleteAll(t *testing.T) {
	t.Parallel()
	store := setupStore(t)
	owner := insertOwner(t, store, "owner@example.com")
	other := insertOwner(t, store, "other@example.com")

	for i := 0; i < 3; i++ {
		if _, err := store.InsertTask(owner, "task"); err != nil {
			t.Fatalf("InsertTask failed: %v", err)
		}
	}
	if _, err := store.InsertTask(other, "other's task"); err != nil {
		t.Fatalf("InsertTask failed: %v", err)
	}

	if err := store.CompleteAll(owner); err != nil {
		t.Fatalf("CompleteAll failed: %v", err)
	}
	tasks, err := store.TasksByOwner(owner)
	if err != nil {
		t.Fatalf("TasksByOwner failed: %v", err)
	}
	for _, task := range tasks {
		if !task.Completed {
			t.Errorf("task %d not completed", task.ID)
		}
	}

	if err := store.DeleteAll(owner); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	tasks, err = store.TasksByOwner(owner)
	if err != nil {
		t.Fatalf("TasksByOwner failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected no tasks after DeleteAll, got %d", len(tasks))
	}

	// the other owner keeps both flag and tasks untouched
	tasks, err = store.TasksByOwner(other)
	if err != nil {
		t.Fatalf("TasksByOwner failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Completed {
		t.Errorf("other owner's tasks were disturbed: %+v", tasks)
	}
}
