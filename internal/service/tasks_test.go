package service_test

import (
	"errors"
	"testing"

	"git.sr.ht/~jakintosh/taskpad/internal/service"
	"git.sr.ht/~jakintosh/taskpad/internal/testutil"
)

func TestAddTask_ThenList(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	alice := env.RegisterTestUser(t, "Alice", "alice@example.com", "password")

	// new task appears exactly once in the owner's list, not completed
	task, err := env.Service.AddTask(alice.ID, alice.ID, "buy milk")
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if task.Completed {
		t.Error("new task should not be completed")
	}

	tasks, err := env.Service.ListTasks(alice.ID, alice.ID)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	found := 0
	for _, listed := range tasks {
		if listed.ID == task.ID {
			found++
			if listed.Text != "buy milk" {
				t.Errorf("task text = %q, want %q", listed.Text, "buy milk")
			}
		}
	}
	if found != 1 {
		t.Errorf("task appears %d times in list, want 1", found)
	}
}

func TestAddTask_InvalidInput(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	alice := env.RegisterTestUser(t, "Alice", "alice@example.com", "password")

	// empty text is rejected
	_, err := env.Service.AddTask(alice.ID, alice.ID, "")
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty text, got %v", err)
	}

	// missing owner id is rejected
	_, err = env.Service.AddTask(alice.ID, 0, "buy milk")
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for zero owner, got %v", err)
	}
}

func TestTasks_OwnerIsolation(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	alice := env.RegisterTestUser(t, "Alice", "alice@example.com", "password")
	bob := env.RegisterTestUser(t, "Bob", "bob@example.com", "password")

	task, err := env.Service.AddTask(bob.ID, bob.ID, "bob's secret task")
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	// every owner-scoped operation refuses a caller that isn't the owner
	if _, err := env.Service.ListTasks(alice.ID, bob.ID); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("ListTasks: expected ErrForbidden, got %v", err)
	}
	if _, err := env.Service.AddTask(alice.ID, bob.ID, "planted"); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("AddTask: expected ErrForbidden, got %v", err)
	}
	if _, err := env.Service.SetTaskCompletion(alice.ID, task.ID, true); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("SetTaskCompletion: expected ErrForbidden, got %v", err)
	}
	if err := env.Service.DeleteTask(alice.ID, task.ID); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("DeleteTask: expected ErrForbidden, got %v", err)
	}
	if _, err := env.Service.SearchTasks(alice.ID, bob.ID, "secret"); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("SearchTasks: expected ErrForbidden, got %v", err)
	}
	if _, err := env.Service.PaginateTasks(alice.ID, bob.ID, 1, 10); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("PaginateTasks: expected ErrForbidden, got %v", err)
	}
	if err := env.Service.CompleteAll(alice.ID, bob.ID); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("CompleteAll: expected ErrForbidden, got %v", err)
	}
	if err := env.Service.DeleteAll(alice.ID, bob.ID); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("DeleteAll: expected ErrForbidden, got %v", err)
	}

	// bob's task survived all of it
	tasks, err := env.Service.ListTasks(bob.ID, bob.ID)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Completed {
		t.Errorf("bob's task was disturbed: %+v", tasks)
	}
}

func TestSetTaskCompletion(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	alice := env.RegisterTestUser(t, "Alice", "alice@example.com", "password")

	task, err := env.Service.AddTask(alice.ID, alice.ID, "buy milk")
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	// toggle on
	updated, err := env.Service.SetTaskCompletion(alice.ID, task.ID, true)
	if err != nil {
		t.Fatalf("SetTaskCompletion failed: %v", err)
	}
	if !updated.Completed {
		t.Error("task should be completed")
	}

	// toggle off again
	updated, err = env.Service.SetTaskCompletion(alice.ID, task.ID, false)
	if err != nil {
		t.Fatalf("SetTaskCompletion failed: %v", err)
	}
	if updated.Completed {
		t.Error("task should not be completed")
	}
}

func TestSetTaskCompletion_MissingID(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	alice := env.RegisterTestUser(t, "Alice", "alice@example.com", "password")

	// updating an id that doesn't exist succeeds with no task
	task, err := env.Service.SetTaskCompletion(alice.ID, 9999, true)
	if err != nil {
		t.Fatalf("SetTaskCompletion failed: %v", err)
	}
	if task != nil {
		t.Errorf("expected nil task, got %+v", task)
	}
}

func TestDeleteTask_Idempotent(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	alice := env.RegisterTestUser(t, "Alice", "alice@example.com", "password")

	task, err := env.Service.AddTask(alice.ID, alice.ID, "buy milk")
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	// first delete removes the task
	if err := env.Service.DeleteTask(alice.ID, task.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	tasks, err := env.Service.ListTasks(alice.ID, alice.ID)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	for _, listed := range tasks {
		if listed.ID == task.ID {
			t.Error("deleted task still listed")
		}
	}

	// second delete of the same id is not an error
	if err := env.Service.DeleteTask(alice.ID, task.ID); err != nil {
		t.Errorf("second DeleteTask failed: %v", err)
	}
}

func TestSearchTasks_CaseInsensitive(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	alice := env.RegisterTestUser(t, "Alice", "alice@example.com", "password")

	for _, text := range []string{"Buy MILK", "buy bread", "walk the dog"} {
		if _, err := env.Service.AddTask(alice.ID, alice.ID, text); err != nil {
			t.Fatalf("AddTask failed: %v", err)
		}
	}

	// substring match ignores case
	tasks, err := env.Service.SearchTasks(alice.ID, alice.ID, "milk")
	if err != nil {
		t.Fatalf("SearchTasks failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Text != "Buy MILK" {
		t.Errorf("unexpected search result: %+v", tasks)
	}

	// both "buy" tasks match regardless of query case
	tasks, err = env.Service.SearchTasks(alice.ID, alice.ID, "BUY")
	if err != nil {
		t.Fatalf("SearchTasks failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("expected 2 matches, got %d", len(tasks))
	}
}

func TestPaginateTasks(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	alice := env.RegisterTestUser(t, "Alice", "alice@example.com", "password")

	for i := 0; i < 5; i++ {
		if _, err := env.Service.AddTask(alice.ID, alice.ID, "task"); err != nil {
			t.Fatalf("AddTask failed: %v", err)
		}
	}

	// page 1 holds the first two tasks
	page, err := env.Service.PaginateTasks(alice.ID, alice.ID, 1, 2)
	if err != nil {
		t.Fatalf("PaginateTasks failed: %v", err)
	}
	if len(page) != 2 {
		t.Errorf("page 1 size = %d, want 2", len(page))
	}

	// last page holds the remainder
	page, err = env.Service.PaginateTasks(alice.ID, alice.ID, 3, 2)
	if err != nil {
		t.Fatalf("PaginateTasks failed: %v", err)
	}
	if len(page) != 1 {
		t.Errorf("page 3 size = %d, want 1", len(page))
	}

	// a page past the end is empty, not an error
	page, err = env.Service.PaginateTasks(alice.ID, alice.ID, 10, 2)
	if err != nil {
		t.Fatalf("PaginateTasks failed: %v", err)
	}
	if len(page) != 0 {
		t.Errorf("page past end size = %d, want 0", len(page))
	}

	// non-positive paging input degrades to an empty page
	for _, c := range []struct{ page, limit int }{{0, 2}, {1, 0}, {-1, -5}} {
		page, err = env.Service.PaginateTasks(alice.ID, alice.ID, c.page, c.limit)
		if err != nil {
			t.Fatalf("PaginateTasks(%d, %d) failed: %v", c.page, c.limit, err)
		}
		if len(page) != 0 {
			t.Errorf("PaginateTasks(%d, %d) size = %d, want 0", c.page, c.limit, len(page))
		}
	}
}

func TestCompleteAll(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	alice := env.RegisterTestUser(t, "Alice", "alice@example.com", "password")
	bob := env.RegisterTestUser(t, "Bob", "bob@example.com", "password")

	for i := 0; i < 3; i++ {
		if _, err := env.Service.AddTask(alice.ID, alice.ID, "task"); err != nil {
			t.Fatalf("AddTask failed: %v", err)
		}
	}
	if _, err := env.Service.AddTask(bob.ID, bob.ID, "bob's task"); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	// all of alice's tasks flip to completed
	if err := env.Service.CompleteAll(alice.ID, alice.ID); err != nil {
		t.Fatalf("CompleteAll failed: %v", err)
	}
	tasks, err := env.Service.ListTasks(alice.ID, alice.ID)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	for _, task := range tasks {
		if !task.Completed {
			t.Errorf("task %d not completed", task.ID)
		}
	}

	// bob's task is untouched
	tasks, err = env.Service.ListTasks(bob.ID, bob.ID)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Completed {
		t.Errorf("bob's task was disturbed: %+v", tasks)
	}
}

func TestDeleteAll(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	alice := env.RegisterTestUser(t, "Alice", "alice@example.com", "password")
	bob := env.RegisterTestUser(t, "Bob", "bob@example.com", "password")

	for i := 0; i < 3; i++ {
		if _, err := env.Service.AddTask(alice.ID, alice.ID, "task"); err != nil {
			t.Fatalf("AddTask failed: %v", err)
		}
	}
	if _, err := env.Service.AddTask(bob.ID, bob.ID, "bob's task"); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	// alice's tasks all go away
	if err := env.Service.DeleteAll(alice.ID, alice.ID); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	tasks, err := env.Service.ListTasks(alice.ID, alice.ID)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected no tasks, got %d", len(tasks))
	}

	// bob keeps his
	tasks, err = env.Service.ListTasks(bob.ID, bob.ID)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("bob's tasks were disturbed: %+v", tasks)
	}
}
