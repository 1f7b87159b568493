package service

import (
	"fmt"
)

// Every operation here takes the caller's authenticated id first and
// re-verifies ownership itself, so the authorization invariant holds even
// if a route were ever wired up without the access guard.

func (s *Service) ListTasks(
	callerID int64,
	ownerID int64,
) (
	[]Task,
	error,
) {
	if callerID != ownerID {
		return nil, ErrForbidden
	}

	tasks, err := s.taskStore.TasksByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list tasks: %v", ErrInternal, err)
	}
	return tasks, nil
}

func (s *Service) AddTask(
	callerID int64,
	ownerID int64,
	text string,
) (
	*Task,
	error,
) {
	if text == "" || ownerID == 0 {
		return nil, ErrInvalidInput
	}
	if callerID != ownerID {
		return nil, ErrForbidden
	}

	task, err := s.taskStore.InsertTask(ownerID, text)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to insert task: %v", ErrInternal, err)
	}
	return task, nil
}

// SetTaskCompletion sets the completed flag on the caller's task. A
// missing task id is not an error; it returns (nil, nil) like an
// idempotent delete would.
func (s *Service) SetTaskCompletion(
	callerID int64,
	taskID int64,
	completed bool,
) (
	*Task,
	error,
) {
	task, err := s.taskStore.GetTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch task: %v", ErrInternal, err)
	}
	if task == nil {
		return nil, nil
	}
	if task.OwnerID != callerID {
		return nil, ErrForbidden
	}

	if err := s.taskStore.SetTaskCompleted(taskID, completed); err != nil {
		return nil, fmt.Errorf("%w: failed to update task: %v", ErrInternal, err)
	}

	task.Completed = completed
	return task, nil
}

// DeleteTask is idempotent: deleting an id that no longer exists
// succeeds. A live task owned by someone else is ErrForbidden.
func (s *Service) DeleteTask(
	callerID int64,
	taskID int64,
) error {
	task, err := s.taskStore.GetTask(taskID)
	if err != nil {
		return fmt.Errorf("%w: failed to fetch task: %v", ErrInternal, err)
	}
	if task == nil {
		return nil
	}
	if task.OwnerID != callerID {
		return ErrForbidden
	}

	if err := s.taskStore.DeleteTask(taskID); err != nil {
		return fmt.Errorf("%w: failed to delete task: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) SearchTasks(
	callerID int64,
	ownerID int64,
	query string,
) (
	[]Task,
	error,
) {
	if callerID != ownerID {
		return nil, ErrForbidden
	}

	tasks, err := s.taskStore.SearchTasks(ownerID, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to search tasks: %v", ErrInternal, err)
	}
	return tasks, nil
}

// PaginateTasks returns the page at offset (page-1)*limit. Out-of-range
// or non-positive paging input yields an empty result rather than an
// error.
func (s *Service) PaginateTasks(
	callerID int64,
	ownerID int64,
	page int,
	limit int,
) (
	[]Task,
	error,
) {
	if callerID != ownerID {
		return nil, ErrForbidden
	}
	if page < 1 || limit < 1 {
		return []Task{}, nil
	}

	offset := (page - 1) * limit
	tasks, err := s.taskStore.TasksPage(ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to paginate tasks: %v", ErrInternal, err)
	}
	return tasks, nil
}

func (s *Service) CompleteAll(
	callerID int64,
	ownerID int64,
) error {
	if callerID != ownerID {
		return ErrForbidden
	}

	if err := s.taskStore.CompleteAll(ownerID); err != nil {
		return fmt.Errorf("%w: failed to complete tasks: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) DeleteAll(
	callerID int64,
	ownerID int64,
) error {
	if callerID != ownerID {
		return ErrForbidden
	}

	if err := s.taskStore.DeleteAll(ownerID); err != nil {
		return fmt.Errorf("%w: failed to delete tasks: %v", ErrInternal, err)
	}
	return nil
}
