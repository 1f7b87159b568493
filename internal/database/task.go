package database

import (
	"database/sql"
	"fmt"

	"git.sr.ht/~jakintosh/taskpad/internal/service"
)

func (s *SQLiteStore) TaskStore() service.TaskStore {
	return s
}

func (s *SQLiteStore) InsertTask(
	owner int64,
	text string,
) (
	*service.Task,
	error,
) {
	result, err := s.db.Exec(`
		INSERT INTO task (owner, text, completed)
		VALUES (?1, ?2, 0);`,
		owner,
		text,
	)
	if err != nil {
		return nil, fmt.Errorf("couldn't insert into task: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("couldn't read task id: %v", err)
	}
	return &service.Task{
		ID:        id,
		OwnerID:   owner,
		Text:      text,
		Completed: false,
	}, nil
}

// GetTask returns (nil, nil) when no task has the given id.
func (s *SQLiteStore) GetTask(
	id int64,
) (
	*service.Task,
	error,
) {
	row := s.db.QueryRow(`
		SELECT t.id, t.owner, t.text, t.completed
		FROM task t
		WHERE t.id=?1;`,
		id,
	)

	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't scan task: %v", err)
	}
	return task, nil
}

func (s *SQLiteStore) TasksByOwner(
	owner int64,
) (
	[]service.Task,
	error,
) {
	rows, err := s.db.Query(`
		SELECT t.id, t.owner, t.text, t.completed
		FROM task t
		WHERE t.owner=?1;`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("couldn't query tasks: %v", err)
	}
	return collectTasks(rows)
}

func (s *SQLiteStore) SetTaskCompleted(
	id int64,
	completed bool,
) error {
	_, err := s.db.Exec(`
		UPDATE task
		SET completed=?1
		WHERE id=?2;`,
		completed,
		id,
	)
	if err != nil {
		return fmt.Errorf("couldn't update task: %v", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteTask(
	id int64,
) error {
	_, err := s.db.Exec(`
		DELETE FROM task
		WHERE id=?1;`,
		id,
	)
	if err != nil {
		return fmt.Errorf("couldn't delete from task: %v", err)
	}
	return nil
}

func (s *SQLiteStore) SearchTasks(
	owner int64,
	query string,
) (
	[]service.Task,
	error,
) {
	rows, err := s.db.Query(`
		SELECT t.id, t.owner, t.text, t.completed
		FROM task t
		WHERE t.owner=?1
		AND instr(lower(t.text), lower(?2)) > 0;`,
		owner,
		query,
	)
	if err != nil {
		return nil, fmt.Errorf("couldn't search tasks: %v", err)
	}
	return collectTasks(rows)
}

func (s *SQLiteStore) TasksPage(
	owner int64,
	limit int,
	offset int,
) (
	[]service.Task,
	error,
) {
	rows, err := s.db.Query(`
		SELECT t.id, t.owner, t.text, t.completed
		FROM task t
		WHERE t.owner=?1
		LIMIT ?2 OFFSET ?3;`,
		owner,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("couldn't paginate tasks: %v", err)
	}
	return collectTasks(rows)
}

func (s *SQLiteStore) CompleteAll(
	owner int64,
) error {
	_, err := s.db.Exec(`
		UPDATE task
		SET completed=1
		WHERE owner=?1;`,
		owner,
	)
	if err != nil {
		return fmt.Errorf("couldn't complete tasks: %v", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteAll(
	owner int64,
) error {
	_, err := s.db.Exec(`
		DELETE FROM task
		WHERE owner=?1;`,
		owner,
	)
	if err != nil {
		return fmt.Errorf("couldn't delete tasks: %v", err)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTask(row scannable) (*service.Task, error) {
	task := &service.Task{}
	err := row.Scan(&task.ID, &task.OwnerID, &task.Text, &task.Completed)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func collectTasks(rows *sql.Rows) ([]service.Task, error) {
	defer rows.Close()

	tasks := []service.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("couldn't scan task row: %v", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task row iteration failed: %v", err)
	}
	return tasks, nil
}
