package database

import (
	"fmt"
	"strings"

	"git.sr.ht/~jakintosh/taskpad/internal/service"
)

func (s *SQLiteStore) IdentityStore() service.IdentityStore {
	return s
}

func (s *SQLiteStore) InsertIdentity(
	name string,
	email string,
	secret []byte,
) (
	int64,
	error,
) {
	result, err := s.db.Exec(`
		INSERT INTO identity (name, email, secret)
		VALUES (?1, ?2, ?3);`,
		name,
		email,
		secret,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, service.ErrEmailTaken
		}
		return 0, fmt.Errorf("couldn't insert into identity: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("couldn't read identity id: %v", err)
	}
	return id, nil
}

func (s *SQLiteStore) GetIdentityByEmail(
	email string,
) (
	*service.User,
	[]byte,
	error,
) {
	row := s.db.QueryRow(`
		SELECT i.id, i.name, i.email, i.secret
		FROM identity i
		WHERE i.email=?1;`,
		email,
	)

	user := &service.User{}
	var secret []byte
	err := row.Scan(&user.ID, &user.Name, &user.Email, &secret)
	if err != nil {
		return nil, nil, err
	}
	return user, secret, nil
}

func (s *SQLiteStore) EmailExists(
	email string,
) (
	bool,
	error,
) {
	row := s.db.QueryRow(`
		SELECT COUNT(*)
		FROM identity i
		WHERE i.email=?1;`,
		email,
	)

	var count int
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("couldn't scan identity count: %v", err)
	}
	return count > 0, nil
}
