package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/rafiq/internal/model"
)

// inserts new user into table, returns new user ID.
func (s *sqlStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	query := s.db.Rebind(`
	INSERT INTO users (email, hashed_password, name, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?)
	RETURNING id;
	`)
	now := time.Now().UTC()
	var newID int
	err := s.db.QueryRow(query, email, hashedPassword, name, now, now).Scan(&newID)
	if err != nil {
		log.Error().Err(err).Msg("[db] CreateUser: failed to create user")
		return 0, err
	}
	return newID, nil
}

// fetches user by email. returns nil, ErrNotFound if not found.
func (s *sqlStore) GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	query := s.db.Rebind(`
	SELECT id, email, hashed_password, name, created_at, updated_at
	FROM users
	WHERE email = ?;
	`)
	err := s.db.Get(&u, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Msg("[db] GetUserByEmail: failed to get user")
		return nil, err
	}
	return &u, nil
}

// fetches a user by ID. returns nil, ErrNotFound if not found.
func (s *sqlStore) GetUserByID(id int) (*model.User, error) {
	var u model.User
	query := s.db.Rebind(`
	SELECT id, email, hashed_password, name, created_at, updated_at
	FROM users
	WHERE id = ?;
	`)
	err := s.db.Get(&u, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Int("user_id", id).Msg("[db] GetUserByID: failed to get user")
		return nil, err
	}
	return &u, nil
}

// updates a user's email and name, and bumps updated_at.
// returns ErrNotFound if no rows were affected.
func (s *sqlStore) UpdateUserProfile(id int, email string, name *string) error {
	query := s.db.Rebind(`
	UPDATE users
	SET email = ?,
	name = ?,
	updated_at = ?
	WHERE id = ?;
	`)
	res, err := s.db.Exec(query, email, name, time.Now().UTC(), id)
	if err != nil {
		log.Error().Err(err).Msg("[db] UpdateUserProfile: exec failed")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		log.Error().Err(err).Msg("[db] UpdateUserProfile: rows affected failed")
		return err
	}
	if rows == 0 {
		log.Warn().Int("user_id", id).Msg("[db] UpdateUserProfile: no such user")
		return ErrNotFound
	}
	return nil
}
