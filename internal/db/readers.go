package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/rafiq/internal/model"
)

// one row per reader; the whole state is a single serialized record
type readerStateRow struct {
	UserID    int       `db:"user_id"`
	State     []byte    `db:"state"`
	UpdatedAt time.Time `db:"updated_at"`
}

// LoadReaderState returns ErrNotFound for a reader who never saved.
func (s *sqlStore) LoadReaderState(userID int) (model.ReaderState, error) {
	var row readerStateRow
	query := s.db.Rebind(`
	SELECT user_id, state, updated_at
	FROM reader_states
	WHERE user_id = ?;
	`)
	if err := s.db.Get(&row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ReaderState{}, ErrNotFound
		}
		log.Error().Err(err).Int("user_id", userID).Msg("[db] LoadReaderState: select failed")
		return model.ReaderState{}, err
	}

	var state model.ReaderState
	if err := json.Unmarshal(row.State, &state); err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("[db] LoadReaderState: corrupt state")
		return model.ReaderState{}, fmt.Errorf("decode reader state %d: %w", userID, err)
	}
	state.UpdatedAt = row.UpdatedAt
	return state, nil
}

func (s *sqlStore) SaveReaderState(userID int, state model.ReaderState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode reader state %d: %w", userID, err)
	}
	query := s.db.Rebind(`
	INSERT INTO reader_states (user_id, state, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT (user_id) DO UPDATE
	SET state = excluded.state,
	updated_at = excluded.updated_at;
	`)
	if _, err := s.db.Exec(query, userID, string(payload), time.Now().UTC()); err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("[db] SaveReaderState: upsert failed")
		return err
	}
	return nil
}

func (s *sqlStore) DeleteReaderState(userID int) error {
	_, err := s.db.Exec(s.db.Rebind(`DELETE FROM reader_states WHERE user_id = ?;`), userID)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("[db] DeleteReaderState: delete failed")
	}
	return err
}
