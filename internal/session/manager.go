package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/rafiq/internal/broadcast"
	"github.com/Nixie-Tech-LLC/rafiq/internal/db"
	"github.com/Nixie-Tech-LLC/rafiq/internal/edition"
	"github.com/Nixie-Tech-LLC/rafiq/internal/library"
	"github.com/Nixie-Tech-LLC/rafiq/internal/model"
	"github.com/Nixie-Tech-LLC/rafiq/internal/mushaf"
	"github.com/Nixie-Tech-LLC/rafiq/internal/navigator"
	"github.com/Nixie-Tech-LLC/rafiq/internal/redis"
)

var (
	// ErrFollowUnavailable is returned when no cache is configured to hold
	// follow codes.
	ErrFollowUnavailable = errors.New("session: follow codes need a cache")
	ErrUnknownFollowCode = errors.New("session: unknown or expired follow code")

	// ErrUnchanged lets an Update callback report that it left the session
	// as it was. Update then returns nil without saving.
	ErrUnchanged = errors.New("session: unchanged")
)

const FollowCodeTTL = 5 * time.Minute

// Cache is the write-through copy of reader states. *redis.StateCache
// implements it.
type Cache interface {
	Get(ctx context.Context, userID int) (model.ReaderState, error)
	Put(ctx context.Context, userID int, state model.ReaderState) error
	Invalidate(ctx context.Context, userID int) error
	PutFollowCode(ctx context.Context, code string, userID int, ttl time.Duration) error
	ClaimFollowCode(ctx context.Context, code string) (int, error)
}

// Manager loads, serializes and saves reader sessions.
type Manager struct {
	store db.Store
	cache Cache
	pub   broadcast.Publisher
	zoom  navigator.ZoomRange
	now   func() time.Time

	mu    sync.Mutex
	locks map[int]*userLock
}

// userLock is dropped from Manager.locks once nobody holds or waits on it.
type userLock struct {
	sync.Mutex
	refs int
}

type Option func(*Manager)

func WithCache(c Cache) Option {
	return func(m *Manager) { m.cache = c }
}

func WithPublisher(p broadcast.Publisher) Option {
	return func(m *Manager) { m.pub = p }
}

func WithZoom(z navigator.ZoomRange) Option {
	return func(m *Manager) { m.zoom = z }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(store db.Store, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		pub:   broadcast.Nop{},
		zoom:  navigator.DefaultZoom,
		now:   time.Now,
		locks: make(map[int]*userLock),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) lock(userID int) func() {
	m.mu.Lock()
	l, ok := m.locks[userID]
	if !ok {
		l = &userLock{}
		m.locks[userID] = l
	}
	l.refs++
	m.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, userID)
		}
		m.mu.Unlock()
	}
}

// View runs fn against the reader's session without saving it.
func (m *Manager) View(ctx context.Context, userID int, fn func(*Session) error) error {
	unlock := m.lock(userID)
	defer unlock()

	s, err := m.load(ctx, userID)
	if err != nil {
		return err
	}
	return fn(s)
}

// Update runs fn and saves the session when fn returns nil. A page or
// edition change is broadcast after the save. When fn returns ErrUnchanged
// nothing is saved and Update returns nil.
func (m *Manager) Update(ctx context.Context, userID int, fn func(*Session) error) error {
	unlock := m.lock(userID)
	defer unlock()

	s, err := m.load(ctx, userID)
	if err != nil {
		return err
	}
	before := s.nav.State()
	if err := fn(s); err != nil {
		if errors.Is(err, ErrUnchanged) {
			return nil
		}
		return err
	}
	return m.save(ctx, s, before)
}

// Reset drops everything saved for the reader.
func (m *Manager) Reset(ctx context.Context, userID int) error {
	unlock := m.lock(userID)
	defer unlock()

	if err := m.store.DeleteReaderState(userID); err != nil && !errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("delete reader state: %w", err)
	}
	if m.cache != nil {
		if err := m.cache.Invalidate(ctx, userID); err != nil {
			log.Warn().Err(err).Int("user_id", userID).Msg("[session] cache invalidate failed")
		}
	}
	return nil
}

func (m *Manager) load(ctx context.Context, userID int) (*Session, error) {
	state, err := m.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}
	return m.restore(userID, state), nil
}

func (m *Manager) loadState(ctx context.Context, userID int) (model.ReaderState, error) {
	if m.cache != nil {
		state, err := m.cache.Get(ctx, userID)
		if err == nil {
			return state, nil
		}
		if !errors.Is(err, redis.ErrMiss) {
			log.Warn().Err(err).Int("user_id", userID).Msg("[session] cache read failed, using database")
		}
	}

	state, err := m.store.LoadReaderState(userID)
	if errors.Is(err, db.ErrNotFound) {
		return model.DefaultReaderState(), nil
	}
	if err != nil {
		return model.ReaderState{}, fmt.Errorf("load reader state: %w", err)
	}
	return state, nil
}

// restore rebuilds a session from a persisted record. Anything the record
// got wrong (unknown edition, page out of range, bad view mode) is repaired
// rather than rejected.
func (m *Manager) restore(userID int, state model.ReaderState) *Session {
	ed, ok := edition.LookupOrDefault(edition.ID(state.Edition))
	if !ok {
		log.Warn().Int("user_id", userID).Str("edition", state.Edition).Msg("[session] unknown edition, using default")
	}

	lib := library.New(library.WithClock(m.now))
	lib.Restore(state)

	nav := navigator.New(ed, state.Page, lib, m.zoom)
	if state.ViewMode.Valid() {
		_ = nav.SetViewMode(state.ViewMode)
	}
	if state.Zoom > 0 {
		nav.SetZoom(state.Zoom)
	}

	s := &Session{userID: userID, nav: nav, lib: lib}
	if err := s.SetLanguage(state.Language); err != nil {
		_ = s.SetLanguage(model.DefaultReaderState().Language)
	}
	if state.Settings == (model.Settings{}) {
		state.Settings = model.DefaultSettings()
	}
	s.SetSettings(state.Settings)
	return s
}

func (m *Manager) save(ctx context.Context, s *Session, before navigator.State) error {
	state := s.Snapshot()
	state.UpdatedAt = m.now().UTC()

	if err := m.store.SaveReaderState(s.userID, state); err != nil {
		return fmt.Errorf("save reader state: %w", err)
	}
	if m.cache != nil {
		if err := m.cache.Put(ctx, s.userID, state); err != nil {
			log.Warn().Err(err).Int("user_id", s.userID).Msg("[session] cache write failed")
		}
	}

	after := s.nav.State()
	if after.Page != before.Page || after.Edition.ID != before.Edition.ID {
		m.publish(s.userID, after, state.UpdatedAt)
	}
	return nil
}

func (m *Manager) publish(userID int, st navigator.State, at time.Time) {
	ev := broadcast.PositionEvent{
		UserID:   userID,
		Page:     st.Page,
		Edition:  string(st.Edition.ID),
		ViewMode: string(st.ViewMode),
		Juz:      mushaf.ResolveJuz(st.Page),
		At:       at,
	}
	if sr, ok := mushaf.ResolveSurah(st.Page); ok {
		ev.Surah = sr.Number
	}
	if err := m.pub.PublishPosition(ev); err != nil {
		log.Warn().Err(err).Int("user_id", userID).Int("page", st.Page).Msg("[session] position broadcast failed")
	}
}

// IssueFollowCode hands out a short-lived code another device can claim to
// follow this reader.
func (m *Manager) IssueFollowCode(ctx context.Context, userID int) (string, error) {
	if m.cache == nil {
		return "", ErrFollowUnavailable
	}
	code := generateFollowCode()
	if err := m.cache.PutFollowCode(ctx, code, userID, FollowCodeTTL); err != nil {
		return "", fmt.Errorf("store follow code: %w", err)
	}
	return code, nil
}

// ClaimFollowCode returns the reader behind code. Codes work once.
func (m *Manager) ClaimFollowCode(ctx context.Context, code string) (int, error) {
	if m.cache == nil {
		return 0, ErrFollowUnavailable
	}
	userID, err := m.cache.ClaimFollowCode(ctx, code)
	if errors.Is(err, redis.ErrMiss) {
		return 0, ErrUnknownFollowCode
	}
	if err != nil {
		return 0, fmt.Errorf("claim follow code: %w", err)
	}
	return userID, nil
}

func generateFollowCode() string {
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	b := make([]byte, 6)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
