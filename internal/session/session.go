package session

import (
	"errors"
	"fmt"

	"github.com/Nixie-Tech-LLC/rafiq/internal/library"
	"github.com/Nixie-Tech-LLC/rafiq/internal/model"
	"github.com/Nixie-Tech-LLC/rafiq/internal/mushaf"
	"github.com/Nixie-Tech-LLC/rafiq/internal/navigator"
)

var ErrUnsupportedLanguage = errors.New("session: unsupported language")

// Languages the reader UI ships with.
var Languages = []string{"ar", "en"}

const (
	MinFontSize     = 12
	MaxFontSize     = 64
	MinPlaybackRate = 0.5
	MaxPlaybackRate = 2.0
)

// Session is one reader's live state. Callers get one only through
// Manager.View or Manager.Update, which hold the reader's lock.
type Session struct {
	userID   int
	nav      *navigator.Navigator
	lib      *library.Library
	language string
	settings model.Settings
}

func (s *Session) UserID() int {
	return s.userID
}

func (s *Session) Navigator() *navigator.Navigator {
	return s.nav
}

func (s *Session) Library() *library.Library {
	return s.lib
}

func (s *Session) Language() string {
	return s.language
}

// SetLanguage switches the UI language and the reading direction with it.
func (s *Session) SetLanguage(lang string) error {
	for _, l := range Languages {
		if l == lang {
			s.language = lang
			s.nav.SetDirection(navigator.DirectionForLanguage(lang))
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
}

func (s *Session) Settings() model.Settings {
	return s.settings
}

// SetSettings stores settings after clamping the numeric fields, and
// returns what was stored.
func (s *Session) SetSettings(in model.Settings) model.Settings {
	s.settings = clampSettings(in)
	return s.settings
}

// AddBookmark marks page, tagging it with the surah the page resolves to.
// ayah is optional; 0 leaves it unset.
func (s *Session) AddBookmark(page, ayah int, note string) (bool, error) {
	if !s.nav.State().Edition.Contains(page) {
		return false, fmt.Errorf("%w: page %d", mushaf.ErrOutOfRange, page)
	}
	if ayah < 0 {
		return false, fmt.Errorf("%w: ayah %d", mushaf.ErrOutOfRange, ayah)
	}
	b := model.Bookmark{Page: page, Ayah: ayah, Note: note}
	if sr, ok := mushaf.ResolveSurah(page); ok {
		b.Surah = sr.Number
	}
	return s.lib.AddBookmark(b), nil
}

// Resume returns the reader to the last page they read. It reports false,
// and stays put, when there is none or it lies outside the current edition.
func (s *Session) Resume() bool {
	page := s.lib.LastRead()
	if page == 0 || !s.nav.State().Edition.Contains(page) {
		return false
	}
	return s.nav.GoToPage(page)
}

// Snapshot flattens the session into its persisted record.
func (s *Session) Snapshot() model.ReaderState {
	st := s.nav.State()
	state := model.ReaderState{
		Page:     st.Page,
		Edition:  string(st.Edition.ID),
		ViewMode: st.ViewMode,
		Zoom:     st.Zoom,
		Language: s.language,
		Settings: s.settings,
	}
	s.lib.Snapshot(&state)
	return state
}

func clampSettings(in model.Settings) model.Settings {
	in.FontSize = max(MinFontSize, min(in.FontSize, MaxFontSize))
	in.Volume = max(0, min(in.Volume, 1))
	in.PlaybackRate = max(MinPlaybackRate, min(in.PlaybackRate, MaxPlaybackRate))
	return in
}
