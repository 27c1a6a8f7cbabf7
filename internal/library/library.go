package library

import (
	"time"

	"github.com/Nixie-Tech-LLC/rafiq/internal/model"
)

// HistoryLimit caps the recency log.
const HistoryLimit = 50

// Library holds one reader's bookmarks and visit history. It does no I/O and
// is not safe for concurrent use; the owning session serializes access.
type Library struct {
	bookmarks []model.Bookmark
	history   []model.HistoryEntry
	lastRead  int
	now       func() time.Time
}

type Option func(*Library)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Library) { l.now = now }
}

func New(opts ...Option) *Library {
	l := &Library{now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddBookmark places b on its page, stamping CreatedAt. Reports false when
// the page already has one.
func (l *Library) AddBookmark(b model.Bookmark) bool {
	if l.indexOf(b.Page) >= 0 {
		return false
	}
	b.CreatedAt = l.now()
	l.bookmarks = append(l.bookmarks, b)
	return true
}

func (l *Library) RemoveBookmark(page int) bool {
	i := l.indexOf(page)
	if i < 0 {
		return false
	}
	l.bookmarks = append(l.bookmarks[:i], l.bookmarks[i+1:]...)
	return true
}

func (l *Library) UpdateNote(page int, note string) bool {
	i := l.indexOf(page)
	if i < 0 {
		return false
	}
	l.bookmarks[i].Note = note
	return true
}

func (l *Library) IsBookmarked(page int) bool {
	return l.indexOf(page) >= 0
}

// Bookmarks returns a copy in creation order.
func (l *Library) Bookmarks() []model.Bookmark {
	out := make([]model.Bookmark, len(l.bookmarks))
	copy(out, l.bookmarks)
	return out
}

func (l *Library) indexOf(page int) int {
	for i, b := range l.bookmarks {
		if b.Page == page {
			return i
		}
	}
	return -1
}

// RecordVisit moves page to the front of the history and marks it as the
// last read page.
func (l *Library) RecordVisit(page int) {
	entry := model.HistoryEntry{Page: page, VisitedAt: l.now()}

	next := make([]model.HistoryEntry, 0, min(len(l.history)+1, HistoryLimit))
	next = append(next, entry)
	for _, h := range l.history {
		if len(next) == HistoryLimit {
			break
		}
		if h.Page != page {
			next = append(next, h)
		}
	}
	l.history = next
	l.lastRead = page
}

// History returns a copy, most recent first.
func (l *Library) History() []model.HistoryEntry {
	out := make([]model.HistoryEntry, len(l.history))
	copy(out, l.history)
	return out
}

func (l *Library) ClearHistory() {
	l.history = nil
}

// LastRead is the most recently visited page, or 0 before any visit.
func (l *Library) LastRead() int {
	return l.lastRead
}

// Restore replaces the contents with persisted data. History is re-deduped
// and re-capped so a hand-edited record cannot break the invariants.
func (l *Library) Restore(state model.ReaderState) {
	l.bookmarks = l.bookmarks[:0]
	for _, b := range state.Bookmarks {
		if l.indexOf(b.Page) < 0 {
			l.bookmarks = append(l.bookmarks, b)
		}
	}

	seen := make(map[int]bool, len(state.History))
	l.history = make([]model.HistoryEntry, 0, min(len(state.History), HistoryLimit))
	for _, h := range state.History {
		if seen[h.Page] || len(l.history) == HistoryLimit {
			continue
		}
		seen[h.Page] = true
		l.history = append(l.history, h)
	}
	l.lastRead = state.LastReadPage
}

// Snapshot writes the library into state.
func (l *Library) Snapshot(state *model.ReaderState) {
	state.Bookmarks = l.Bookmarks()
	state.History = l.History()
	state.LastReadPage = l.lastRead
}
