package library

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/rafiq/internal/model"
)

func fakeClock() func() time.Time {
	t := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func TestAddBookmarkIsIdempotent(t *testing.T) {
	l := New(WithClock(fakeClock()))

	assert.True(t, l.AddBookmark(model.Bookmark{Page: 42, Surah: 2, Note: "first"}))
	assert.False(t, l.AddBookmark(model.Bookmark{Page: 42, Surah: 2, Note: "second"}))

	marks := l.Bookmarks()
	require.Len(t, marks, 1)
	assert.Equal(t, "first", marks[0].Note)
	assert.True(t, l.IsBookmarked(42))
}

func TestRemoveBookmark(t *testing.T) {
	l := New()
	l.AddBookmark(model.Bookmark{Page: 1, Surah: 1})
	l.AddBookmark(model.Bookmark{Page: 2, Surah: 2})
	l.AddBookmark(model.Bookmark{Page: 3, Surah: 2})

	assert.True(t, l.RemoveBookmark(2))
	assert.False(t, l.RemoveBookmark(2))
	assert.False(t, l.IsBookmarked(2))

	var pages []int
	for _, b := range l.Bookmarks() {
		pages = append(pages, b.Page)
	}
	assert.Equal(t, []int{1, 3}, pages)
}

func TestUpdateNote(t *testing.T) {
	l := New()
	assert.False(t, l.UpdateNote(5, "x"))
	l.AddBookmark(model.Bookmark{Page: 5, Surah: 2})
	assert.True(t, l.UpdateNote(5, "revise"))
	assert.Equal(t, "revise", l.Bookmarks()[0].Note)
}

func TestBookmarksReturnsCopy(t *testing.T) {
	l := New()
	l.AddBookmark(model.Bookmark{Page: 5, Surah: 2})
	l.Bookmarks()[0].Page = 99
	assert.True(t, l.IsBookmarked(5))
}

func TestHistoryCapAndRecency(t *testing.T) {
	l := New(WithClock(fakeClock()))
	for p := 1; p <= 60; p++ {
		l.RecordVisit(p)
	}

	h := l.History()
	require.Len(t, h, HistoryLimit)
	assert.Equal(t, 60, h[0].Page)
	assert.Equal(t, 11, h[HistoryLimit-1].Page)
	assert.Equal(t, 60, l.LastRead())

	l.RecordVisit(30)
	h = l.History()
	require.Len(t, h, HistoryLimit)
	assert.Equal(t, 30, h[0].Page)
	assert.Equal(t, 60, h[1].Page)

	count := 0
	for _, e := range h {
		if e.Page == 30 {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestRevisitRefreshesTimestamp(t *testing.T) {
	l := New(WithClock(fakeClock()))
	l.RecordVisit(7)
	first := l.History()[0].VisitedAt
	l.RecordVisit(8)
	l.RecordVisit(7)

	h := l.History()
	require.Len(t, h, 2)
	assert.True(t, h[0].VisitedAt.After(first))
}

func TestClearHistoryKeepsLastRead(t *testing.T) {
	l := New()
	l.RecordVisit(9)
	l.ClearHistory()
	assert.Empty(t, l.History())
	assert.Equal(t, 9, l.LastRead())
}

func TestRestoreRepairsPersistedData(t *testing.T) {
	state := model.ReaderState{
		Bookmarks:    []model.Bookmark{{Page: 3}, {Page: 3}, {Page: 4}},
		LastReadPage: 12,
	}
	for p := 0; p < 70; p++ {
		state.History = append(state.History, model.HistoryEntry{Page: p % 65})
	}

	l := New()
	l.Restore(state)

	assert.Len(t, l.Bookmarks(), 2)
	assert.Len(t, l.History(), HistoryLimit)
	assert.Equal(t, 12, l.LastRead())

	var out model.ReaderState
	l.Snapshot(&out)
	assert.Len(t, out.Bookmarks, 2)
	assert.Len(t, out.History, HistoryLimit)
	assert.Equal(t, 12, out.LastReadPage)
}
