package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/rafiq/internal/edition"
	"github.com/Nixie-Tech-LLC/rafiq/internal/model"
	"github.com/Nixie-Tech-LLC/rafiq/internal/mushaf"
)

type visits []int

func (v *visits) RecordVisit(page int) { *v = append(*v, page) }

func newNav(t *testing.T, id edition.ID, page int, dir Direction) (*Navigator, *visits) {
	t.Helper()
	ed, err := edition.Lookup(id)
	require.NoError(t, err)
	rec := &visits{}
	n := New(ed, page, rec, DefaultZoom)
	n.SetDirection(dir)
	return n, rec
}

func TestStepLTR(t *testing.T) {
	n, rec := newNav(t, edition.KSU, 1, DirectionForLanguage("en"))

	assert.True(t, n.Step(Forward))
	assert.Equal(t, 2, n.Page())
	assert.True(t, n.Step(Backward))
	assert.Equal(t, 1, n.Page())
	assert.False(t, n.Step(Backward))
	assert.Equal(t, 1, n.Page())
	assert.Equal(t, visits{2, 1}, *rec)
}

func TestStepRTLMirrorsPageNumbers(t *testing.T) {
	n, rec := newNav(t, edition.KSU, 1, DirectionForLanguage("ar"))

	assert.False(t, n.Step(Forward), "page 0 is out of bounds")
	assert.Equal(t, 1, n.Page())
	assert.Empty(t, *rec)

	assert.True(t, n.GoToPage(2))
	assert.True(t, n.Step(Forward))
	assert.Equal(t, 1, n.Page())

	assert.True(t, n.Step(Backward))
	assert.Equal(t, 2, n.Page())
}

func TestStepDoubleMode(t *testing.T) {
	for _, tc := range []struct {
		lang          string
		forward, back int
	}{
		{"ar", 98, 102},
		{"en", 102, 98},
	} {
		n, _ := newNav(t, edition.KSU, 100, DirectionForLanguage(tc.lang))
		require.NoError(t, n.SetViewMode(model.ViewDouble))
		assert.Equal(t, 100, n.Page(), "view mode must not move the page")

		n.Step(Forward)
		assert.Equal(t, tc.forward, n.Page(), tc.lang)
		n.GoToPage(100)
		n.Step(Backward)
		assert.Equal(t, tc.back, n.Page(), tc.lang)
	}
}

func TestCanStep(t *testing.T) {
	n, _ := newNav(t, edition.KSU, 604, LTR)
	assert.False(t, n.CanStep(Forward))
	assert.True(t, n.CanStep(Backward))

	n.SetDirection(RTL)
	assert.True(t, n.CanStep(Forward))
	assert.False(t, n.CanStep(Backward))
}

func TestGoToPageRefusesOutOfBounds(t *testing.T) {
	n, rec := newNav(t, edition.KSU, 10, LTR)
	ed := n.State().Edition

	assert.False(t, n.GoToPage(ed.EndPage+1))
	assert.False(t, n.GoToPage(ed.StartPage-1))
	assert.Equal(t, 10, n.Page())
	assert.Empty(t, *rec)

	assert.True(t, n.GoToPage(ed.EndPage))
	assert.Equal(t, visits{604}, *rec)
}

func TestFirstLast(t *testing.T) {
	n, _ := newNav(t, edition.MedinaNabawiya, 100, RTL)
	assert.True(t, n.First())
	assert.Equal(t, 4, n.Page())
	assert.True(t, n.Last())
	assert.Equal(t, 638, n.Page())
}

func TestJumps(t *testing.T) {
	n, rec := newNav(t, edition.Tajweed, 1, RTL)

	moved, err := n.JumpToSurah(18)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 293, n.Page())

	moved, err = n.JumpToJuz(30)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 582, n.Page())

	_, err = n.JumpToHizb(18)
	require.NoError(t, err)
	assert.Equal(t, 173, n.Page())

	_, err = n.JumpToJuz(31)
	assert.ErrorIs(t, err, mushaf.ErrOutOfRange)
	assert.Equal(t, 173, n.Page())

	assert.Equal(t, visits{293, 582, 173}, *rec)
}

func TestJumpsRefusedOnNonCanonicalEditions(t *testing.T) {
	n, rec := newNav(t, edition.Warsh, 50, RTL)

	moved, err := n.JumpToSurah(2)
	assert.ErrorIs(t, err, ErrNonCanonicalEdition)
	assert.False(t, moved)
	assert.Equal(t, 50, n.Page())
	assert.Empty(t, *rec)
}

func TestChangeEditionReclamps(t *testing.T) {
	n, rec := newNav(t, edition.MedinaNabawiya, 600, RTL)

	require.NoError(t, n.ChangeEdition(edition.Warsh))
	assert.Equal(t, 563, n.Page())
	assert.Equal(t, edition.Warsh, n.State().Edition.ID)

	require.NoError(t, n.ChangeEdition(edition.MedinaNabawiya))
	assert.Equal(t, 563, n.Page())

	n.GoToPage(10)
	require.NoError(t, n.ChangeEdition(edition.KSU))
	assert.Equal(t, 10, n.Page())

	err := n.ChangeEdition("missing")
	assert.ErrorIs(t, err, edition.ErrUnknownEdition)
	assert.Equal(t, edition.KSU, n.State().Edition.ID)
	assert.Equal(t, visits{10}, *rec, "edition changes are not visits")
}

func TestSetViewMode(t *testing.T) {
	n, _ := newNav(t, edition.KSU, 1, RTL)
	assert.ErrorIs(t, n.SetViewMode("triple"), ErrInvalidViewMode)
	assert.Equal(t, model.ViewSingle, n.State().ViewMode)
}

func TestSetZoomClamps(t *testing.T) {
	n, _ := newNav(t, edition.KSU, 1, RTL)
	assert.Equal(t, 50, n.SetZoom(10))
	assert.Equal(t, 200, n.SetZoom(1000))
	assert.Equal(t, 125, n.SetZoom(125))
	assert.Equal(t, 125, n.State().Zoom)
}

func TestVisible(t *testing.T) {
	n, _ := newNav(t, edition.KSU, 603, RTL)
	assert.Equal(t, []int{603}, n.Visible())

	require.NoError(t, n.SetViewMode(model.ViewDouble))
	assert.Equal(t, []int{603, 604}, n.Visible())

	n.GoToPage(604)
	assert.Equal(t, []int{604}, n.Visible())
	assert.Equal(t, []string{"https://quran.ksu.edu.sa/ayat/safahat1/604.png"}, n.ImageURLs())
}

func TestBreadcrumb(t *testing.T) {
	n, _ := newNav(t, edition.KSU, 22, RTL)
	b := n.Breadcrumb()
	assert.False(t, b.Approximate)
	assert.Equal(t, 2, b.Juz)

	require.NoError(t, n.ChangeEdition(edition.Warsh))
	assert.True(t, n.Breadcrumb().Approximate)
}

func TestNewClampsStartPage(t *testing.T) {
	ed, _ := edition.Lookup(edition.MedinaNabawiya)
	n := New(ed, 1, nil, DefaultZoom)
	assert.Equal(t, 4, n.Page())
	assert.True(t, n.GoToPage(5), "nil recorder is allowed")
}

func TestParseStep(t *testing.T) {
	s, err := ParseStep("next")
	require.NoError(t, err)
	assert.Equal(t, Forward, s)
	s, err = ParseStep("backward")
	require.NoError(t, err)
	assert.Equal(t, Backward, s)
	_, err = ParseStep("sideways")
	assert.Error(t, err)
}
