package mushaf

import (
	"errors"
	"fmt"
	"sort"
)

// ErrOutOfRange is returned for division numbers outside their table.
var ErrOutOfRange = errors.New("mushaf: index out of range")

// Quarter identifies a rub' marker and where it sits inside its hizb
// (1 = hizb start, 2/3/4 = the quarter, half and three-quarter marks).
type Quarter struct {
	Number   int `json:"number"`
	Position int `json:"position"`
}

// Position is the breadcrumb set for a single canonical page.
type Position struct {
	Page         int      `json:"page"`
	Surah        *Surah   `json:"surah,omitempty"`
	Juz          int      `json:"juz"`
	Hizb         int      `json:"hizb"`
	JuzStart     bool     `json:"juz_start"`
	HizbStart    *int     `json:"hizb_start,omitempty"`
	QuarterStart *Quarter `json:"quarter_start,omitempty"`
	Sajda        *Sajda   `json:"sajda,omitempty"`
}

// QuarterBadge reports whether a quarter marker should be drawn. A quarter at
// position 1 coincides with the hizb start marker.
func (p Position) QuarterBadge() bool {
	return p.QuarterStart != nil && p.QuarterStart.Position != 1
}

// containing returns the 1-based index of the last entry whose start is <=
// page, or 0 when page precedes the table.
func containing(starts []int, page int) int {
	return sort.Search(len(starts), func(i int) bool { return starts[i] > page })
}

// exact returns the 1-based index of the first entry starting at page.
func exact(starts []int, page int) (int, bool) {
	i := sort.SearchInts(starts, page)
	if i < len(starts) && starts[i] == page {
		return i + 1, true
	}
	return 0, false
}

// ResolveSurah returns the surah a page belongs to: the highest-numbered surah
// starting on or before it.
func ResolveSurah(page int) (Surah, bool) {
	n := containing(surahStarts[:], page)
	if n == 0 {
		return Surah{}, false
	}
	return surahAt(n - 1), true
}

// ResolveJuz defaults to 1 for pages below the table.
func ResolveJuz(page int) int {
	if n := containing(juzStarts[:], page); n > 0 {
		return n
	}
	return 1
}

// ResolveHizb defaults to 1 for pages below the table.
func ResolveHizb(page int) int {
	if n := containing(hizbStarts[:], page); n > 0 {
		return n
	}
	return 1
}

// ResolveQuarter returns the rub' containing page.
func ResolveQuarter(page int) Quarter {
	n := containing(quarterStarts[:], page)
	if n == 0 {
		n = 1
	}
	return Quarter{Number: n, Position: quarterPosition(n)}
}

// IsJuzStart reports the juz beginning exactly on page.
func IsJuzStart(page int) (int, bool) {
	return exact(juzStarts[:], page)
}

// IsHizbStart reports the hizb beginning exactly on page.
func IsHizbStart(page int) (int, bool) {
	return exact(hizbStarts[:], page)
}

// IsQuarterStart reports the rub' beginning exactly on page.
func IsQuarterStart(page int) (Quarter, bool) {
	n, ok := exact(quarterStarts[:], page)
	if !ok {
		return Quarter{}, false
	}
	return Quarter{Number: n, Position: quarterPosition(n)}, true
}

func quarterPosition(n int) int {
	return ((n - 1) % 4) + 1
}

func HasSajda(page int) bool {
	_, ok := SajdaForPage(page)
	return ok
}

func SajdaForPage(page int) (Sajda, bool) {
	for _, s := range sajdas {
		if s.Page == page {
			return s, true
		}
	}
	return Sajda{}, false
}

func SurahStart(n int) (int, error) {
	return startOf(surahStarts[:], n, "surah")
}

func JuzStart(n int) (int, error) {
	return startOf(juzStarts[:], n, "juz")
}

func HizbStart(n int) (int, error) {
	return startOf(hizbStarts[:], n, "hizb")
}

func QuarterStart(n int) (int, error) {
	return startOf(quarterStarts[:], n, "quarter")
}

func startOf(starts []int, n int, what string) (int, error) {
	if n < 1 || n > len(starts) {
		return 0, fmt.Errorf("%s %d: %w", what, n, ErrOutOfRange)
	}
	return starts[n-1], nil
}

// Locate computes every breadcrumb for page. Each fact is independent: a page
// can be a juz, hizb and quarter start at once.
func Locate(page int) Position {
	pos := Position{
		Page: page,
		Juz:  ResolveJuz(page),
		Hizb: ResolveHizb(page),
	}
	if s, ok := ResolveSurah(page); ok {
		pos.Surah = &s
	}
	_, pos.JuzStart = IsJuzStart(page)
	if h, ok := IsHizbStart(page); ok {
		pos.HizbStart = &h
	}
	if q, ok := IsQuarterStart(page); ok {
		pos.QuarterStart = &q
	}
	if s, ok := SajdaForPage(page); ok {
		pos.Sajda = &s
	}
	return pos
}
