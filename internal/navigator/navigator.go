package navigator

import (
	"errors"
	"fmt"

	"github.com/Nixie-Tech-LLC/rafiq/internal/edition"
	"github.com/Nixie-Tech-LLC/rafiq/internal/model"
	"github.com/Nixie-Tech-LLC/rafiq/internal/mushaf"
)

var (
	// ErrNonCanonicalEdition is returned by the surah/juz/hizb jumps when the
	// active edition does not paginate like the 604-page Madinah print.
	ErrNonCanonicalEdition = errors.New("navigator: edition does not follow the canonical pagination")
	ErrInvalidViewMode     = errors.New("navigator: invalid view mode")
)

// Direction is the visual reading direction.
type Direction int

const (
	RTL Direction = iota
	LTR
)

func (d Direction) String() string {
	if d == LTR {
		return "ltr"
	}
	return "rtl"
}

// DirectionForLanguage maps a UI language to its reading direction.
func DirectionForLanguage(lang string) Direction {
	if lang == "ar" {
		return RTL
	}
	return LTR
}

// Step is a visual movement, independent of page numbering.
type Step int

const (
	Forward Step = iota
	Backward
)

// ParseStep accepts "forward"/"next" and "backward"/"previous".
func ParseStep(s string) (Step, error) {
	switch s {
	case "forward", "next":
		return Forward, nil
	case "backward", "previous", "prev":
		return Backward, nil
	}
	return 0, fmt.Errorf("navigator: unknown step %q", s)
}

// Recorder is told about every accepted page change.
type Recorder interface {
	RecordVisit(page int)
}

type ZoomRange struct {
	Min, Max int
}

var DefaultZoom = ZoomRange{Min: 50, Max: 200}

// State is the navigator's observable state.
type State struct {
	Page      int
	Edition   edition.Edition
	ViewMode  model.ViewMode
	Zoom      int
	Direction Direction
}

// Breadcrumb is the resolver output for the current page.
type Breadcrumb struct {
	mushaf.Position
	// Approximate is set when the edition's pages are not canonical pages,
	// so the tables only give a rough location.
	Approximate bool `json:"approximate"`
}

// Navigator owns the current page. Every method leaves the state valid: the
// page is always inside the current edition's bounds.
type Navigator struct {
	state    State
	zoom     ZoomRange
	recorder Recorder
}

// New starts at page in ed, clamped into its bounds. recorder may be nil.
func New(ed edition.Edition, page int, recorder Recorder, zoom ZoomRange) *Navigator {
	return &Navigator{
		state: State{
			Page:      edition.ClampPage(ed, page),
			Edition:   ed,
			ViewMode:  model.ViewSingle,
			Zoom:      clamp(100, zoom.Min, zoom.Max),
			Direction: RTL,
		},
		zoom:     zoom,
		recorder: recorder,
	}
}

func (n *Navigator) State() State {
	return n.state
}

func (n *Navigator) Page() int {
	return n.state.Page
}

// GoToPage moves to page. Out-of-bounds targets are refused and reported
// false; the UI is expected to have disabled the control.
func (n *Navigator) GoToPage(page int) bool {
	if !n.state.Edition.Contains(page) {
		return false
	}
	n.state.Page = page
	if n.recorder != nil {
		n.recorder.RecordVisit(page)
	}
	return true
}

// stepTarget turns a visual step into a page number. Mushaf pages run right
// to left, so moving visually forward in RTL lowers the page number.
func (n *Navigator) stepTarget(s Step) int {
	size := 1
	if n.state.ViewMode == model.ViewDouble {
		size = 2
	}
	delta := size
	if n.state.Direction == RTL {
		delta = -delta
	}
	if s == Backward {
		delta = -delta
	}
	return n.state.Page + delta
}

func (n *Navigator) Step(s Step) bool {
	return n.GoToPage(n.stepTarget(s))
}

// CanStep reports whether Step(s) would move.
func (n *Navigator) CanStep(s Step) bool {
	return n.state.Edition.Contains(n.stepTarget(s))
}

func (n *Navigator) First() bool {
	return n.GoToPage(n.state.Edition.StartPage)
}

func (n *Navigator) Last() bool {
	return n.GoToPage(n.state.Edition.EndPage)
}

func (n *Navigator) JumpToSurah(number int) (bool, error) {
	return n.jump(mushaf.SurahStart, number)
}

func (n *Navigator) JumpToJuz(number int) (bool, error) {
	return n.jump(mushaf.JuzStart, number)
}

func (n *Navigator) JumpToHizb(number int) (bool, error) {
	return n.jump(mushaf.HizbStart, number)
}

func (n *Navigator) jump(start func(int) (int, error), number int) (bool, error) {
	if !n.state.Edition.Canonical() {
		return false, fmt.Errorf("%w: %s", ErrNonCanonicalEdition, n.state.Edition.ID)
	}
	page, err := start(number)
	if err != nil {
		return false, err
	}
	return n.GoToPage(page), nil
}

// ChangeEdition switches editions and re-clamps the page. The surah on screen
// is not preserved when the editions paginate differently.
func (n *Navigator) ChangeEdition(id edition.ID) error {
	ed, err := edition.Lookup(id)
	if err != nil {
		return err
	}
	n.state.Edition = ed
	n.state.Page = edition.ClampPage(ed, n.state.Page)
	return nil
}

func (n *Navigator) SetViewMode(mode model.ViewMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidViewMode, mode)
	}
	n.state.ViewMode = mode
	return nil
}

// SetZoom clamps v into the configured range and returns the applied value.
func (n *Navigator) SetZoom(v int) int {
	n.state.Zoom = clamp(v, n.zoom.Min, n.zoom.Max)
	return n.state.Zoom
}

func (n *Navigator) SetDirection(d Direction) {
	n.state.Direction = d
}

// Visible lists the pages to render. The facing page is dropped at the end
// of the edition.
func (n *Navigator) Visible() []int {
	p := n.state.Page
	if n.state.ViewMode == model.ViewDouble && p+1 <= n.state.Edition.EndPage {
		return []int{p, p + 1}
	}
	return []int{p}
}

func (n *Navigator) Breadcrumb() Breadcrumb {
	return Breadcrumb{
		Position:    mushaf.Locate(n.state.Page),
		Approximate: !n.state.Edition.Canonical(),
	}
}

func (n *Navigator) ImageURLs() []string {
	pages := n.Visible()
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = edition.ImageURL(n.state.Edition, p)
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
