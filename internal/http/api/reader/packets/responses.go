package packets

import (
	"time"

	"github.com/Nixie-Tech-LLC/rafiq/internal/edition"
	"github.com/Nixie-Tech-LLC/rafiq/internal/model"
	"github.com/Nixie-Tech-LLC/rafiq/internal/mushaf"
	"github.com/Nixie-Tech-LLC/rafiq/internal/navigator"
	"github.com/Nixie-Tech-LLC/rafiq/internal/session"
)

type EditionResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	NameArabic string `json:"name_arabic"`
	Rewayah    string `json:"rewayah"`
	StartPage  int    `json:"start_page"`
	EndPage    int    `json:"end_page"`
	PageCount  int    `json:"page_count"`
	Canonical  bool   `json:"canonical"`
}

func NewEditionResponse(e edition.Edition) EditionResponse {
	return EditionResponse{
		ID:         string(e.ID),
		Name:       e.Name,
		NameArabic: e.NameArabic,
		Rewayah:    e.Rewayah,
		StartPage:  e.StartPage,
		EndPage:    e.EndPage,
		PageCount:  e.PageCount(),
		Canonical:  e.Canonical(),
	}
}

type PageImageResponse struct {
	Edition string `json:"edition"`
	Page    int    `json:"page"`
	URL     string `json:"url"`
}

type PositionResponse struct {
	mushaf.Position
	QuarterBadge bool `json:"quarter_badge"`
}

func NewPositionResponse(p mushaf.Position) PositionResponse {
	return PositionResponse{Position: p, QuarterBadge: p.QuarterBadge()}
}

// StateResponse is what every reader endpoint answers with. Moved is only
// set by navigation calls; false means the move was refused and nothing
// changed.
type StateResponse struct {
	Moved           *bool                `json:"moved,omitempty"`
	Page            int                  `json:"page"`
	Edition         EditionResponse      `json:"edition"`
	ViewMode        string               `json:"view_mode"`
	Zoom            int                  `json:"zoom"`
	Direction       string               `json:"direction"`
	Language        string               `json:"language"`
	VisiblePages    []int                `json:"visible_pages"`
	ImageURLs       []string             `json:"image_urls"`
	CanStepForward  bool                 `json:"can_step_forward"`
	CanStepBackward bool                 `json:"can_step_backward"`
	Breadcrumb      navigator.Breadcrumb `json:"breadcrumb"`
	QuarterBadge    bool                 `json:"quarter_badge"`
	IsBookmarked    bool                 `json:"is_bookmarked"`
	LastReadPage    int                  `json:"last_read_page"`
}

func NewStateResponse(s *session.Session) StateResponse {
	nav := s.Navigator()
	st := nav.State()
	crumb := nav.Breadcrumb()
	return StateResponse{
		Page:            st.Page,
		Edition:         NewEditionResponse(st.Edition),
		ViewMode:        string(st.ViewMode),
		Zoom:            st.Zoom,
		Direction:       st.Direction.String(),
		Language:        s.Language(),
		VisiblePages:    nav.Visible(),
		ImageURLs:       nav.ImageURLs(),
		CanStepForward:  nav.CanStep(navigator.Forward),
		CanStepBackward: nav.CanStep(navigator.Backward),
		Breadcrumb:      crumb,
		QuarterBadge:    crumb.QuarterBadge(),
		IsBookmarked:    s.Library().IsBookmarked(st.Page),
		LastReadPage:    s.Library().LastRead(),
	}
}

type BookmarkResponse struct {
	Page      int           `json:"page"`
	Surah     *mushaf.Surah `json:"surah,omitempty"`
	Ayah      int           `json:"ayah,omitempty"`
	Note      string        `json:"note"`
	CreatedAt string        `json:"created_at"`
}

func NewBookmarkResponses(in []model.Bookmark) []BookmarkResponse {
	out := make([]BookmarkResponse, 0, len(in))
	for _, b := range in {
		r := BookmarkResponse{Page: b.Page, Ayah: b.Ayah, Note: b.Note, CreatedAt: b.CreatedAt.Format(time.RFC3339)}
		if sr, err := mushaf.SurahByNumber(b.Surah); err == nil {
			r.Surah = &sr
		}
		out = append(out, r)
	}
	return out
}

type HistoryEntryResponse struct {
	Page      int    `json:"page"`
	VisitedAt string `json:"visited_at"`
}

type HistoryResponse struct {
	LastReadPage int                    `json:"last_read_page"`
	Entries      []HistoryEntryResponse `json:"entries"`
}

func NewHistoryResponse(lastRead int, in []model.HistoryEntry) HistoryResponse {
	out := HistoryResponse{LastReadPage: lastRead, Entries: make([]HistoryEntryResponse, 0, len(in))}
	for _, h := range in {
		out.Entries = append(out.Entries, HistoryEntryResponse{Page: h.Page, VisitedAt: h.VisitedAt.Format(time.RFC3339)})
	}
	return out
}

type BackupResponse struct {
	Location  string `json:"location"`
	CreatedAt string `json:"created_at"`
}

type FollowCodeResponse struct {
	Code      string `json:"code"`
	ExpiresIn int    `json:"expires_in"`
}

type FollowClaimResponse struct {
	Topic string        `json:"topic"`
	State StateResponse `json:"state"`
}
