package model

import "time"

type ViewMode string

const (
	ViewSingle ViewMode = "single"
	ViewDouble ViewMode = "double"
)

func (m ViewMode) Valid() bool {
	return m == ViewSingle || m == ViewDouble
}

// Bookmark is a user-placed page marker. One per page.
type Bookmark struct {
	Page      int       `json:"page"`
	Surah     int       `json:"surah,omitempty"`
	Ayah      int       `json:"ayah,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryEntry is a single page visit; the log keeps one entry per page.
type HistoryEntry struct {
	Page      int       `json:"page"`
	VisitedAt time.Time `json:"visited_at"`
}

// Settings are display preferences carried along with the reader state.
type Settings struct {
	FontSize           int     `json:"font_size"`
	NightMode          bool    `json:"night_mode"`
	ShowTranslation    bool    `json:"show_translation"`
	ShowTafsir         bool    `json:"show_tafsir"`
	ShowTashkeel       bool    `json:"show_tashkeel"`
	TranslationEdition string  `json:"translation_edition"`
	TafsirEdition      string  `json:"tafsir_edition"`
	AutoScroll         bool    `json:"auto_scroll"`
	AudioSync          bool    `json:"audio_sync"`
	ReciterID          *int    `json:"reciter_id,omitempty"`
	PlaybackRate       float64 `json:"playback_rate"`
	Volume             float64 `json:"volume"`
}

func DefaultSettings() Settings {
	return Settings{
		FontSize:           24,
		ShowTashkeel:       true,
		TranslationEdition: "en.sahih",
		TafsirEdition:      "ar.muyassar",
		AutoScroll:         true,
		AudioSync:          true,
		PlaybackRate:       1,
		Volume:             1,
	}
}

// ReaderState is the single persisted record per reader.
type ReaderState struct {
	Page         int            `json:"page"`
	Edition      string         `json:"edition"`
	ViewMode     ViewMode       `json:"view_mode"`
	Zoom         int            `json:"zoom"`
	Language     string         `json:"language"`
	Bookmarks    []Bookmark     `json:"bookmarks"`
	LastReadPage int            `json:"last_read_page"`
	History      []HistoryEntry `json:"history"`
	Settings     Settings       `json:"settings"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// DefaultReaderState is what a reader starts with before anything is saved.
func DefaultReaderState() ReaderState {
	return ReaderState{
		Page:         1,
		Edition:      "medina",
		ViewMode:     ViewSingle,
		Zoom:         100,
		Language:     "ar",
		Bookmarks:    []Bookmark{},
		LastReadPage: 1,
		History:      []HistoryEntry{},
		Settings:     DefaultSettings(),
	}
}
