package packets

// Page is a pointer so that 0 reaches the navigator and is refused there.
type GoToPageRequest struct {
	Page *int `json:"page" binding:"required"`
}

// Direction is "forward"/"next" or "backward"/"previous", in reading order.
type StepRequest struct {
	Direction string `json:"direction" binding:"required"`
}

type EditionRequest struct {
	Edition string `json:"edition" binding:"required"`
}

type ViewModeRequest struct {
	ViewMode string `json:"view_mode" binding:"required"`
}

type ZoomRequest struct {
	Zoom *int `json:"zoom" binding:"required"`
}

type LanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

// UpdateSettingsRequest is a partial update; nil fields are left alone.
type UpdateSettingsRequest struct {
	FontSize           *int     `json:"font_size"`
	NightMode          *bool    `json:"night_mode"`
	ShowTranslation    *bool    `json:"show_translation"`
	ShowTafsir         *bool    `json:"show_tafsir"`
	ShowTashkeel       *bool    `json:"show_tashkeel"`
	TranslationEdition *string  `json:"translation_edition"`
	TafsirEdition      *string  `json:"tafsir_edition"`
	AutoScroll         *bool    `json:"auto_scroll"`
	AudioSync          *bool    `json:"audio_sync"`
	ReciterID          *int     `json:"reciter_id"`
	PlaybackRate       *float64 `json:"playback_rate"`
	Volume             *float64 `json:"volume"`
}

// AddBookmarkRequest bookmarks Page, or the current page when it is omitted.
type AddBookmarkRequest struct {
	Page *int   `json:"page"`
	Ayah int    `json:"ayah" binding:"omitempty,min=1,max=286"`
	Note string `json:"note" binding:"max=500"`
}

type UpdateNoteRequest struct {
	Note string `json:"note" binding:"max=500"`
}

type ClaimFollowRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}
