package endpoints

import (
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/rafiq/internal/edition"
	"github.com/Nixie-Tech-LLC/rafiq/internal/http/api"
	"github.com/Nixie-Tech-LLC/rafiq/internal/http/api/reader/packets"
	"github.com/Nixie-Tech-LLC/rafiq/internal/model"
	"github.com/Nixie-Tech-LLC/rafiq/internal/navigator"
	"github.com/Nixie-Tech-LLC/rafiq/internal/session"
)

type ReaderController struct {
	sessions *session.Manager
}

func newReaderController(sessions *session.Manager) *ReaderController {
	return &ReaderController{sessions: sessions}
}

// ReaderModule mounts the authenticated /reader navigation and preference
// endpoints.
func ReaderModule(sessions *session.Manager) api.Module {
	ctl := newReaderController(sessions)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/reader/state", ctl.getState)
		c.DELETE("/reader/state", ctl.resetState)

		// navigation
		c.POST("/reader/page", ctl.goToPage)
		c.POST("/reader/step", ctl.step)
		c.POST("/reader/first", ctl.first)
		c.POST("/reader/last", ctl.last)
		c.POST("/reader/resume", ctl.resume)
		c.POST("/reader/surah/:number", ctl.jumpToSurah)
		c.POST("/reader/juz/:number", ctl.jumpToJuz)
		c.POST("/reader/hizb/:number", ctl.jumpToHizb)

		// preferences
		c.PUT("/reader/edition", ctl.changeEdition)
		c.PUT("/reader/view_mode", ctl.setViewMode)
		c.PUT("/reader/zoom", ctl.setZoom)
		c.PUT("/reader/language", ctl.setLanguage)
		c.GET("/reader/settings", ctl.getSettings)
		c.PUT("/reader/settings", ctl.updateSettings)
	})
}

// update applies fn to the reader's session, saves it, and answers with
// the resulting state.
func (r *ReaderController) update(ctx *gin.Context, user *model.User, fn func(*session.Session) error) (any, *api.APIError) {
	var out packets.StateResponse
	err := r.sessions.Update(ctx.Request.Context(), user.ID, func(s *session.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		out = packets.NewStateResponse(s)
		return nil
	})
	if err != nil {
		return nil, toAPIError(err, user.ID)
	}
	return out, nil
}

// move is update for navigation that may be refused. A refused move is not
// an error; the response carries moved=false and nothing is saved.
func (r *ReaderController) move(ctx *gin.Context, user *model.User, fn func(*navigator.Navigator) (bool, error)) (any, *api.APIError) {
	return r.moveSession(ctx, user, func(s *session.Session) (bool, error) {
		return fn(s.Navigator())
	})
}

func (r *ReaderController) moveSession(ctx *gin.Context, user *model.User, fn func(*session.Session) (bool, error)) (any, *api.APIError) {
	var out packets.StateResponse
	err := r.sessions.Update(ctx.Request.Context(), user.ID, func(s *session.Session) error {
		moved, err := fn(s)
		if err != nil {
			return err
		}
		out = packets.NewStateResponse(s)
		out.Moved = &moved
		if !moved {
			return session.ErrUnchanged
		}
		return nil
	})
	if err != nil {
		return nil, toAPIError(err, user.ID)
	}
	return out, nil
}

// GET /api/reader/state
func (r *ReaderController) getState(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var out packets.StateResponse
	err := r.sessions.View(ctx.Request.Context(), user.ID, func(s *session.Session) error {
		out = packets.NewStateResponse(s)
		return nil
	})
	if err != nil {
		return nil, toAPIError(err, user.ID)
	}
	return out, nil
}

// DELETE /api/reader/state
func (r *ReaderController) resetState(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if err := r.sessions.Reset(ctx.Request.Context(), user.ID); err != nil {
		return nil, toAPIError(err, user.ID)
	}
	return r.getState(ctx, user)
}

// POST /api/reader/page
func (r *ReaderController) goToPage(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.GoToPageRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	return r.move(ctx, user, func(n *navigator.Navigator) (bool, error) {
		return n.GoToPage(*request.Page), nil
	})
}

// POST /api/reader/step
func (r *ReaderController) step(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.StepRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	s, err := navigator.ParseStep(request.Direction)
	if err != nil {
		return nil, api.BadRequest(err.Error())
	}
	return r.move(ctx, user, func(n *navigator.Navigator) (bool, error) {
		return n.Step(s), nil
	})
}

// POST /api/reader/first
func (r *ReaderController) first(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return r.move(ctx, user, func(n *navigator.Navigator) (bool, error) {
		return n.First(), nil
	})
}

// POST /api/reader/last
func (r *ReaderController) last(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return r.move(ctx, user, func(n *navigator.Navigator) (bool, error) {
		return n.Last(), nil
	})
}

// POST /api/reader/resume
func (r *ReaderController) resume(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return r.moveSession(ctx, user, func(s *session.Session) (bool, error) {
		return s.Resume(), nil
	})
}

func (r *ReaderController) jump(ctx *gin.Context, user *model.User, fn func(*navigator.Navigator, int) (bool, error)) (any, *api.APIError) {
	number, apiErr := intParam(ctx, "number")
	if apiErr != nil {
		return nil, apiErr
	}
	return r.move(ctx, user, func(n *navigator.Navigator) (bool, error) {
		return fn(n, number)
	})
}

// POST /api/reader/surah/:number
func (r *ReaderController) jumpToSurah(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return r.jump(ctx, user, (*navigator.Navigator).JumpToSurah)
}

// POST /api/reader/juz/:number
func (r *ReaderController) jumpToJuz(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return r.jump(ctx, user, (*navigator.Navigator).JumpToJuz)
}

// POST /api/reader/hizb/:number
func (r *ReaderController) jumpToHizb(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return r.jump(ctx, user, (*navigator.Navigator).JumpToHizb)
}

// PUT /api/reader/edition
func (r *ReaderController) changeEdition(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.EditionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	return r.update(ctx, user, func(s *session.Session) error {
		return s.Navigator().ChangeEdition(edition.ID(request.Edition))
	})
}

// PUT /api/reader/view_mode
func (r *ReaderController) setViewMode(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.ViewModeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	return r.update(ctx, user, func(s *session.Session) error {
		return s.Navigator().SetViewMode(model.ViewMode(request.ViewMode))
	})
}

// PUT /api/reader/zoom
func (r *ReaderController) setZoom(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.ZoomRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	return r.update(ctx, user, func(s *session.Session) error {
		s.Navigator().SetZoom(*request.Zoom)
		return nil
	})
}

// PUT /api/reader/language
func (r *ReaderController) setLanguage(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.LanguageRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	return r.update(ctx, user, func(s *session.Session) error {
		return s.SetLanguage(request.Language)
	})
}

// GET /api/reader/settings
func (r *ReaderController) getSettings(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var out model.Settings
	err := r.sessions.View(ctx.Request.Context(), user.ID, func(s *session.Session) error {
		out = s.Settings()
		return nil
	})
	if err != nil {
		return nil, toAPIError(err, user.ID)
	}
	return out, nil
}

// PUT /api/reader/settings
func (r *ReaderController) updateSettings(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	var out model.Settings
	err := r.sessions.Update(ctx.Request.Context(), user.ID, func(s *session.Session) error {
		out = s.SetSettings(applySettings(s.Settings(), request))
		return nil
	})
	if err != nil {
		return nil, toAPIError(err, user.ID)
	}
	return out, nil
}

func applySettings(cur model.Settings, req packets.UpdateSettingsRequest) model.Settings {
	if req.FontSize != nil {
		cur.FontSize = *req.FontSize
	}
	if req.NightMode != nil {
		cur.NightMode = *req.NightMode
	}
	if req.ShowTranslation != nil {
		cur.ShowTranslation = *req.ShowTranslation
	}
	if req.ShowTafsir != nil {
		cur.ShowTafsir = *req.ShowTafsir
	}
	if req.ShowTashkeel != nil {
		cur.ShowTashkeel = *req.ShowTashkeel
	}
	if req.TranslationEdition != nil {
		cur.TranslationEdition = *req.TranslationEdition
	}
	if req.TafsirEdition != nil {
		cur.TafsirEdition = *req.TafsirEdition
	}
	if req.AutoScroll != nil {
		cur.AutoScroll = *req.AutoScroll
	}
	if req.AudioSync != nil {
		cur.AudioSync = *req.AudioSync
	}
	if req.ReciterID != nil {
		id := *req.ReciterID
		cur.ReciterID = &id
	}
	if req.PlaybackRate != nil {
		cur.PlaybackRate = *req.PlaybackRate
	}
	if req.Volume != nil {
		cur.Volume = *req.Volume
	}
	return cur
}
