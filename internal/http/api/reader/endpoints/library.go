package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/rafiq/internal/http/api"
	"github.com/Nixie-Tech-LLC/rafiq/internal/http/api/reader/packets"
	"github.com/Nixie-Tech-LLC/rafiq/internal/model"
	"github.com/Nixie-Tech-LLC/rafiq/internal/session"
)

// LibraryModule mounts bookmark and history endpoints.
func LibraryModule(sessions *session.Manager) api.Module {
	ctl := newReaderController(sessions)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/reader/bookmarks", ctl.listBookmarks)
		c.POST("/reader/bookmarks", ctl.addBookmark)
		c.PUT("/reader/bookmarks/:page", ctl.updateBookmarkNote)
		c.DELETE("/reader/bookmarks/:page", ctl.removeBookmark)

		c.GET("/reader/history", ctl.getHistory)
		c.DELETE("/reader/history", ctl.clearHistory)
	})
}

var errNoSuchBookmark = &api.APIError{Code: http.StatusNotFound, Message: "page is not bookmarked"}

func (r *ReaderController) bookmarks(ctx *gin.Context, user *model.User, save bool, fn func(*session.Session) error) (any, *api.APIError) {
	var out []packets.BookmarkResponse
	run := r.sessions.View
	if save {
		run = r.sessions.Update
	}
	err := run(ctx.Request.Context(), user.ID, func(s *session.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		out = packets.NewBookmarkResponses(s.Library().Bookmarks())
		return nil
	})
	if err != nil {
		return nil, toAPIError(err, user.ID)
	}
	return out, nil
}

// GET /api/reader/bookmarks
func (r *ReaderController) listBookmarks(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return r.bookmarks(ctx, user, false, func(*session.Session) error { return nil })
}

// POST /api/reader/bookmarks
func (r *ReaderController) addBookmark(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.AddBookmarkRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	return r.bookmarks(ctx, user, true, func(s *session.Session) error {
		page := s.Navigator().Page()
		if request.Page != nil {
			page = *request.Page
		}
		added, err := s.AddBookmark(page, request.Ayah, request.Note)
		if err != nil {
			return err
		}
		if !added {
			return &api.APIError{Code: http.StatusConflict, Message: "page is already bookmarked"}
		}
		return nil
	})
}

// PUT /api/reader/bookmarks/:page
func (r *ReaderController) updateBookmarkNote(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	page, apiErr := intParam(ctx, "page")
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.UpdateNoteRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	return r.bookmarks(ctx, user, true, func(s *session.Session) error {
		if !s.Library().UpdateNote(page, request.Note) {
			return errNoSuchBookmark
		}
		return nil
	})
}

// DELETE /api/reader/bookmarks/:page
func (r *ReaderController) removeBookmark(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	page, apiErr := intParam(ctx, "page")
	if apiErr != nil {
		return nil, apiErr
	}
	return r.bookmarks(ctx, user, true, func(s *session.Session) error {
		if !s.Library().RemoveBookmark(page) {
			return errNoSuchBookmark
		}
		return nil
	})
}

func (r *ReaderController) history(ctx *gin.Context, user *model.User, reset bool) (any, *api.APIError) {
	var out packets.HistoryResponse
	run := r.sessions.View
	if reset {
		run = r.sessions.Update
	}
	err := run(ctx.Request.Context(), user.ID, func(s *session.Session) error {
		if reset {
			s.Library().ClearHistory()
		}
		out = packets.NewHistoryResponse(s.Library().LastRead(), s.Library().History())
		return nil
	})
	if err != nil {
		return nil, toAPIError(err, user.ID)
	}
	return out, nil
}

// GET /api/reader/history
func (r *ReaderController) getHistory(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return r.history(ctx, user, false)
}

// DELETE /api/reader/history
func (r *ReaderController) clearHistory(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return r.history(ctx, user, true)
}
