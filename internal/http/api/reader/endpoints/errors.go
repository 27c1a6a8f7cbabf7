package endpoints

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/rafiq/internal/edition"
	"github.com/Nixie-Tech-LLC/rafiq/internal/http/api"
	"github.com/Nixie-Tech-LLC/rafiq/internal/mushaf"
	"github.com/Nixie-Tech-LLC/rafiq/internal/navigator"
	"github.com/Nixie-Tech-LLC/rafiq/internal/session"
)

// toAPIError maps domain errors onto status codes. Anything unknown is
// logged and hidden behind a 500.
func toAPIError(err error, userID int) *api.APIError {
	var apiErr *api.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, navigator.ErrNonCanonicalEdition):
		return &api.APIError{Code: http.StatusConflict, Message: "this edition does not support surah, juz or hizb jumps"}
	case errors.Is(err, mushaf.ErrOutOfRange),
		errors.Is(err, edition.ErrUnknownEdition),
		errors.Is(err, navigator.ErrInvalidViewMode),
		errors.Is(err, session.ErrUnsupportedLanguage):
		return api.BadRequest(err.Error())
	case errors.Is(err, session.ErrUnknownFollowCode):
		return api.NotFound("unknown or expired follow code")
	case errors.Is(err, session.ErrFollowUnavailable):
		return &api.APIError{Code: http.StatusServiceUnavailable, Message: "following is not available on this server"}
	}
	log.Error().Err(err).Int("user_id", userID).Msg("[reader] request failed")
	return api.Internal("something went wrong, please try again")
}

func intParam(ctx *gin.Context, name string) (int, *api.APIError) {
	n, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, api.BadRequest("invalid " + name)
	}
	return n, nil
}
