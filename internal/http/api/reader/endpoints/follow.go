package endpoints

import (
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/rafiq/internal/broadcast"
	"github.com/Nixie-Tech-LLC/rafiq/internal/http/api"
	"github.com/Nixie-Tech-LLC/rafiq/internal/http/api/reader/packets"
	"github.com/Nixie-Tech-LLC/rafiq/internal/model"
	"github.com/Nixie-Tech-LLC/rafiq/internal/session"
)

// FollowModule lets a reader hand out a follow code (JWT required).
func FollowModule(sessions *session.Manager) api.Module {
	ctl := newReaderController(sessions)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/reader/follow_code", ctl.issueFollowCode)
	})
}

// FollowPublicModule lets a second device redeem a code without logging in.
func FollowPublicModule(sessions *session.Manager) api.Module {
	ctl := newReaderController(sessions)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/follow/claim", ctl.claimFollowCode)
	})
}

// POST /api/reader/follow_code
func (r *ReaderController) issueFollowCode(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	code, err := r.sessions.IssueFollowCode(ctx.Request.Context(), user.ID)
	if err != nil {
		return nil, toAPIError(err, user.ID)
	}
	return packets.FollowCodeResponse{Code: code, ExpiresIn: int(session.FollowCodeTTL.Seconds())}, nil
}

// POST /api/follow/claim
func (r *ReaderController) claimFollowCode(ctx *gin.Context) (any, *api.APIError) {
	var request packets.ClaimFollowRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	userID, err := r.sessions.ClaimFollowCode(ctx.Request.Context(), request.Code)
	if err != nil {
		return nil, toAPIError(err, 0)
	}

	out := packets.FollowClaimResponse{Topic: broadcast.Topic(userID)}
	err = r.sessions.View(ctx.Request.Context(), userID, func(s *session.Session) error {
		out.State = packets.NewStateResponse(s)
		return nil
	})
	if err != nil {
		return nil, toAPIError(err, userID)
	}
	return out, nil
}
