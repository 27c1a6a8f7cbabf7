package endpoints

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/rafiq/internal/db"
	"github.com/Nixie-Tech-LLC/rafiq/internal/http/api"
	"github.com/Nixie-Tech-LLC/rafiq/internal/http/api/auth/packets"
	"github.com/Nixie-Tech-LLC/rafiq/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/rafiq/internal/model"
)

// AuthPublicModule mounts public auth endpoints (/auth/signup, /auth/login)
func AuthPublicModule(jwtSecret string, store db.Store) api.Module {
	ctl := newAccountManager(jwtSecret, store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/auth/signup", ctl.userSignup)
		c.PUBLIC_POST("/auth/login", ctl.userLogin)
	})
}

// AuthSessionModule mounts private session/profile endpoints (JWT required)
func AuthSessionModule(jwtSecret string, store db.Store) api.Module {
	ctl := newAccountManager(jwtSecret, store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/auth/current_profile", ctl.getCurrentProfile)
		c.PUT("/auth/current_profile", ctl.updateCurrentProfile)
	})
}

type AccountManager struct {
	jwtSecret string
	store     db.Store
}

func newAccountManager(secret string, store db.Store) *AccountManager {
	return &AccountManager{jwtSecret: secret, store: store}
}

func (a *AccountManager) issueToken(userID int) (any, *api.APIError) {
	token, err := middleware.GenerateJWT(userID, a.jwtSecret)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("[auth] could not sign token")
		return nil, api.Internal("could not generate token")
	}
	return packets.TokenResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(middleware.TokenTTL).UTC().Format(time.RFC3339),
	}, nil
}

// POST /api/auth/signup
func (a *AccountManager) userSignup(ctx *gin.Context) (any, *api.APIError) {
	var request packets.SignupRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	email := strings.ToLower(strings.TrimSpace(request.Email))

	if existing, _ := a.store.GetUserByEmail(email); existing != nil {
		log.Warn().Str("email", email).Msg("[auth] signup email already registered")
		return nil, &api.APIError{Code: http.StatusConflict, Message: "email already registered"}
	}

	hashed, err := middleware.HashPassword(request.Password)
	if err != nil {
		return nil, api.Internal("could not hash password")
	}

	userID, err := a.store.CreateUser(email, hashed, request.Name)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("[auth] could not create user")
		return nil, api.Internal("could not create user")
	}

	return a.issueToken(userID)
}

// POST /api/auth/login
func (a *AccountManager) userLogin(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	user, err := middleware.Authenticate(a.store, strings.ToLower(strings.TrimSpace(request.Email)), request.Password)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "invalid credentials"}
	}

	return a.issueToken(user.ID)
}

// GET /api/auth/current_profile
func (a *AccountManager) getCurrentProfile(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return packets.NewProfileResponse(user), nil
}

// PUT /api/auth/current_profile
func (a *AccountManager) updateCurrentProfile(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.UpdateCurrentProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	email := strings.ToLower(strings.TrimSpace(request.Email))

	if email != user.Email {
		if other, _ := a.store.GetUserByEmail(email); other != nil {
			return nil, &api.APIError{Code: http.StatusConflict, Message: "email already in use"}
		}
	}

	if err := a.store.UpdateUserProfile(user.ID, email, request.Name); err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("[auth] could not update profile")
		return nil, api.Internal("could not update profile")
	}

	updated, err := a.store.GetUserByID(user.ID)
	if err != nil {
		return nil, api.Internal("could not fetch updated profile")
	}

	return packets.NewProfileResponse(updated), nil
}
