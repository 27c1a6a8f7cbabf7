package endpoints

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/rafiq/internal/db"
	"github.com/Nixie-Tech-LLC/rafiq/internal/http/api"
	"github.com/Nixie-Tech-LLC/rafiq/internal/http/api/auth/packets"
)

const testSecret = "test-secret"

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.OpenMigrated("sqlite://:memory:", "../../../../../migrations")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	store := db.NewStore(conn)

	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api"}, AuthPublicModule(testSecret, store))
	api.MountGroup(r, api.GroupConfig{Prefix: "/api", Auth: true, SecretKey: testSecret, Store: store},
		AuthSessionModule(testSecret, store))
	return r
}

func call(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tokenFrom(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp packets.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestSignupLoginProfile(t *testing.T) {
	r := newRouter(t)

	w := call(r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email": "Reader@Example.com", "password": "password123", "name": "Reader",
	})
	tokenFrom(t, w)

	w = call(r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email": "reader@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "reader@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := tokenFrom(t, call(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "reader@example.com", "password": "password123",
	}))

	w = call(r, http.MethodGet, "/api/auth/current_profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile packets.ProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "reader@example.com", profile.Email)
	require.NotNil(t, profile.Name)
	assert.Equal(t, "Reader", *profile.Name)

	w = call(r, http.MethodPut, "/api/auth/current_profile", token, gin.H{
		"email": "new@example.com", "name": "Renamed",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "new@example.com", profile.Email)
}

func TestSignupValidation(t *testing.T) {
	r := newRouter(t)

	w := call(r, http.MethodPost, "/api/auth/signup", "", gin.H{"email": "not-an-email", "password": "password123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(r, http.MethodPost, "/api/auth/signup", "", gin.H{"email": "a@example.com", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileRequiresToken(t *testing.T) {
	r := newRouter(t)
	w := call(r, http.MethodGet, "/api/auth/current_profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
