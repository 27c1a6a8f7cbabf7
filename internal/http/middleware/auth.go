package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nixie-Tech-LLC/rafiq/internal/model"
)

const currentUserKey = "currentUser"

// ErrInvalidCredentials is returned when email/password don’t match.
var ErrInvalidCredentials = errors.New("invalid email or password")

// CredentialLookup finds a user by login email. db.Store satisfies it.
type CredentialLookup interface {
	GetUserByEmail(email string) (*model.User, error)
}

// uses bcrypt to hash a plaintext password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// compares a bcrypt hash with the plaintext.
func CheckPassword(hash, plain string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	return err == nil
}

// Authenticate returns the user behind email if plain matches. Unknown
// emails and wrong passwords give the same error.
func Authenticate(users CredentialLookup, email, plain string) (*model.User, error) {
	user, err := users.GetUserByEmail(email)
	if err != nil || user == nil || !CheckPassword(user.HashedPassword, plain) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// retrieves *model.User from Gin context (after JWTMiddleware has run).
func GetCurrentUser(c *gin.Context) (*model.User, bool) {
	u, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := u.(*model.User)
	return user, ok
}
