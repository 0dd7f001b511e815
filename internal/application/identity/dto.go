package identity

import (
	"time"

	"github.com/google/uuid"
)

// RegisterUserInput contains the input for customer registration
type RegisterUserInput struct {
	Username string
	Email    string
	Password string
}

// RegisterStoreInput contains the input for store registration.
// It creates the owning account and the store in one step.
type RegisterStoreInput struct {
	Username  string
	Email     string
	Password  string
	StoreName string
	Location  string
	Contact   string
}

// LoginInput contains the input for customer login (by email)
type LoginInput struct {
	Email    string
	Password string
}

// StoreLoginInput contains the input for store admin login (by username)
type StoreLoginInput struct {
	Username string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic account information returned after login
type UserInfo struct {
	ID       uuid.UUID
	Username string
	Email    string
	Role     string
}

// StoreInfo contains basic store information returned after registration
type StoreInfo struct {
	ID       uuid.UUID
	Name     string
	Location string
	Contact  string
}

// RegisterUserResult contains the result of customer registration
type RegisterUserResult struct {
	User UserInfo
}

// RegisterStoreResult contains the result of store registration
type RegisterStoreResult struct {
	User  UserInfo
	Store StoreInfo
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for logout. TokenJTI and TokenTTL
// identify the access token to revoke for its remaining lifetime.
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string
	TokenTTL time.Duration
}

// GetCurrentUserInput contains the input for getting current user info
type GetCurrentUserInput struct {
	UserID uuid.UUID
}

// CurrentUserResult contains the current user's information
type CurrentUserResult struct {
	User UserInfo
}
