package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/web2print/backend/internal/domain/identity"
	"github.com/web2print/backend/internal/domain/shared"
	"github.com/web2print/backend/internal/domain/store"
	"github.com/web2print/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles registration and authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	txScope    TransactionScope
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	txScope TransactionScope,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		txScope:    txScope,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// RegisterUser creates a new customer account
func (s *AuthService) RegisterUser(ctx context.Context, input RegisterUserInput) (*RegisterUserResult, error) {
	if err := s.checkAvailability(ctx, input.Username, input.Email); err != nil {
		return nil, err
	}

	user, err := identity.NewUser(input.Username, input.Email, input.Password, identity.RoleUser)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("failed to create account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create account")
	}

	s.logger.Info("customer registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &RegisterUserResult{User: toUserInfo(user)}, nil
}

// RegisterStore creates a store admin account and its store atomically
func (s *AuthService) RegisterStore(ctx context.Context, input RegisterStoreInput) (*RegisterStoreResult, error) {
	if err := s.checkAvailability(ctx, input.Username, input.Email); err != nil {
		return nil, err
	}

	user, err := identity.NewUser(input.Username, input.Email, input.Password, identity.RoleStoreAdmin)
	if err != nil {
		return nil, err
	}

	st, err := store.NewStore(input.StoreName, input.Location, input.Contact)
	if err != nil {
		return nil, err
	}
	if err := st.AssignAdmin(user.ID); err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.UserRepo().Create(ctx, user); err != nil {
			return err
		}
		return repos.StoreRepo().Save(ctx, st)
	})
	if err != nil {
		s.logger.Error("failed to register store", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register store")
	}

	s.logger.Info("store registered",
		zap.String("user_id", user.ID.String()),
		zap.String("store_id", st.ID.String()),
		zap.String("store_name", st.Name))

	return &RegisterStoreResult{
		User: toUserInfo(user),
		Store: StoreInfo{
			ID:       st.ID,
			Name:     st.Name,
			Location: st.Location,
			Contact:  st.Contact,
		},
	}, nil
}

// Login authenticates a customer by email and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("login attempt for unknown email", zap.String("email", email))
		return nil, shared.ErrInvalidCredentials
	}

	return s.completeLogin(ctx, user, input.Password)
}

// LoginStore authenticates a store admin by username and returns tokens
func (s *AuthService) LoginStore(ctx context.Context, input StoreLoginInput) (*LoginResult, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Warn("store login attempt for unknown username", zap.String("username", username))
		return nil, shared.ErrInvalidCredentials
	}

	if !user.IsStoreAdmin() {
		s.logger.Warn("store login attempt by non-admin account", zap.String("username", username))
		return nil, shared.ErrInvalidCredentials
	}

	return s.completeLogin(ctx, user, input.Password)
}

// completeLogin verifies the password and issues a token pair
func (s *AuthService) completeLogin(ctx context.Context, user *identity.User, password string) (*LoginResult, error) {
	if !user.VerifyPassword(password) {
		s.logger.Warn("invalid password attempt", zap.String("username", user.Username))
		return nil, shared.ErrInvalidCredentials
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role.String(),
	})
	if err != nil {
		s.logger.Error("failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLogin()
	if err := s.userRepo.Update(ctx, user); err != nil {
		// Don't fail the login, the tokens are already issued
		s.logger.Error("failed to record login time", zap.Error(err))
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  toUserInfo(user),
	}, nil
}

// RefreshToken refreshes the access token using a valid refresh token
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		switch err {
		case auth.ErrExpiredToken:
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
		case auth.ErrMaxRefreshExceeded:
			return nil, shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
		default:
			return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
		}
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	// Re-read the account so role changes take effect on refresh
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("token refresh for unknown account", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, user.Username, user.Role.String())
	if err != nil {
		switch err {
		case auth.ErrExpiredToken:
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
		case auth.ErrMaxRefreshExceeded:
			return nil, shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
		default:
			return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
		}
	}

	s.logger.Info("token refreshed", zap.String("user_id", userID.String()))

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout revokes the current access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI == "" || input.TokenTTL <= 0 {
		return nil
	}

	if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, input.TokenTTL); err != nil {
		s.logger.Error("failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
	}

	s.logger.Info("user logged out", zap.String("user_id", input.UserID.String()))
	return nil
}

// GetCurrentUser retrieves the current account's information
func (s *AuthService) GetCurrentUser(ctx context.Context, input GetCurrentUserInput) (*CurrentUserResult, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	return &CurrentUserResult{User: toUserInfo(user)}, nil
}

// checkAvailability rejects registration when the username or email is taken
func (s *AuthService) checkAvailability(ctx context.Context, username, email string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))

	taken, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("failed to check email availability", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check registration details")
	}
	if taken {
		return shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
	}

	taken, err = s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		s.logger.Error("failed to check username availability", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check registration details")
	}
	if taken {
		return shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	return nil
}

func toUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role.String(),
	}
}
