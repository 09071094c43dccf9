package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rentmoment/rental-api/internal/constants"
	"github.com/rentmoment/rental-api/internal/dto"
	apperrors "github.com/rentmoment/rental-api/internal/errors"
	"github.com/rentmoment/rental-api/internal/model"
	"github.com/rentmoment/rental-api/internal/repository"
	ctxutil "github.com/rentmoment/rental-api/pkg/context"
	"github.com/rentmoment/rental-api/pkg/listing"
	"github.com/rentmoment/rental-api/pkg/logger"
)

type UserService struct {
	repoUser   *repository.UserRepository
	jwtService *JWTService
	users      *listing.Service[model.User]
}

func NewUserService(repo *repository.UserRepository, jwtService *JWTService, opts listing.Options) *UserService {
	return &UserService{
		repoUser:   repo,
		jwtService: jwtService,
		users:      listing.New(repo.Listing(), opts),
	}
}

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Address:   user.Address,
		Role:      user.Role,
		IsActive:  user.IsActive,
		LastLogin: user.LastLogin,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// hashPassword hashes password using bcrypt
func (s *UserService) hashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedPassword), nil
}

// checkPassword verifies password against hash
func (s *UserService) checkPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// Register creates a user account and logs it in.
func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Register")

	email := normalizeEmail(req.Email)
	logger.InfoWithContext(ctx, "Registering new user").
		String("email", email).
		Log()

	if _, err := s.repoUser.GetByEmail(ctx, email); err == nil {
		logger.WarnWithContext(ctx, "Email already registered").
			String("email", email).
			Log()
		return nil, apperrors.ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	hashedPassword, err := s.hashPassword(req.Password)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to hash password").
			String("email", email).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Password:     hashedPassword,
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		Role:         constants.RoleUser,
		IsActive:     true,
		TokenVersion: 1,
	}

	if err := s.repoUser.Create(ctx, user); err != nil {
		return nil, repoError(err, nil, apperrors.ErrEmailExists)
	}

	return s.issueTokens(ctx, user)
}

// Login authenticates user and returns JWT + refresh token
func (s *UserService) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Login")

	email = normalizeEmail(email)
	user, err := s.repoUser.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.InfoWithContext(ctx, "Authentication failed: user not found").
				String("email", email).
				Log()
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !s.checkPassword(user.Password, password) {
		logger.WarnWithContext(ctx, "Authentication failed: incorrect password").
			String("email", email).
			Uint("user_id", user.ID).
			Log()
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		logger.WarnWithContext(ctx, "Authentication failed: account inactive").
			Uint("user_id", user.ID).
			Log()
		return nil, apperrors.ErrAccountInactive
	}

	if err := s.repoUser.UpdateLastLogin(ctx, user.ID); err != nil {
		// Continue even if update fails
		logger.WarnWithContext(ctx, "Failed to update last login timestamp").
			Uint("user_id", user.ID).
			Err(err).
			Log()
	} else {
		now := time.Now()
		user.LastLogin = &now
	}

	return s.issueTokens(ctx, user)
}

// issueTokens signs an access token for the user's current token version
// and stores a fresh refresh token hash.
func (s *UserService) issueTokens(ctx context.Context, user *model.User) (*dto.AuthResponse, error) {
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to generate JWT token").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	refreshToken, secret, err := s.jwtService.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	refreshTokenHash, err := s.jwtService.HashRefreshToken(secret)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	expires := time.Now().Add(s.jwtService.RefreshTTL())
	if err := s.repoUser.UpdateRefreshToken(ctx, user.ID, refreshTokenHash, &expires); err != nil {
		logger.ErrorWithContext(ctx, "Failed to store refresh token").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Tokens issued").
		Uint("user_id", user.ID).
		Int("token_version", user.TokenVersion).
		Log()

	return &dto.AuthResponse{
		Token:        token,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtService.AccessTTL().Seconds()),
		User:         toUserResponse(user),
	}, nil
}

// RefreshToken rotates the refresh token and invalidates earlier access tokens.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "RefreshToken")

	userID, secret, err := s.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		logger.WarnWithContext(ctx, "Malformed refresh token").
			Int("token_length", len(refreshToken)).
			Log()
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.repoUser.GetByID(ctx, userID)
	if err != nil {
		return nil, repoError(err, apperrors.ErrInvalidRefreshToken, nil)
	}

	if !s.jwtService.VerifyRefreshToken(secret, user.RefreshTokenHash) {
		logger.WarnWithContext(ctx, "Invalid refresh token").
			Uint("user_id", user.ID).
			Log()
		return nil, apperrors.ErrInvalidRefreshToken
	}

	if user.RefreshTokenExpires != nil && user.RefreshTokenExpires.Before(time.Now()) {
		logger.WarnWithContext(ctx, "Refresh token expired").
			Uint("user_id", user.ID).
			Log()
		_ = s.repoUser.UpdateRefreshToken(ctx, user.ID, "", nil)
		return nil, apperrors.ErrTokenExpired
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountInactive
	}

	user.TokenVersion++
	if err := s.repoUser.UpdateTokenVersion(ctx, user.ID, user.TokenVersion); err != nil {
		logger.ErrorWithContext(ctx, "Failed to update token version").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return s.issueTokens(ctx, user)
}

// Logout invalidates every access token and the refresh token of the user.
func (s *UserService) Logout(ctx context.Context, userID uint) error {
	ctx = ctxutil.WithFunction(ctx, "service", "Logout")

	user, err := s.repoUser.GetByID(ctx, userID)
	if err != nil {
		return repoError(err, apperrors.ErrUserNotFound, nil)
	}

	if err := s.repoUser.UpdateTokenVersion(ctx, userID, user.TokenVersion+1); err != nil {
		logger.ErrorWithContext(ctx, "Failed to update token version on logout").
			Uint("user_id", userID).
			Err(err).
			Log()
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.repoUser.UpdateRefreshToken(ctx, userID, "", nil); err != nil {
		// Continue even if refresh token cleanup fails
		logger.WarnWithContext(ctx, "Failed to clear refresh token on logout").
			Uint("user_id", userID).
			Err(err).
			Log()
	}

	logger.InfoWithContext(ctx, "User logged out successfully").
		Uint("user_id", userID).
		Log()

	return nil
}

// Authenticate resolves the user behind access token claims. It rejects
// tokens whose version no longer matches and inactive accounts.
func (s *UserService) Authenticate(ctx context.Context, claims *Claims) (*model.User, error) {
	user, err := s.repoUser.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, repoError(err, apperrors.ErrInvalidToken, nil)
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, apperrors.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountInactive
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetUserByID")

	user, err := s.repoUser.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, apperrors.ErrUserNotFound, nil)
	}

	res := toUserResponse(user)
	return &res, nil
}

// List pages through users for the admin.
func (s *UserService) List(ctx context.Context, req listing.Request) (*listing.Result[dto.UserResponse], error) {
	ctx = ctxutil.WithFunction(ctx, "service", "ListUsers")

	res, err := s.users.List(ctx, req)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list users").
			Err(err).
			Log()
		return nil, apperrors.FromListing(err)
	}

	return listing.Map(res, func(u model.User) dto.UserResponse { return toUserResponse(&u) }), nil
}

// UpdateProfile updates the caller's own name, phone and address.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdateProfile")

	updates := map[string]any{}
	if req.Name != "" {
		updates["name"] = strings.TrimSpace(req.Name)
	}
	if req.Phone != "" {
		updates["phone"] = strings.TrimSpace(req.Phone)
	}
	if req.Address != "" {
		updates["address"] = strings.TrimSpace(req.Address)
	}

	return s.applyUpdates(ctx, id, updates)
}

// AdminUpdate lets an admin change profile fields, role and activation.
// Deactivating an account also revokes its tokens.
func (s *UserService) AdminUpdate(ctx context.Context, id uint, req *dto.AdminUpdateUserRequest) (*dto.UserResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "AdminUpdateUser")

	updates := map[string]any{}
	if req.Name != "" {
		updates["name"] = strings.TrimSpace(req.Name)
	}
	if req.Phone != "" {
		updates["phone"] = strings.TrimSpace(req.Phone)
	}
	if req.Address != "" {
		updates["address"] = strings.TrimSpace(req.Address)
	}
	if req.Role != "" {
		updates["role"] = req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
		if !*req.IsActive {
			updates["token_version"] = gorm.Expr("token_version + 1")
			updates["refresh_token_hash"] = nil
			updates["refresh_token_expires_at"] = nil
		}
	}

	return s.applyUpdates(ctx, id, updates)
}

func (s *UserService) applyUpdates(ctx context.Context, id uint, updates map[string]any) (*dto.UserResponse, error) {
	if len(updates) > 0 {
		if err := s.repoUser.Update(ctx, id, updates); err != nil {
			return nil, repoError(err, apperrors.ErrUserNotFound, nil)
		}
	}

	user, err := s.repoUser.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, apperrors.ErrUserNotFound, nil)
	}

	logger.InfoWithContext(ctx, "User updated successfully").
		Uint("user_id", id).
		Int("columns", len(updates)).
		Log()

	res := toUserResponse(user)
	return &res, nil
}

// UpdatePassword updates user password with current password verification
func (s *UserService) UpdatePassword(ctx context.Context, id uint, req *dto.UpdatePasswordRequest) error {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdatePassword")

	if req.NewPassword != req.ConfirmPassword {
		logger.WarnWithContext(ctx, "New password confirmation mismatch").
			Uint("user_id", id).
			Log()
		return apperrors.ErrPasswordMismatch
	}

	user, err := s.repoUser.GetByID(ctx, id)
	if err != nil {
		return repoError(err, apperrors.ErrUserNotFound, nil)
	}

	if !s.checkPassword(user.Password, req.CurrentPassword) {
		logger.WarnWithContext(ctx, "Current password verification failed").
			Uint("user_id", id).
			Log()
		return apperrors.ErrIncorrectPassword
	}

	hashedPassword, err := s.hashPassword(req.NewPassword)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.repoUser.UpdatePassword(ctx, id, hashedPassword); err != nil {
		return repoError(err, apperrors.ErrUserNotFound, nil)
	}

	logger.InfoWithContext(ctx, "User password updated successfully").
		Uint("user_id", id).
		Log()

	return nil
}

// DeleteUser performs hard delete on user with security validations
func (s *UserService) DeleteUser(ctx context.Context, id uint, requestingUserID uint) error {
	ctx = ctxutil.WithFunction(ctx, "service", "DeleteUser")

	if id == requestingUserID {
		logger.WarnWithContext(ctx, "User attempted to delete themselves").
			Uint("user_id", id).
			Log()
		return apperrors.ErrSelfDeletion
	}

	if err := s.repoUser.Delete(ctx, id); err != nil {
		return repoError(err, apperrors.ErrUserNotFound, nil)
	}

	logger.InfoWithContext(ctx, "User deleted successfully").
		Uint("target_user_id", id).
		Uint("requesting_user_id", requestingUserID).
		Log()

	return nil
}
