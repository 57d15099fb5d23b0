// internal/domain/user/service.go
package user

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/your-org/warehouse-backend/internal/config"
	"github.com/your-org/warehouse-backend/internal/pkg/apperr"
	"github.com/your-org/warehouse-backend/internal/pkg/auth"
)

// Service handles staff account business logic
type Service struct {
	db              *gorm.DB
	config          *config.Config
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
		jwtManager:      auth.NewJWTManager(cfg),
	}
}

// RegisterRequest represents staff account creation data
type RegisterRequest struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	FullName        string `json:"full_name"`
	Role            string `json:"role"`
}

// LoginRequest represents user login data
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Register creates a new staff account
func (s *Service) Register(req *RegisterRequest) (*AuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, apperr.Validationf("passwords do not match")
	}

	role := RoleViewer
	if req.Role != "" {
		role = Role(strings.ToLower(strings.TrimSpace(req.Role)))
		if !role.IsValid() {
			return nil, apperr.Validationf("unknown role '%s'", req.Role)
		}
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	var existing User
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, apperr.Validationf("user '%s' already exists", username)
	}

	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := User{
		Username: username,
		Password: hashedPassword,
		FullName: strings.TrimSpace(req.FullName),
		Role:     role,
		IsActive: true,
	}
	if err := s.db.Create(&account).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(&account)
}

// Login authenticates a user
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	var account User
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if err := s.db.Where("username = ? AND is_active = ?", username, true).
		First(&account).Error; err != nil {
		return nil, apperr.Validationf("invalid username or password")
	}

	if err := s.passwordManager.VerifyPassword(req.Password, account.Password); err != nil {
		return nil, apperr.Validationf("invalid username or password")
	}

	now := time.Now().UTC()
	account.LastLoginAt = &now
	s.db.Save(&account)

	return s.issueTokens(&account)
}

// RefreshToken generates new tokens using refresh token
func (s *Service) RefreshToken(refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.Validationf("invalid refresh token: %v", err)
	}

	var account User
	if err := s.db.Where("id = ? AND is_active = ?", claims.UserID, true).
		First(&account).Error; err != nil {
		return nil, apperr.NotFoundf("user %d", claims.UserID)
	}

	if !s.config.JWT.RefreshTokenRotation {
		resp, err := s.issueTokens(&account)
		if err != nil {
			return nil, err
		}
		resp.RefreshToken = refreshToken
		return resp, nil
	}
	return s.issueTokens(&account)
}

func (s *Service) issueTokens(account *User) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(account.ID, account.Username, string(account.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(account.ID, account.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	account.Password = ""
	return &AuthResponse{
		User:         account,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}

// GetProfile gets a user profile by ID
func (s *Service) GetProfile(userID uint) (*User, error) {
	var account User
	if err := s.db.Where("id = ? AND is_active = ?", userID, true).
		First(&account).Error; err != nil {
		return nil, apperr.NotFoundf("user %d", userID)
	}
	account.Password = ""
	return &account, nil
}

// ChangePassword changes a password after verifying the current one
func (s *Service) ChangePassword(userID uint, currentPassword, newPassword string) error {
	var account User
	if err := s.db.Where("id = ? AND is_active = ?", userID, true).
		First(&account).Error; err != nil {
		return apperr.NotFoundf("user %d", userID)
	}

	if err := s.passwordManager.VerifyPassword(currentPassword, account.Password); err != nil {
		return apperr.Validationf("current password is incorrect")
	}

	hashedPassword, err := s.passwordManager.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	if err := s.db.Model(&account).Update("password", hashedPassword).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// SetRole changes a user's role. Admin-only at the route level.
func (s *Service) SetRole(userID uint, role Role) error {
	if !role.IsValid() {
		return apperr.Validationf("unknown role '%s'", role)
	}
	result := s.db.Model(&User{}).Where("id = ?", userID).Update("role", role)
	if result.Error != nil {
		return fmt.Errorf("failed to update role: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("user %d", userID)
	}
	return nil
}

// SetActive activates or deactivates an account
func (s *Service) SetActive(userID uint, active bool) error {
	result := s.db.Model(&User{}).Where("id = ?", userID).Update("is_active", active)
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("user %d", userID)
	}
	return nil
}

// ListUsers returns staff accounts with pagination
func (s *Service) ListUsers(page, limit int) ([]User, int64, error) {
	var users []User
	var total int64

	if err := s.db.Model(&User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	offset := (page - 1) * limit
	if err := s.db.Order("username").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, total, nil
}
