package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/comfortzone/comfortzone-api/internal/constants"
	"github.com/comfortzone/comfortzone-api/internal/mailer"
	"github.com/comfortzone/comfortzone-api/internal/models"
	"github.com/comfortzone/comfortzone-api/internal/repository"
	"github.com/comfortzone/comfortzone-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken               = errors.New("email already in use")
	ErrUsernameTaken            = errors.New("username already in use")
	ErrPasswordTooShort         = errors.New("password too short")
	ErrAccountNotFound          = errors.New("account not found")
	ErrInvalidPassword          = errors.New("password incorrect")
	ErrEmailNotVerified         = errors.New("email not verified")
	ErrInvalidVerificationToken = errors.New("invalid or expired verification token")
	ErrVerificationEmailSend    = errors.New("failed to send verification email")
	ErrUserNotFound             = errors.New("user not found")
	ErrNotProfileOwner          = errors.New("cannot edit another user's profile")
	ErrFailedToHashPassword     = errors.New("failed to hash password")
)

const verificationTokenTTL = 24 * time.Hour

// AuthService handles registration, login, and email verification.
type AuthService struct {
	userRepo    repository.UserRepository
	mail        mailer.Sender
	frontendURL string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, mail mailer.Sender, frontendURL string) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		mail:        mail,
		frontendURL: frontendURL,
	}
}

// RegisterInput represents the required information to create a new account.
type RegisterInput struct {
	Email          string
	Username       string
	Password       string
	ProfilePicture *string
}

// Register creates an unverified user and sends the verification email. The
// user row is committed before the send; a send failure is reported as
// ErrVerificationEmailSend so the caller can distinguish it from a failed
// registration and point at resend-verification.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	username := strings.TrimSpace(input.Username)
	if email == "" || username == "" {
		return nil, fmt.Errorf("email and username are required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	token, err := utils.GenerateVerificationToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}
	expiry := time.Now().Add(verificationTokenTTL)

	user := &models.User{
		Email:                   email,
		Username:                username,
		PasswordHash:            string(hashedPassword),
		ProfilePicture:          input.ProfilePicture,
		EmailVerified:           false,
		VerificationToken:       &token,
		VerificationTokenExpiry: &expiry,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.sendVerification(ctx, email, token); err != nil {
		return user, fmt.Errorf("%w: %v", ErrVerificationEmailSend, err)
	}

	return user, nil
}

// Login verifies credentials against an email or username and returns the
// verified user.
func (s *AuthService) Login(identifier, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmailOrUsername(strings.TrimSpace(identifier))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	if !user.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	return user, nil
}

// VerifyEmail consumes a verification token. Tokens are single use: the flip
// to verified clears the token.
func (s *AuthService) VerifyEmail(token string) error {
	user, err := s.userRepo.FindByVerificationToken(token, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidVerificationToken
		}
		return fmt.Errorf("failed to find verification token: %w", err)
	}

	user.EmailVerified = true
	user.VerificationToken = nil
	user.VerificationTokenExpiry = nil

	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}

	return nil
}

// ResendVerification regenerates and re-sends a verification token. It
// deliberately succeeds whether or not the email exists so account existence
// is not revealed; it also no-ops for already-verified accounts.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if user.EmailVerified {
		return nil
	}

	token, err := utils.GenerateVerificationToken()
	if err != nil {
		return fmt.Errorf("failed to generate verification token: %w", err)
	}
	expiry := time.Now().Add(verificationTokenTTL)

	user.VerificationToken = &token
	user.VerificationTokenExpiry = &expiry

	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to store verification token: %w", err)
	}

	if err := s.sendVerification(ctx, user.Email, token); err != nil {
		return fmt.Errorf("%w: %v", ErrVerificationEmailSend, err)
	}

	return nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// UpdateBio updates a user's bio. Only the owner may edit their profile.
func (s *AuthService) UpdateBio(actorID, targetID uint64, bio *string) (*models.User, error) {
	if actorID != targetID {
		return nil, ErrNotProfileOwner
	}

	user, err := s.GetUser(targetID)
	if err != nil {
		return nil, err
	}

	if bio != nil {
		user.Bio = bio
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update bio: %w", err)
	}

	return user, nil
}

func (s *AuthService) sendVerification(ctx context.Context, email, token string) error {
	subject, html := mailer.VerificationEmail(s.frontendURL, token)
	return s.mail.SendEmail(ctx, email, subject, html)
}
