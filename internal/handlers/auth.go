package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/comfortzone/comfortzone-api/internal/auth"
	"github.com/comfortzone/comfortzone-api/internal/constants"
	"github.com/comfortzone/comfortzone-api/internal/dto"
	apierrors "github.com/comfortzone/comfortzone-api/internal/errors"
	"github.com/comfortzone/comfortzone-api/internal/middleware"
	"github.com/comfortzone/comfortzone-api/internal/services"
	"github.com/gin-gonic/gin"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	tokens      *auth.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, tokens *auth.Manager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokens:      tokens,
	}
}

// Register creates a new unverified account and sends the verification email.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Email          string  `json:"email" binding:"required,email"`
		Username       string  `json:"username" binding:"required,min=3,max=50"`
		Password       string  `json:"password" binding:"required"`
		ProfilePicture *string `json:"profilePicture"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Email, username, and password are required")
		return
	}

	_, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Email:          req.Email,
		Username:       req.Username,
		Password:       req.Password,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created. Please check your email to verify your account.",
	})
}

// Login authenticates by email or username and issues a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		EmailOrUsername string `json:"emailOrUsername" binding:"required"`
		Password        string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Email/Username and password are required")
		return
	}

	user, err := h.authService.Login(req.EmailOrUsername, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		apierrors.InternalError(c, "Failed to issue token")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:          token,
		ID:             user.ID,
		Email:          user.Email,
		Username:       user.Username,
		ProfilePicture: user.ProfilePicture,
		EmailVerified:  user.EmailVerified,
	})
}

// VerifyEmail consumes a verification token.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	type VerifyRequest struct {
		Token string `json:"token" binding:"required"`
	}

	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Verification token is required")
		return
	}

	if err := h.authService.VerifyEmail(req.Token); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}

// ResendVerification re-sends the verification email. The response is the
// same whether or not the address exists.
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	type ResendRequest struct {
		Email string `json:"email" binding:"required"`
	}

	var req ResendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Email is required")
		return
	}

	if err := h.authService.ResendVerification(c.Request.Context(), req.Email); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "If your email exists in our system, a verification link has been sent",
	})
}

// Me returns the authenticated user's own account.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMeDTO(*user))
}

// UpdateBio edits the caller's own bio.
func (h *AuthHandler) UpdateBio(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	targetID, err := parseIDParam(c, "userId")
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	type UpdateBioRequest struct {
		Bio *string `json:"bio"`
	}

	var req UpdateBioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.UpdateBio(userID, targetID, req.Bio)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMeDTO(*user))
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidPassword):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrEmailNotVerified):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidVerificationToken):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrVerificationEmailSend):
		apierrors.ServiceUnavailable(c, "Account saved but the verification email could not be sent. Use resend-verification to retry.")
	case errors.Is(err, services.ErrNotProfileOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrFailedToHashPassword):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
