package handlers

import (
	"net/http"

	"github.com/comfortzone/comfortzone-api/internal/dto"
	apierrors "github.com/comfortzone/comfortzone-api/internal/errors"
	"github.com/comfortzone/comfortzone-api/internal/middleware"
	"github.com/comfortzone/comfortzone-api/internal/services"
	"github.com/gin-gonic/gin"
)

// UserHandler coordinates public profile and direct-message handlers.
type UserHandler struct {
	socialService *services.SocialService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(socialService *services.SocialService) *UserHandler {
	return &UserHandler{
		socialService: socialService,
	}
}

// Profile returns a public profile with the derived streak.
func (h *UserHandler) Profile(c *gin.Context) {
	user, streak, err := h.socialService.Profile(c.Param("username"))
	if err != nil {
		respondSocialError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*user, streak))
}

// UserFriends returns the friends of the named user.
func (h *UserHandler) UserFriends(c *gin.Context) {
	friends, err := h.socialService.FriendsOf(c.Param("username"))
	if err != nil {
		respondSocialError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPublicUserDTOs(friends))
}

// MyFriends returns the caller's friends ordered by conversation recency.
func (h *UserHandler) MyFriends(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	friends, err := h.socialService.ListFriends(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToPublicUserDTOs(friends))
}

// SendDirectMessage delivers a private message to a friend.
func (h *UserHandler) SendDirectMessage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type DirectMessageRequest struct {
		RecipientID uint64 `json:"recipientId" binding:"required"`
		Content     string `json:"content" binding:"required"`
	}

	var req DirectMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Recipient and message content are required")
		return
	}

	message, err := h.socialService.SendDirectMessage(userID, req.RecipientID, req.Content)
	if err != nil {
		respondSocialError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDirectMessageDTO(*message))
}

// ListDirectMessages returns the conversation with a friend.
func (h *UserHandler) ListDirectMessages(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	friendID, err := parseIDParam(c, "friendId")
	if err != nil {
		apierrors.BadRequest(c, "Invalid friend ID")
		return
	}

	messages, err := h.socialService.ListDirectMessages(userID, friendID)
	if err != nil {
		respondSocialError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDirectMessageDTOs(messages))
}
