package handlers

import (
	"errors"
	"net/http"

	"github.com/comfortzone/comfortzone-api/internal/dto"
	apierrors "github.com/comfortzone/comfortzone-api/internal/errors"
	"github.com/comfortzone/comfortzone-api/internal/middleware"
	"github.com/comfortzone/comfortzone-api/internal/repository"
	"github.com/comfortzone/comfortzone-api/internal/services"
	"github.com/gin-gonic/gin"
)

// PostHandler coordinates the feed and friend-request handlers.
type PostHandler struct {
	socialService *services.SocialService
	authService   *services.AuthService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(socialService *services.SocialService, authService *services.AuthService) *PostHandler {
	return &PostHandler{
		socialService: socialService,
		authService:   authService,
	}
}

// CreatePost publishes a post to the feed.
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreatePostRequest struct {
		Content  string  `json:"content" binding:"required"`
		Image    *string `json:"image"`
		IsPublic *bool   `json:"isPublic"`
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Post content is required")
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	post, err := h.socialService.CreatePost(userID, req.Content, req.Image, isPublic)
	if err != nil {
		respondSocialError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPostDTO(*post))
}

// ListPosts returns the feed under the requested visibility filter.
func (h *PostHandler) ListPosts(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	visibility := repository.PostVisibility(c.Query("filter"))

	posts, err := h.socialService.ListPosts(userID, visibility)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToPostDTOs(posts))
}

// SendFriendRequest creates a friend-request invite by username.
func (h *PostHandler) SendFriendRequest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type FriendRequestRequest struct {
		Username string `json:"username" binding:"required"`
	}

	var req FriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Username is required")
		return
	}

	sender, err := h.authService.GetUser(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	invite, err := h.socialService.SendFriendRequest(sender, req.Username)
	if err != nil {
		respondSocialError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInviteDTO(*invite))
}

// ListFriends returns the caller's friends.
func (h *PostHandler) ListFriends(c *gin.Context) {
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

func respondSocialError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSelfFriendRequest),
		errors.Is(err, services.ErrPostContentRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrRecipientNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyFriends),
		errors.Is(err, services.ErrFriendRequestPending):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotFriends):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
