package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/comfortzone/comfortzone-api/internal/dto"
	apierrors "github.com/comfortzone/comfortzone-api/internal/errors"
	"github.com/comfortzone/comfortzone-api/internal/middleware"
	"github.com/comfortzone/comfortzone-api/internal/services"
	"github.com/gin-gonic/gin"
)

// GroupHandler coordinates group, membership, and invite handlers.
type GroupHandler struct {
	groupService *services.GroupService
	authService  *services.AuthService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupService *services.GroupService, authService *services.AuthService) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
		authService:  authService,
	}
}

// CreateGroup creates a group owned by the caller.
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateGroupRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Group name is required")
		return
	}

	group, err := h.groupService.CreateGroup(userID, req.Name, req.Description)
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.GroupSummaryDTO{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
	})
}

// MyGroups lists the caller's groups with their latest challenges.
func (h *GroupHandler) MyGroups(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	summaries, err := h.groupService.MyGroups(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	dtos := make([]dto.GroupSummaryDTO, len(summaries))
	for i, s := range summaries {
		dtos[i] = dto.ToGroupSummaryDTO(s)
	}
	c.JSON(http.StatusOK, dtos)
}

// GetGroup returns a group with members and challenges. Membership is
// enforced by RequireGroupMembership.
func (h *GroupHandler) GetGroup(c *gin.Context) {
	groupID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid group ID")
		return
	}

	group, err := h.groupService.GetGroup(groupID)
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupDetailDTO(*group))
}

// CreateChallenge creates a challenge in the group.
func (h *GroupHandler) CreateChallenge(c *gin.Context) {
	groupID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid group ID")
		return
	}

	type CreateChallengeRequest struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description" binding:"required"`
		Date        *time.Time `json:"date"`
	}

	var req CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Title and description are required")
		return
	}

	challenge, err := h.groupService.CreateChallenge(groupID, req.Title, req.Description, req.Date)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, dto.ToGroupChallengeDTO(*challenge))
}

// CompleteChallenge records the caller's completion of a group challenge.
func (h *GroupHandler) CompleteChallenge(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	groupID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid group ID")
		return
	}

	challengeID, err := parseIDParam(c, "challengeId")
	if err != nil {
		apierrors.BadRequest(c, "Invalid challenge ID")
		return
	}

	completion, created, err := h.groupService.CompleteChallenge(userID, groupID, challengeID)
	if err != nil {
		respondGroupError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, completion)
}

// ListMessages returns the newest window of the group chat.
func (h *GroupHandler) ListMessages(c *gin.Context) {
	groupID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid group ID")
		return
	}

	messages, err := h.groupService.ListMessages(groupID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupMessageDTOs(messages))
}

// SendMessage posts a message to the group chat.
func (h *GroupHandler) SendMessage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	groupID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid group ID")
		return
	}

	type SendMessageRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Message content is required")
		return
	}

	message, err := h.groupService.SendMessage(groupID, userID, req.Content)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, dto.ToGroupMessageDTO(*message))
}

// Invite sends a group invite to the holder of an email address.
func (h *GroupHandler) Invite(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	groupID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid group ID")
		return
	}

	type InviteRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Email is required")
		return
	}

	sender, err := h.authService.GetUser(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	invite, err := h.groupService.Invite(groupID, sender, req.Email)
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInviteDTO(*invite))
}

// MyInvites lists the invites addressed to the caller.
func (h *GroupHandler) MyInvites(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	invites, err := h.groupService.MyInvites(user.Email)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToInviteDTOs(invites))
}

// RespondToInvite records the caller's accept/decline of an invite.
func (h *GroupHandler) RespondToInvite(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	inviteID, err := parseIDParam(c, "inviteId")
	if err != nil {
		apierrors.BadRequest(c, "Invalid invite ID")
		return
	}

	type RespondRequest struct {
		Accepted *bool `json:"accepted" binding:"required"`
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Response is required")
		return
	}

	responder, err := h.authService.GetUser(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	invite, err := h.groupService.RespondToInvite(inviteID, responder, *req.Accepted)
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInviteDTO(*invite))
}

func respondGroupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrGroupNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrGroupChallengeNotFound),
		errors.Is(err, services.ErrInviteNotFound),
		errors.Is(err, services.ErrInviteRecipientUnknown):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotGroupMember),
		errors.Is(err, services.ErrNotInviteRecipient),
		errors.Is(err, services.ErrInviteAlreadyResolved):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrAlreadyGroupMember),
		errors.Is(err, services.ErrAlreadyInvited):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
