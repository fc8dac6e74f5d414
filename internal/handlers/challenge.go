package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/comfortzone/comfortzone-api/internal/errors"
	"github.com/comfortzone/comfortzone-api/internal/middleware"
	"github.com/comfortzone/comfortzone-api/internal/services"
	"github.com/comfortzone/comfortzone-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// ChallengeHandler coordinates global challenge and completion handlers.
type ChallengeHandler struct {
	challengeService *services.ChallengeService
}

// NewChallengeHandler creates a new ChallengeHandler.
func NewChallengeHandler(challengeService *services.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
	}
}

// GetGlobalChallenge returns the challenge for one calendar day.
func (h *ChallengeHandler) GetGlobalChallenge(c *gin.Context) {
	date, err := utils.ParseDay(c.Param("date"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid date")
		return
	}

	challenge, err := h.challengeService.GlobalForDate(date)
	if err != nil {
		if errors.Is(err, services.ErrChallengeNotFound) {
			apierrors.NotFound(c, "No challenge for this date.")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, challenge)
}

// ListGlobalCompletions maps each day the caller has recorded to its status.
func (h *ChallengeHandler) ListGlobalCompletions(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	completions, err := h.challengeService.ListCompletions(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, completions)
}

// UpsertGlobalCompletion records the caller's done-state for a day. A create
// responds 201, an update of the existing day 200.
func (h *ChallengeHandler) UpsertGlobalCompletion(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CompletionRequest struct {
		Date      string `json:"date" binding:"required"`
		Completed *bool  `json:"completed"`
	}

	var req CompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Missing date")
		return
	}

	date, err := utils.ParseDay(req.Date)
	if err != nil {
		apierrors.BadRequest(c, "Invalid date")
		return
	}

	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	completion, created, err := h.challengeService.UpsertCompletion(userID, date, completed)
	if err != nil {
		if errors.Is(err, services.ErrChallengeNotFound) {
			apierrors.NotFound(c, "No challenge for this date.")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	status := http.StatusOK
	message := "Updated"
	if created {
		status = http.StatusCreated
		message = "Created"
	}

	c.JSON(status, gin.H{
		"message": message,
		"result":  completion,
	})
}
