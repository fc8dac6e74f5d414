package middleware

import (
	"strconv"

	"github.com/comfortzone/comfortzone-api/internal/constants"
	"github.com/comfortzone/comfortzone-api/internal/database"
	apierrors "github.com/comfortzone/comfortzone-api/internal/errors"
	"github.com/comfortzone/comfortzone-api/internal/models"
	"github.com/gin-gonic/gin"
)

// RequireGroupMembership gates every group-scoped read and write: the group
// must exist and the caller must be a member. Non-members get 403, matching
// the rest of the membership checks.
func RequireGroupMembership() gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid group ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var group models.Group
		if err := database.GetDB().First(&group, groupID).Error; err != nil {
			apierrors.NotFound(c, "Group not found")
			c.Abort()
			return
		}

		var member models.GroupMember
		err = database.GetDB().
			Where("group_id = ? AND user_id = ?", groupID, userID).
			First(&member).Error
		if err != nil {
			apierrors.Forbidden(c, "You are not a member of this group")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyGroup, group)
		c.Set(constants.ContextKeyMember, member)
		c.Next()
	}
}
