package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agencydesk/agency_desk_app/internal/apperrors"
	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	"github.com/agencydesk/agency_desk_app/internal/core/ports/services"
)

// RequireAgencyRole creates a Gin middleware guarding agency-scoped routes.
// It resolves the :agency_id path parameter and requires the authenticated
// user to hold requiredRole or higher in that agency. Non-members receive
// 404 rather than 403 so the agency's existence is not leaked.
func RequireAgencyRole(authorizer services.AgencyAuthorizerSvc, requiredRole domain.AgencyRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c.Request.Context())
		if !ok {
			logger.Error("Agency role check reached without authenticated user")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		agencyID := c.Param("agency_id")
		if agencyID == "" {
			logger.Error("Agency role check on route without agency_id param", "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Agency ID is required"})
			return
		}

		if err := authorizer.AuthorizeUserAction(c.Request.Context(), userID, agencyID, requiredRole); err != nil {
			switch {
			case errors.Is(err, apperrors.ErrNotFound):
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Agency not found"})
			case errors.Is(err, apperrors.ErrForbidden):
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role for this action"})
			default:
				logger.Error("Agency authorization failed", "error", err, "agency_id", agencyID)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			}
			return
		}

		c.Next()
	}
}
