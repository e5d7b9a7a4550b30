package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/crime-alert/backend/internal/domain"
	"github.com/crime-alert/backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	authorizationHeader = "Authorization"

	userIDCtx   = "userId"
	userRoleCtx = "userRole"
)

func (h *Handler) userIdentity(c *gin.Context) {
	claims, err := h.parseAuthHeader(c)
	if err != nil {
		if errors.Is(err, auth.ErrAccessTokenExpired) {
			newErrorResponse(c, http.StatusUnauthorized, "token expired")
			return
		}
		newErrorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	c.Set(userIDCtx, claims.UserID)
	c.Set(userRoleCtx, claims.Role)
}

func (h *Handler) parseAuthHeader(c *gin.Context) (*auth.Claims, error) {
	header := c.GetHeader(authorizationHeader)
	if header == "" {
		return nil, errors.New("empty auth header")
	}

	headerParts := strings.Split(header, " ")
	if len(headerParts) != 2 || headerParts[0] != "Bearer" {
		return nil, errors.New("invalid auth header")
	}

	if headerParts[1] == "" {
		return nil, errors.New("token is empty")
	}

	return h.tokenManager.Parse(headerParts[1])
}

// requireRole gates a route to the listed roles; userIdentity must run
// before it in the chain.
func requireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := domain.Role(c.GetString(userRoleCtx))
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		newErrorResponse(c, http.StatusForbidden, "access denied")
	}
}

func getUserID(c *gin.Context) (uuid.UUID, error) {
	idFromCtx, ok := c.Get(userIDCtx)
	if !ok {
		return uuid.Nil, errors.New("userId not found in context")
	}

	id, ok := idFromCtx.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("userId has invalid type")
	}

	return id, nil
}
