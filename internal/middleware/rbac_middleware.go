package middleware

import (
	"net/http"
	"strconv"

	"resto-admin/internal/domain"
	"resto-admin/internal/session"
	"resto-admin/internal/shared/apperror"
	"resto-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService is satisfied by anything that can answer an EnforceRequest.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session.Current(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(EnforceRequestFor(sess, resource, action))
		if err != nil {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, err.Error(), nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				"You do not have permission to access this resource",
				gin.H{"required": resource + ":" + action},
			)
			c.Abort()
			return
		}
		c.Next()
	}
}

// EnforceRequestFor builds the enforcement question for a session.
func EnforceRequestFor(sess *session.Session, resource, action string) domain.EnforceRequest {
	return domain.EnforceRequest{
		UserID:   strconv.FormatInt(sess.UserID, 10),
		IsAdmin:  sess.IsAdmin,
		Grants:   sess.Grants,
		Resource: resource,
		Action:   action,
	}
}
