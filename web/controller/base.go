// Package controller provides the HTTP handlers of the medblog REST API,
// covering the public content surface and the authenticated admin
// surface.
package controller

import (
	"strings"

	"medblog/web/service"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

// BaseController carries the access guard shared by admin controllers.
type BaseController struct {
	authService service.AuthService
}

// checkLogin verifies the bearer token of the request and attaches the
// resolved administrator to the context. Every failure answers with the
// same uniform 401, so callers can not tell expired from tampered.
func (a *BaseController) checkLogin(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		jsonUnauthorized(c)
		return
	}
	token := strings.TrimPrefix(header, "Bearer ")

	user, err := a.authService.ValidateToken(token)
	if err != nil {
		jsonUnauthorized(c)
		return
	}

	c.Set(userContextKey, user)
	c.Next()
}
