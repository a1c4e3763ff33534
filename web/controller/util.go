package controller

import (
	"net/http"

	"medblog/database/model"
	"medblog/logger"
	"medblog/web/entity"

	"github.com/gin-gonic/gin"
)

// jsonError answers with the uniform error body {"error": msg}.
func jsonError(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, entity.ErrorResponse{Error: msg})
}

// jsonInternalError logs the cause server-side and answers with a
// generic message, never leaking details to the client.
func jsonInternalError(c *gin.Context, msg string, err error) {
	logger.Warning(msg+":", err)
	jsonError(c, http.StatusInternalServerError, msg)
}

func jsonUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, entity.ErrorResponse{Error: "Unauthorized"})
}

// getLoginUser returns the administrator the access guard attached to
// the request context.
func getLoginUser(c *gin.Context) *model.User {
	value, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := value.(*model.User)
	return user
}
