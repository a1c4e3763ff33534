package controller

import (
	"net/http"
	"strconv"

	"medblog/logger"
	"medblog/web/service"

	"github.com/gin-gonic/gin"
)

// ServerController exposes the host status snapshot and the recent log
// buffer to the admin dashboard.
type ServerController struct {
	BaseController

	serverService service.ServerService
}

// NewServerController creates a ServerController and registers its
// routes.
func NewServerController(g *gin.RouterGroup) *ServerController {
	a := &ServerController{}
	a.initRouter(g)
	return a
}

func (a *ServerController) initRouter(g *gin.RouterGroup) {
	g.Use(a.checkLogin)
	g.GET("/status", a.status)
	g.GET("/logs", a.logs)
}

func (a *ServerController) status(c *gin.Context) {
	c.JSON(http.StatusOK, a.serverService.GetStatus())
}

func (a *ServerController) logs(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "50"))
	if err != nil || count < 1 {
		count = 50
	}
	level := c.DefaultQuery("level", "INFO")
	c.JSON(http.StatusOK, logger.GetLogs(count, level))
}
