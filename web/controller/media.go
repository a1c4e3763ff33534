package controller

import (
	"net/http"

	"medblog/web/entity"
	"medblog/web/service"

	"github.com/gin-gonic/gin"
)

// MediaController serves the public media folder listing.
type MediaController struct {
	mediaService *service.MediaService
}

// NewMediaController creates a MediaController and registers its routes.
func NewMediaController(g *gin.RouterGroup, media *service.MediaService) *MediaController {
	a := &MediaController{mediaService: media}
	a.initRouter(g)
	return a
}

func (a *MediaController) initRouter(g *gin.RouterGroup) {
	g.GET("/list", a.list)
}

func (a *MediaController) list(c *gin.Context) {
	images, err := a.mediaService.ListFolder(c.Query("folder"))
	if err != nil {
		jsonInternalError(c, "Failed to list media", err)
		return
	}
	c.JSON(http.StatusOK, entity.MediaList{Images: images})
}
