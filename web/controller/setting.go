package controller

import (
	"net/http"

	"medblog/web/service"

	"github.com/gin-gonic/gin"
)

// ThemeForm is the theme update request body.
type ThemeForm struct {
	Theme string `json:"theme" form:"theme"`
}

// SettingController serves the public site settings and the admin theme
// update.
type SettingController struct {
	BaseController

	settingService service.SettingService
}

// NewSettingController creates a SettingController and registers its
// routes.
func NewSettingController(g *gin.RouterGroup) *SettingController {
	a := &SettingController{}
	a.initRouter(g)
	return a
}

func (a *SettingController) initRouter(g *gin.RouterGroup) {
	g.GET("", a.getSettings)
	g.PUT("/theme", a.checkLogin, a.updateTheme)
}

// getSettings returns the settings singleton, creating it with defaults
// on first access.
func (a *SettingController) getSettings(c *gin.Context) {
	settings, err := a.settingService.GetSiteSettings()
	if err != nil {
		jsonInternalError(c, "Failed to fetch settings", err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (a *SettingController) updateTheme(c *gin.Context) {
	var form ThemeForm
	if err := c.ShouldBind(&form); err != nil || form.Theme == "" {
		jsonError(c, http.StatusBadRequest, "Theme required")
		return
	}

	settings, err := a.settingService.SetTheme(form.Theme)
	if err != nil {
		jsonError(c, http.StatusBadRequest, "Unknown theme")
		return
	}
	c.JSON(http.StatusOK, settings)
}
