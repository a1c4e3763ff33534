package controller

import (
	"errors"
	"net/http"
	"strconv"

	"medblog/database"
	"medblog/web/service"

	"github.com/gin-gonic/gin"
)

// FeedbackForm is the public feedback submission body.
type FeedbackForm struct {
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
	PostId  *int   `json:"postId" form:"postId"`
}

// FeedbackController handles reader feedback routes.
type FeedbackController struct {
	BaseController

	feedbackService service.FeedbackService
}

// NewFeedbackController creates a FeedbackController and registers its
// routes.
func NewFeedbackController(g *gin.RouterGroup) *FeedbackController {
	a := &FeedbackController{}
	a.initRouter(g)
	return a
}

func (a *FeedbackController) initRouter(g *gin.RouterGroup) {
	g.POST("", a.create)
	g.GET("", a.checkLogin, a.list)
	g.DELETE("/:id", a.checkLogin, a.delete)
}

// create accepts unauthenticated feedback from readers.
func (a *FeedbackController) create(c *gin.Context) {
	var form FeedbackForm
	if err := c.ShouldBind(&form); err != nil {
		jsonError(c, http.StatusBadRequest, "Message is required")
		return
	}

	feedback, err := a.feedbackService.Create(form.Email, form.Message, form.PostId)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			jsonError(c, http.StatusBadRequest, "Message is required")
			return
		}
		jsonInternalError(c, "Failed to save feedback", err)
		return
	}
	c.JSON(http.StatusCreated, feedback)
}

func (a *FeedbackController) list(c *gin.Context) {
	feedback, err := a.feedbackService.List()
	if err != nil {
		jsonInternalError(c, "Failed to load feedback", err)
		return
	}
	c.JSON(http.StatusOK, feedback)
}

func (a *FeedbackController) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid feedback id")
		return
	}
	if err := a.feedbackService.Delete(id); err != nil {
		if database.IsNotFound(err) {
			jsonError(c, http.StatusNotFound, "Feedback not found")
			return
		}
		jsonInternalError(c, "Failed to delete feedback", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
