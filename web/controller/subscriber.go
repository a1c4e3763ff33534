package controller

import (
	"net/http"
	"strconv"

	"medblog/database"
	"medblog/web/service"

	"github.com/gin-gonic/gin"
)

// SubscribeForm is the public newsletter subscription body.
type SubscribeForm struct {
	Email string `json:"email" form:"email"`
}

// SubscriberController handles newsletter subscription routes. The admin
// listing and deletion routes sit behind the access guard.
type SubscriberController struct {
	BaseController

	subscriberService service.SubscriberService
	mailerService     *service.MailerService
}

// NewSubscriberController creates a SubscriberController and registers
// its routes.
func NewSubscriberController(g *gin.RouterGroup, mailer *service.MailerService) *SubscriberController {
	a := &SubscriberController{mailerService: mailer}
	a.initRouter(g)
	return a
}

func (a *SubscriberController) initRouter(g *gin.RouterGroup) {
	g.POST("/subscribe", a.subscribe)
	g.GET("/admin/all", a.checkLogin, a.list)
	g.DELETE("/:id", a.checkLogin, a.delete)
}

// subscribe stores a new subscriber and sends the welcome mail in the
// background. A repeat subscription is a success, not an error.
func (a *SubscriberController) subscribe(c *gin.Context) {
	var form SubscribeForm
	if err := c.ShouldBind(&form); err != nil || form.Email == "" {
		jsonError(c, http.StatusBadRequest, "Email required")
		return
	}

	subscriber, created, err := a.subscriberService.Subscribe(form.Email)
	if err != nil {
		jsonInternalError(c, "Subscription failed", err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "Already subscribed"})
		return
	}

	a.mailerService.SendWelcome(subscriber.Email)
	c.JSON(http.StatusOK, gin.H{"success": true, "email": subscriber.Email})
}

func (a *SubscriberController) list(c *gin.Context) {
	subscribers, err := a.subscriberService.List()
	if err != nil {
		jsonInternalError(c, "Failed to load subscribers", err)
		return
	}
	c.JSON(http.StatusOK, subscribers)
}

func (a *SubscriberController) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid subscriber id")
		return
	}
	if err := a.subscriberService.Delete(id); err != nil {
		if database.IsNotFound(err) {
			jsonError(c, http.StatusNotFound, "Subscriber not found")
			return
		}
		jsonInternalError(c, "Failed to delete subscriber", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
