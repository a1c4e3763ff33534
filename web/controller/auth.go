package controller

import (
	"errors"
	"net/http"

	"medblog/logger"
	"medblog/web/entity"
	"medblog/web/service"

	"github.com/gin-gonic/gin"
)

// LoginForm is the admin login request body.
type LoginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// AuthController handles admin authentication.
type AuthController struct {
	authService service.AuthService
}

// NewAuthController creates an AuthController and registers its routes.
func NewAuthController(g *gin.RouterGroup) *AuthController {
	a := &AuthController{}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g.POST("/login", a.login)
}

// login checks credentials and issues a session token.
func (a *AuthController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		jsonError(c, http.StatusBadRequest, "Email + password required")
		return
	}
	if form.Email == "" || form.Password == "" {
		jsonError(c, http.StatusBadRequest, "Email + password required")
		return
	}

	token, user, err := a.authService.Login(form.Email, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			jsonError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		jsonInternalError(c, "Login failed", err)
		return
	}

	logger.Infof("%s logged in successfully", user.Email)
	c.JSON(http.StatusOK, entity.TokenResponse{Token: token})
}
