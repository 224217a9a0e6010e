package api

import (
	"errors"
	"net/http"
	"strings"

	"mailsift/spam-api/auth"
	"mailsift/spam-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) RegisterForm(c *gin.Context) {
	a.render(c, http.StatusOK, "register.html", nil)
}

func (a *API) Register(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if validators.UsernameValidator(username) != nil || validators.PasswordValidator(password) != nil {
		setFlash(c, "danger", "Please fill in both fields.")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	err := a.Auth.Register(username, password)
	switch {
	case err == nil:
		setFlash(c, "success", "Account created. Please log in.")
		c.Redirect(http.StatusFound, "/login")
	case errors.Is(err, auth.ErrUsernameTaken):
		setFlash(c, "danger", "Username already exists.")
		c.Redirect(http.StatusFound, "/register")
	case errors.Is(err, auth.ErrMissingFields):
		setFlash(c, "danger", "Please fill in both fields.")
		c.Redirect(http.StatusFound, "/register")
	default:
		zap.L().Error("Failed to register user", zap.Error(err), zap.String("requestID", requestID))

		setFlash(c, "danger", "Something went wrong. Please try again.")
		c.Redirect(http.StatusFound, "/register")
	}
}
