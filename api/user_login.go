package api

import (
	"errors"
	"net/http"
	"strings"

	"mailsift/spam-api/auth"
	"mailsift/spam-api/middleware"
	"mailsift/spam-api/security"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func (a *API) LoginForm(c *gin.Context) {
	a.render(c, http.StatusOK, "login.html", gin.H{
		"Next": c.Query("next"),
	})
}

func (a *API) Login(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	user, err := a.Auth.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			setFlash(c, "danger", "Invalid credentials.")
			c.Redirect(http.StatusFound, "/login")
			return
		}

		zap.L().Error("Failed to authenticate user", zap.Error(err), zap.String("requestID", requestID))

		setFlash(c, "danger", "Something went wrong. Please try again.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	token, err := security.MakeSessionToken(user.ID, user.Username)
	if err != nil {
		zap.L().Error("Failed to sign session token", zap.Error(err), zap.String("requestID", requestID))

		setFlash(c, "danger", "Something went wrong. Please try again.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.SetCookie(middleware.SessionCookie, token, viper.GetInt("session.max_age"), "/", "", viper.GetBool("host.ssl.enabled"), true)

	setFlash(c, "success", "Logged in successfully.")
	c.Redirect(http.StatusFound, nextPath(c.PostForm("next"), c.Query("next")))
}

// nextPath only follows local redirect targets, anything else falls back to
// the dashboard
func nextPath(form, query string) string {
	next := form
	if next == "" {
		next = query
	}

	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/dashboard"
	}

	return next
}

func (a *API) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)

	setFlash(c, "info", "Logged out.")
	c.Redirect(http.StatusFound, "/")
}
