package api

import (
	"net/http"

	"mailsift/spam-api/middleware"
	"mailsift/spam-api/security"

	"github.com/gin-gonic/gin"
)

// Home is the anonymous landing page. A browser already carrying a valid
// session goes straight to the dashboard
func (a *API) Home(c *gin.Context) {
	if tok, err := c.Cookie(middleware.SessionCookie); err == nil {
		if _, err := security.ParseSessionToken(tok); err == nil {
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}
	}

	a.render(c, http.StatusOK, "index.html", nil)
}
