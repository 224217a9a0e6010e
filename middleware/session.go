package middleware

import (
	"net/http"
	"net/url"

	"mailsift/spam-api/model"
	"mailsift/spam-api/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionCookie is the name of the cookie carrying the signed session token
const SessionCookie = "session_token"

// NewSessionMiddleware gates pages that need a logged in user. Anything
// wrong with the session cookie sends the browser to the login page with
// the original path preserved in ?next=, without touching any protected
// service
func NewSessionMiddleware(d *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		toLogin := func() {
			c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
			c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.Path))
			c.Abort()
		}

		tokenStr, err := c.Cookie(SessionCookie)
		if err != nil {
			toLogin()
			return
		}

		claims, err := security.ParseSessionToken(tokenStr)
		if err != nil {
			zap.L().Debug("Rejected session token", zap.Error(err))
			toLogin()
			return
		}

		// The user row may have vanished since the cookie was issued
		var user model.User
		err = d.Where("id = ?", claims.UserID).First(&user).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				toLogin()
				return
			}

			zap.L().Error("Failed to check if user exists", zap.Error(err))
			c.String(http.StatusInternalServerError, "internal server error")
			c.Abort()
			return
		}

		c.Set("userID", user.ID)
		c.Set("username", user.Username)
		c.Next()
	}
}
