package api

import (
	"net/http"

	"mailsift/spam-api/db"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) LogsFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	entries, err := db.LogsForUser(a.DB, userID)
	if err != nil {
		zap.L().Error("Failed to fetch classification logs", zap.Error(err), zap.String("requestID", requestID))

		setFlash(c, "danger", "Something went wrong. Please try again.")
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	a.render(c, http.StatusOK, "logs.html", gin.H{
		"Logs": entries,
	})
}
