package api

import (
	"net/http"
	"os"
	"path/filepath"

	"mailsift/spam-api/util"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// Download streams a stored upload back as an attachment. The upload area
// is shared: any logged in user can fetch any stored name, ownership is not
// checked beyond the session
func (a *API) Download(c *gin.Context) {
	name := util.SanitizeFilename(c.Param("filename"))
	if name == "" {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	p := filepath.Join(viper.GetString("storage.upload_dir"), name)
	if _, err := os.Stat(p); err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	c.FileAttachment(p, name)
}
