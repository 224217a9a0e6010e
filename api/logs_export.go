package api

import (
	"encoding/csv"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"mailsift/spam-api/db"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// LogsExport writes the caller's history into the export directory as CSV
// and streams it back as an attachment
func (a *API) LogsExport(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	entries, err := db.LogsForUser(a.DB, userID)
	if err != nil {
		zap.L().Error("Failed to fetch classification logs", zap.Error(err), zap.String("requestID", requestID))

		setFlash(c, "danger", "Something went wrong. Please try again.")
		c.Redirect(http.StatusFound, "/logs")
		return
	}

	name := "logs_" + userID + ".csv"
	dest := filepath.Join(viper.GetString("storage.export_dir"), name)

	f, err := os.Create(dest)
	if err != nil {
		zap.L().Error("Failed to create export file", zap.Error(err), zap.String("requestID", requestID))

		setFlash(c, "danger", "Something went wrong. Please try again.")
		c.Redirect(http.StatusFound, "/logs")
		return
	}

	w := csv.NewWriter(f)
	w.Write([]string{"created_at", "prediction", "score", "filename", "email_text"})

	for _, e := range entries {
		var fname string
		if e.Filename != nil {
			fname = *e.Filename
		}

		w.Write([]string{
			e.CreatedAt.UTC().Format(time.RFC3339),
			e.Prediction,
			strconv.FormatFloat(e.Score, 'f', 2, 64),
			fname,
			e.EmailText,
		})
	}

	w.Flush()
	f.Close()

	if err := w.Error(); err != nil {
		zap.L().Error("Failed to write export file", zap.Error(err), zap.String("requestID", requestID))

		setFlash(c, "danger", "Something went wrong. Please try again.")
		c.Redirect(http.StatusFound, "/logs")
		return
	}

	c.FileAttachment(dest, name)
}
