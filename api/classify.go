package api

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"mailsift/spam-api/db"
	"mailsift/spam-api/model"
	"mailsift/spam-api/service"
	"mailsift/spam-api/util"
	"mailsift/spam-api/validators"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// maxStoredTextLen caps how much of the resolved text the log keeps
const maxStoredTextLen = 2000

func (a *API) Dashboard(c *gin.Context) {
	a.render(c, http.StatusOK, "dashboard.html", gin.H{
		"EmailText": "",
	})
}

// Classify takes a typed email_text and/or an uploaded file, resolves the
// text to classify, runs the model and appends one log entry for the caller
func (a *API) Classify(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	emailText := strings.TrimSpace(c.PostForm("email_text"))

	var storedName *string

	fh, err := c.FormFile("file")
	if err == nil && fh != nil && fh.Filename != "" {
		code, verr := validators.FileValidator(fh)
		if verr != nil {
			if code == http.StatusInternalServerError {
				zap.L().Error("Failed to validate upload", zap.Error(verr), zap.String("requestID", requestID))
				verr = errors.New("internal server error")
			}

			setFlash(c, "danger", verr.Error())
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}

		name := util.SanitizeFilename(fh.Filename)
		if name == "" {
			setFlash(c, "danger", "Invalid file name.")
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}

		// The upload area is keyed by the sanitized client name, so a
		// duplicate name overwrites the previous upload
		dest := filepath.Join(viper.GetString("storage.upload_dir"), name)
		if err := c.SaveUploadedFile(fh, dest); err != nil {
			zap.L().Error("Failed to store upload", zap.Error(err), zap.String("requestID", requestID))

			setFlash(c, "danger", "Failed to store the uploaded file.")
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}

		storedName = &name

		// File content wins over whatever was typed alongside it
		if extracted := service.ExtractText(dest); extracted != "" {
			emailText = extracted
		}
	}

	if strings.TrimSpace(emailText) == "" {
		setFlash(c, "warning", "No email content provided.")
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	outcome, err := service.Classify(a.Classifier, emailText)
	if err != nil {
		zap.L().Error("Classification failed", zap.Error(err), zap.String("requestID", requestID))

		setFlash(c, "danger", "Something went wrong. Please try again.")
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	entry := &model.ClassificationLog{
		UserID:     userID,
		EmailText:  util.TruncateRunes(emailText, maxStoredTextLen),
		Prediction: outcome.Label,
		Score:      outcome.Score,
		Filename:   storedName,
	}

	if err := db.AppendLog(a.DB, entry); err != nil {
		zap.L().Error("Failed to append classification log", zap.Error(err), zap.String("requestID", requestID))

		setFlash(c, "danger", "Something went wrong. Please try again.")
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	a.render(c, http.StatusOK, "dashboard.html", gin.H{
		"Result":    outcome.Label,
		"Score":     outcome.Score,
		"EmailText": emailText,
		"Filename":  storedName,
	})
}
