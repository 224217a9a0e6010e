// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"mailsift/spam-api/auth"
	"mailsift/spam-api/db"
	"mailsift/spam-api/middleware"
	"mailsift/spam-api/service"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

type API struct {
	DB         *gorm.DB
	Router     *gin.Engine
	Auth       *auth.Service
	Classifier service.Classifier
}

func NewRouter() (*API, error) {
	a := &API{}

	d, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
	}
	a.DB = d
	a.Auth = auth.NewService(d)

	makeLogger()

	// The model is loaded once, before any request is accepted, and never
	// mutated afterwards
	clf, err := service.LoadOrTrain(viper.GetString("classifier.model_path"), viper.GetBool("classifier.retrain"))
	if err != nil {
		return nil, fmt.Errorf("failed to load spam model, %w", err)
	}
	a.Classifier = clf

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors_origins"),
			AllowMethods:     []string{"GET", "POST", "HEAD", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	router.LoadHTMLGlob(viper.GetString("app.templates"))

	if rps := viper.GetInt("security.rate_limit"); rps > 0 {
		router.Use(middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
			RequestsPerSecond: rps,
			Burst:             rps * 2,
		}))
	}

	session := middleware.NewSessionMiddleware(d)
	maxUploadSize := viper.GetInt64("upload.max_size")

	// HEAD /heartbeat		-> Used to check if the server is alive
	router.HEAD("/heartbeat", a.Heartbeat)

	// GET /			-> Landing page, logged in sessions go to the dashboard
	router.GET("/", a.Home)

	// GET|POST /register		-> Account creation form and submission
	router.GET("/register", a.RegisterForm)
	router.POST("/register", a.Register)

	// GET|POST /login		-> Login form and submission, honors ?next=
	router.GET("/login", a.LoginForm)
	router.POST("/login", a.Login)

	// GET /logout			-> Clears the session cookie
	router.GET("/logout", a.Logout)

	private := router.Group("/", session)
	{
		// GET|POST /dashboard	-> Classification form and submission
		private.GET("/dashboard", a.Dashboard)
		private.POST("/dashboard", middleware.BodySizeLimiter(maxUploadSize+1<<20), a.Classify)

		// GET /logs		-> The caller's history, most recent first
		private.GET("/logs", a.LogsFetch)

		// GET /logs/export	-> The caller's history as a CSV attachment
		private.GET("/logs/export", a.LogsExport)

		// GET /download/:filename -> Streams a stored upload back
		private.GET("/download/:filename", a.Download)
	}

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
