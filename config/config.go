// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	retrain        = pflag.Bool("retrain", false, "Retrains the spam model from the bundled corpus and overwrites the snapshot")
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
)

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.cors_origins", "host_cors_origins")
	v.BindEnv("host.ssl.enabled", "host_ssl_enabled")

	v.BindEnv("session.secret", "session_secret")
	v.BindEnv("session.max_age", "session_max_age")

	v.BindEnv("storage.database_path", "storage_database_path")
	v.BindEnv("storage.upload_dir", "storage_upload_dir")
	v.BindEnv("storage.export_dir", "storage_export_dir")

	v.BindEnv("classifier.model_path", "classifier_model_path")

	v.BindEnv("upload.max_size", "upload_max_size")
	v.BindEnv("upload.allowed_types", "upload_allowed_types")

	v.BindEnv("security.rate_limit", "security_rate_limit")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.templates", "templates/*.html")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.cors_origins", []string{"http://localhost:8080"})
	v.SetDefault("host.ssl.enabled", false)

	v.SetDefault("session.max_age", 60*60*24)

	v.SetDefault("storage.database_path", "database.db")
	v.SetDefault("storage.upload_dir", "uploads")
	v.SetDefault("storage.export_dir", "exports")

	v.SetDefault("classifier.model_path", "spam_model.json")

	v.SetDefault("upload.max_size", 5)
	v.SetDefault("upload.allowed_types", []string{})

	v.SetDefault("security.rate_limit", 0)

	if err := v.ReadInConfig(); err != nil {
		// The defaults plus env vars are a complete config, a config.toml
		// is only one way to override them
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	if v.GetInt("session.max_age") <= 0 {
		return errors.New("session.max_age must be bigger than 0")
	}

	if v.GetString("session.secret") == "" {
		fmt.Println("WARNING: You haven't set a session secret, so one has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random session secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	for _, dir := range []string{v.GetString("storage.upload_dir"), v.GetString("storage.export_dir")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s, %w", dir, err)
		}
	}

	v.Set("classifier.retrain", *retrain)
	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	return nil
}
