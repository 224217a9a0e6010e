// Package db contains things related to SQLite
package db

import (
	"fmt"
	"mailsift/spam-api/model"

	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New() (*gorm.DB, error) {
	d, err := gorm.Open(sqlite.Open(viper.GetString("storage.database_path")))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
	}

	err = d.AutoMigrate(model.User{}, model.ClassificationLog{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return d, nil
}
