package db

import (
	"mailsift/spam-api/model"

	"gorm.io/gorm"
)

// AppendLog inserts one classification entry
func AppendLog(d *gorm.DB, entry *model.ClassificationLog) error {
	return d.Create(entry).Error
}

// LogsForUser returns the user's history, most recent first. Ownership is
// part of the query itself so another user's rows can never leak through
func LogsForUser(d *gorm.DB, userID string) ([]model.ClassificationLog, error) {
	var entries []model.ClassificationLog

	err := d.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&entries).
		Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}
