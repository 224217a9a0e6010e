// Package model defines database models
package model

import "time"

// ClassificationLog is one spam check owned by a user. Rows are insert-only,
// nothing in the app updates or deletes them.
type ClassificationLog struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID string `gorm:"not null;index" json:"-"`

	// EmailText is the resolved input, truncated before insert so a big
	// upload doesn't balloon the table
	EmailText  string  `json:"email_text"`
	Prediction string  `json:"prediction"`
	Score      float64 `json:"score"`
	// Filename is only set when the submission came from an upload. The
	// stored file keeps its sanitized client name, so a duplicate name
	// overwrites the previous upload
	Filename  *string   `json:"filename,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
