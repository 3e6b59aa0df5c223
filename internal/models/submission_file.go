package models

import "time"

// SubmissionFile records one uploaded file of a submission. Rows are
// written together with their submission and never mutated afterwards.
type SubmissionFile struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	SubmissionID uint64    `gorm:"not null;index" json:"submission_id"`
	Filename     string    `gorm:"type:varchar(255);not null" json:"filename"`
	Path         string    `gorm:"type:varchar(512);not null" json:"path"`
	CreatedAt    time.Time `json:"created_at"`
}
