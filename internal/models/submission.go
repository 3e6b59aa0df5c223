package models

import "time"

type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusApproved SubmissionStatus = "approved"
	SubmissionStatusChanges  SubmissionStatus = "changes"
)

// ValidSubmissionStatus reports whether s is a known review status.
func ValidSubmissionStatus(s SubmissionStatus) bool {
	switch s {
	case SubmissionStatusPending, SubmissionStatusApproved, SubmissionStatusChanges:
		return true
	}
	return false
}

type Submission struct {
	ID          uint64           `gorm:"primarykey" json:"id"`
	ProjectID   uint64           `gorm:"not null;index" json:"project_id"`
	SubmittedBy uint64           `gorm:"not null;index" json:"submitted_by"`
	Version     int              `gorm:"not null" json:"version"`
	Status      SubmissionStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Notes       string           `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	// Relations
	Project  Project          `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Employee Employee         `gorm:"foreignKey:SubmittedBy" json:"employee,omitempty"`
	Files    []SubmissionFile `gorm:"foreignKey:SubmissionID" json:"files,omitempty"`
}
