package models

import "time"

type TaskAttachment struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	TaskID     uint64    `gorm:"not null;index" json:"task_id"`
	Filename   string    `gorm:"type:varchar(255);not null" json:"filename"`
	Path       string    `gorm:"type:varchar(512);not null" json:"path"`
	UploadedBy uint64    `gorm:"not null" json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
