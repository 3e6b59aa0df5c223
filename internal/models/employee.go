package models

import "time"

type Employee struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Salary       float64   `gorm:"not null;default:0" json:"salary"`
	Address      string    `gorm:"type:varchar(255)" json:"address"`
	CategoryID   *uint64   `gorm:"index" json:"category_id"`
	Image        string    `gorm:"type:varchar(255)" json:"image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Category    *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tasks       []Task       `gorm:"foreignKey:AssignedTo" json:"-"`
	Submissions []Submission `gorm:"foreignKey:SubmittedBy" json:"-"`
}
