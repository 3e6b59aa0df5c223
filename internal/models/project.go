package models

import "time"

// Project groups submissions of the same deliverable. The create path
// reuses an existing project by (name, owner) so versions can advance.
type Project struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_projects_owner_name" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	OwnerID     uint64    `gorm:"not null;uniqueIndex:idx_projects_owner_name" json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Owner       Employee     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Submissions []Submission `gorm:"foreignKey:ProjectID" json:"submissions,omitempty"`
}
