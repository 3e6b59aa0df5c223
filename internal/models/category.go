package models

import "time"

type Category struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Employees []Employee `gorm:"foreignKey:CategoryID" json:"employees,omitempty"`
}
