package models

import "time"

type Comment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ProjectID uint64    `gorm:"not null;index" json:"projectId"`
	UserID    uint64    `gorm:"not null;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Author User `gorm:"foreignKey:UserID" json:"-"`
}
