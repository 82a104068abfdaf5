package models

import (
	"time"
)

type ProjectStatus string

const (
	ProjectStatusTodo       ProjectStatus = "todo"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
)

// Valid reports whether s is one of the known project statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusTodo, ProjectStatusInProgress, ProjectStatusCompleted:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Link is a named external reference attached to a project.
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Project struct {
	ID          uint64        `gorm:"primarykey" json:"id"`
	Title       string        `gorm:"type:varchar(255);not null" json:"title"`
	Description string        `gorm:"type:text;not null" json:"description"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	Priority    Priority      `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Image       string        `gorm:"type:varchar(512)" json:"image"`
	Links       []Link        `gorm:"type:text;serializer:json" json:"links"`
	UserID      uint64        `gorm:"not null;index" json:"userId"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`

	// Relations
	Owner User `gorm:"foreignKey:UserID" json:"-"`
}
