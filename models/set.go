package models

import (
	"time"

	"gorm.io/gorm"
)

// Set is a named grouping of questions. At most one set is active at a time.
type Set struct {
	ID        string    `gorm:"primaryKey;size:24" json:"id"`
	Name      string    `gorm:"not null;size:200;uniqueIndex" json:"name"`
	IsActive  bool      `gorm:"not null;default:false;index" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Set) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		id, err := NewID()
		if err != nil {
			return err
		}
		s.ID = id
	}
	return nil
}

// SetSummary is the set info attached to a question in responses.
type SetSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

func (s *Set) Summary() *SetSummary {
	if s == nil {
		return nil
	}
	return &SetSummary{ID: s.ID, Name: s.Name, IsActive: s.IsActive}
}
