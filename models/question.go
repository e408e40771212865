package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question is a multiple-choice quiz item. SetID references a Set without a
// foreign key constraint, so deleting the set leaves the question in place.
type Question struct {
	ID            string                      `gorm:"primaryKey;size:24" json:"id"`
	Question      string                      `gorm:"not null" json:"question"`
	Options       datatypes.JSONSlice[string] `gorm:"not null" json:"options"`
	CorrectAnswer string                      `gorm:"not null" json:"correctAnswer"`
	SetID         string                      `gorm:"not null;size:24;index" json:"-"`
	CreatedAt     time.Time                   `json:"createdAt"`
	UpdatedAt     time.Time                   `json:"updatedAt"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		id, err := NewID()
		if err != nil {
			return err
		}
		q.ID = id
	}
	return nil
}

// PopulatedQuestion is a question with its set resolved. Set is nil when the
// referenced set no longer exists.
type PopulatedQuestion struct {
	ID            string      `json:"id"`
	Question      string      `json:"question"`
	Options       []string    `json:"options"`
	CorrectAnswer string      `json:"correctAnswer"`
	Set           *SetSummary `json:"set"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

func (q *Question) Populate(set *Set) PopulatedQuestion {
	options := []string(q.Options)
	if options == nil {
		options = []string{}
	}
	return PopulatedQuestion{
		ID:            q.ID,
		Question:      q.Question,
		Options:       options,
		CorrectAnswer: q.CorrectAnswer,
		Set:           set.Summary(),
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}
