package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a user in the roster
type User struct {
	ID       string    `gorm:"primaryKey;size:24" json:"id"`
	Name     string    `gorm:"not null;size:200" json:"name"`
	Email    string    `gorm:"not null;size:320;uniqueIndex" json:"email"`
	JoinedOn time.Time `gorm:"not null;index" json:"joinedOn"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		id, err := NewID()
		if err != nil {
			return err
		}
		u.ID = id
	}
	if u.JoinedOn.IsZero() {
		u.JoinedOn = tx.NowFunc()
	}
	return nil
}
