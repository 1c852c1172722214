package model

import (
	"time"

	"gorm.io/gorm"
)

type Test struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `json:"name" gorm:"not null"`
	MaxTime   *int           `json:"max_time,omitempty"` // minutes; nil = unlimited
	Archived  bool           `json:"archived" gorm:"not null;default:false"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Deadline returns the wall-clock instant the attempt started at the given
// time must finish by. ok is false for unlimited tests.
func (t *Test) Deadline(start time.Time) (deadline time.Time, ok bool) {
	if t.MaxTime == nil {
		return time.Time{}, false
	}
	return start.Add(time.Duration(*t.MaxTime) * time.Minute), true
}
