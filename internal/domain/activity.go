package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ActivityKind string

const (
	ActivityNotes     ActivityKind = "notes"
	ActivityQuiz      ActivityKind = "quiz"
	ActivityQuestions ActivityKind = "questions"
	ActivityChat      ActivityKind = "chat"
	ActivityMentor    ActivityKind = "mentor"
)

const (
	MaxActivityTitle   = 200
	MaxActivityDetails = 2000
)

var activityKinds = map[ActivityKind]bool{
	ActivityNotes:     true,
	ActivityQuiz:      true,
	ActivityQuestions: true,
	ActivityChat:      true,
	ActivityMentor:    true,
}

func (k ActivityKind) Valid() bool { return activityKinds[k] }

// Activity is one logged study interaction. Rows are append-only.
type Activity struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Kind      ActivityKind   `gorm:"column:kind;type:varchar(50);not null;index" json:"kind"`
	Title     string         `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Details   string         `gorm:"column:details;type:text" json:"details"`
	Meta      datatypes.JSON `gorm:"column:meta" json:"meta,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at;not null;index" json:"created_at"`
}

func (Activity) TableName() string { return "activities" }

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if !a.Kind.Valid() {
		return fmt.Errorf("activity kind %q is not recognized", a.Kind)
	}
	return nil
}

// NewActivity builds a row with title and details clamped to their column limits.
func NewActivity(kind ActivityKind, title, details string, meta datatypes.JSON, at time.Time) *Activity {
	return &Activity{
		ID:        uuid.New(),
		Kind:      kind,
		Title:     TruncateRunes(title, MaxActivityTitle),
		Details:   TruncateRunes(details, MaxActivityDetails),
		Meta:      meta,
		CreatedAt: at.UTC(),
	}
}

// TruncateRunes keeps at most n characters of s.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
