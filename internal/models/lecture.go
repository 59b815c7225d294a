package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LectureStatus string

const (
	LectureDraft     LectureStatus = "draft"
	LecturePending   LectureStatus = "pending"
	LectureProgress  LectureStatus = "progress"
	LectureCompleted LectureStatus = "completed"
)

type LectureLink struct {
	Live     string `json:"live" bson:"live"`
	Recorded string `json:"recorded" bson:"recorded"`
}

type Lecture struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Duration  Duration             `json:"duration" bson:"duration"`
	Link      *LectureLink         `json:"link" bson:"link"`
	Status    LectureStatus        `json:"status" bson:"status"`
	Subject   primitive.ObjectID   `json:"subject" bson:"subject"`
	Batch     primitive.ObjectID   `json:"batch" bson:"batch"`
	Teacher   primitive.ObjectID   `json:"teacher" bson:"teacher"`
	Attendees []primitive.ObjectID `json:"attendees" bson:"attendees"`
	Notes     string               `json:"notes" bson:"notes"`
	IsDeleted SoftDelete           `json:"-" bson:"is_deleted"`
	CreatedAt time.Time            `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time            `json:"updated_at" bson:"updatedAt"`
}

// ValidateLectureDuration enforces the slot rules: both ends on the same
// calendar day, end after start, span of at most three hours, and not
// scheduled before today.
func ValidateLectureDuration(d Duration, now time.Time) error {
	if d.From.IsZero() || d.To.IsZero() {
		return errors.New("Duration with from and to times is required.")
	}

	sameDay := d.From.Year() == d.To.Year() &&
		d.From.Month() == d.To.Month() &&
		d.From.Day() == d.To.Day()

	if !sameDay {
		return errors.New("Lecture duration must be on the same day.")
	}

	span := d.To.Sub(d.From)
	if span <= 0 {
		return errors.New("End time must be after start time.")
	}

	if span > 3*time.Hour {
		return errors.New("Lecture duration cannot exceed 3 hours.")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.From.Before(today) {
		return errors.New("Lecture cannot be scheduled in the past.")
	}

	return nil
}
