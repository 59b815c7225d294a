package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AssignmentStatus string

const (
	AssignmentActive   AssignmentStatus = "active"
	AssignmentInactive AssignmentStatus = "inactive"
)

type ParticipantStatus string

const (
	ParticipantPending   ParticipantStatus = "pending"
	ParticipantCompleted ParticipantStatus = "completed"
)

// Participant tracks one student's completion state and submitted files.
type Participant struct {
	Student     primitive.ObjectID `json:"student" bson:"student"`
	Status      ParticipantStatus  `json:"status" bson:"status"`
	Attachments []string           `json:"attachments" bson:"attachments"`
}

type Assignment struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Status       AssignmentStatus     `json:"status" bson:"status"`
	Lecture      primitive.ObjectID   `json:"lecture" bson:"lecture"`
	LastDate     time.Time            `json:"last_date" bson:"last_date"`
	Questions    []primitive.ObjectID `json:"questions" bson:"questions"`
	Participants []Participant        `json:"participants" bson:"participants"`
	CreatedBy    primitive.ObjectID   `json:"created_by" bson:"created_by"`
	UpdatedBy    *primitive.ObjectID  `json:"updated_by" bson:"updated_by"`
	IsDeleted    SoftDelete           `json:"-" bson:"is_deleted"`
	CreatedAt    time.Time            `json:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time            `json:"updated_at" bson:"updatedAt"`
}

// ValidateAssignmentLastDate rejects submission deadlines before today (UTC).
func ValidateAssignmentLastDate(lastDate time.Time, now time.Time) error {
	today := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)
	if lastDate.Before(today) {
		return errors.New("Assignment cannot be created in the past.")
	}

	return nil
}
