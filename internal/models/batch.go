package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BatchType string

const (
	BatchFree        BatchType = "free"
	BatchPaid        BatchType = "paid"
	BatchCrashCourse BatchType = "crash course"
)

type BatchStatus string

const (
	BatchDraft        BatchStatus = "draft"
	BatchInProgress   BatchStatus = "inprogress"
	BatchCompleted    BatchStatus = "completed"
	BatchAboutToStart BatchStatus = "about-to-start"
)

// Duration is an inclusive from/to window shared by batches and lectures.
type Duration struct {
	From time.Time `json:"from" bson:"from"`
	To   time.Time `json:"to" bson:"to"`
}

type Batch struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	InCharge  primitive.ObjectID `json:"in_charge" bson:"in_charge"`
	Type      BatchType          `json:"type" bson:"type"`
	Status    BatchStatus        `json:"status" bson:"status"`
	Duration  Duration           `json:"duration" bson:"duration"`
	IsDeleted SoftDelete         `json:"-" bson:"is_deleted"`
	CreatedAt time.Time          `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updatedAt"`
}

// ValidateBatchDuration enforces the batch window rules: the start date may
// not lie in the past and the whole window may not span more than two years.
func ValidateBatchDuration(d Duration, now time.Time) error {
	if d.From.IsZero() || d.To.IsZero() {
		return errors.New("Duration with from and to dates is required")
	}

	if d.To.Before(d.From) || d.To.Equal(d.From) {
		return errors.New("Batch end date must be after start date")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.From.Before(today) {
		return errors.New("Batch cannot start in the past")
	}

	if d.To.After(d.From.AddDate(2, 0, 0)) {
		return errors.New("Batch duration cannot exceed 2 years")
	}

	return nil
}
