package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SoftDelete is the canonical deletion envelope embedded in every entity.
// A record with Status true is excluded from all default list/get queries
// and can never be soft-deleted a second time.
type SoftDelete struct {
	Status    bool                `json:"status" bson:"status"`
	DeletedBy *primitive.ObjectID `json:"deleted_by" bson:"deleted_by"`
	DeletedAt *time.Time          `json:"deleted_at" bson:"deleted_at"`
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)
