package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Subject struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name      string              `json:"subject_name" bson:"subject_name"`
	CreatedBy primitive.ObjectID  `json:"created_by" bson:"created_by"`
	UpdatedBy *primitive.ObjectID `json:"updated_by" bson:"updated_by"`
	IsDeleted SoftDelete          `json:"-" bson:"is_deleted"`
	CreatedAt time.Time           `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time           `json:"updated_at" bson:"updatedAt"`
}
