package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TeacherStatus string

const (
	TeacherActive   TeacherStatus = "active"
	TeacherResigned TeacherStatus = "resigned"
)

type Teacher struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	FirstName    string               `json:"first_name" bson:"first_name"`
	LastName     string               `json:"last_name" bson:"last_name"`
	Email        string               `json:"email" bson:"email"`
	Password     string               `json:"-" bson:"password"`
	Address      string               `json:"address" bson:"address"`
	Gender       Gender               `json:"gender" bson:"gender"`
	DOB          time.Time            `json:"dob" bson:"dob"`
	Age          int                  `json:"age" bson:"age"`
	Phone        string               `json:"phone" bson:"phone"`
	Status       TeacherStatus        `json:"status" bson:"status"`
	Subjects     []primitive.ObjectID `json:"subject" bson:"subject"`
	ProfileImage string               `json:"profile_image" bson:"profile_image"`
	IsDeleted    SoftDelete           `json:"-" bson:"is_deleted"`
	CreatedAt    time.Time            `json:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time            `json:"updated_at" bson:"updatedAt"`
}
