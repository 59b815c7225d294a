package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StudentStatus string

const (
	StudentActive   StudentStatus = "active"
	StudentInactive StudentStatus = "inactive"
)

type Student struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName    string             `json:"first_name" bson:"first_name"`
	LastName     string             `json:"last_name" bson:"last_name"`
	Email        string             `json:"email" bson:"email"`
	Password     string             `json:"-" bson:"password"`
	Gender       Gender             `json:"gender" bson:"gender"`
	DOB          time.Time          `json:"dob" bson:"dob"`
	Age          int                `json:"age" bson:"age"`
	Phone        string             `json:"phone" bson:"phone"`
	Status       StudentStatus      `json:"status" bson:"status"`
	StudentID    string             `json:"student_id" bson:"student_id"`
	Batch        primitive.ObjectID `json:"batch" bson:"batch"`
	ProfileImage string             `json:"profile_image" bson:"profile_image"`
	Address      string             `json:"address" bson:"address"`
	ParentName   string             `json:"parent_name" bson:"parent_name"`
	ParentNumber string             `json:"parent_number" bson:"parent_number"`
	IsDeleted    SoftDelete         `json:"-" bson:"is_deleted"`
	CreatedAt    time.Time          `json:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updatedAt"`
}
