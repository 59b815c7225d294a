package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminRole string

const (
	RoleAdmin      AdminRole = "admin"
	RoleSuperAdmin AdminRole = "superadmin"
)

type AdminStatus string

const (
	AdminActive   AdminStatus = "active"
	AdminResigned AdminStatus = "resigned"
)

type Admin struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName    string             `json:"first_name" bson:"first_name"`
	LastName     string             `json:"last_name" bson:"last_name"`
	Email        string             `json:"email" bson:"email"`
	Password     string             `json:"-" bson:"password"`
	Gender       Gender             `json:"gender" bson:"gender"`
	DOB          time.Time          `json:"dob" bson:"dob"`
	Age          int                `json:"age" bson:"age"`
	Phone        string             `json:"phone" bson:"phone"`
	Status       AdminStatus        `json:"status" bson:"status"`
	Role         AdminRole          `json:"role" bson:"role"`
	ProfileImage string             `json:"profile_image" bson:"profile_image"`
	IsDeleted    SoftDelete         `json:"-" bson:"is_deleted"`
	CreatedAt    time.Time          `json:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updatedAt"`
}
