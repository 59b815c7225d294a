package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QuestionType string

const (
	QuestionObjective  QuestionType = "objective"
	QuestionSubjective QuestionType = "subjective"
)

// QuestionOptions holds the answer choices for objective questions.
// A and B are mandatory for objective questions, C and D stay optional.
type QuestionOptions struct {
	A string `json:"A" bson:"A"`
	B string `json:"B" bson:"B"`
	C string `json:"C" bson:"C"`
	D string `json:"D" bson:"D"`
}

type Question struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Type      QuestionType        `json:"type" bson:"type"`
	Question  string              `json:"question" bson:"question"`
	Options   *QuestionOptions    `json:"options" bson:"options"`
	Answer    []string            `json:"answer" bson:"answer"`
	Batch     primitive.ObjectID  `json:"batch" bson:"batch"`
	CreatedBy primitive.ObjectID  `json:"created_by" bson:"created_by"`
	UpdatedBy *primitive.ObjectID `json:"updated_by" bson:"updated_by"`
	IsDeleted SoftDelete          `json:"-" bson:"is_deleted"`
	CreatedAt time.Time           `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time           `json:"updated_at" bson:"updatedAt"`
}

// ValidateQuestionOptions checks the type/options pairing: objective
// questions need at least options A and B, subjective questions must not
// carry options at all.
func ValidateQuestionOptions(qType QuestionType, options *QuestionOptions) error {
	switch qType {
	case QuestionObjective:
		if options == nil || options.A == "" || options.B == "" {
			return errors.New("At least two options (A and B) are required for Objective type Question")
		}
	case QuestionSubjective:
		if options != nil {
			return errors.New("Options are not required for Subjective type Question")
		}
	}

	return nil
}
