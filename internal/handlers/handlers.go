package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abhijith3110/Learning-Management-System/internal/utils"
)

const passwordRuleMessage = "Password must be at least 6 characters long, include at least one uppercase letter, one number, and one special character"

// storageTimeout bounds every document-store call issued by a handler.
const storageTimeout = 5 * time.Second

func isMultipart(r *http.Request) bool {
	contentType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && contentType == "multipart/form-data"
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("Invalid request payload")
	}
	return nil
}

// requestMessage shapes a validator error into the client-facing message.
// Any missing required field collapses to the blanket mandatory-fields
// message; enum and format failures report per-field.
func requestMessage(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range errs {
			if fe.Tag() == "required" {
				return "All fields are mandatory"
			}
		}
	}
	return utils.ValidationMessage(err)
}

// formValue returns the multipart form field when the request carried it,
// nil otherwise. Partial updates rely on this to tell "absent" from "empty".
func formValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	if vals, ok := r.MultipartForm.Value[key]; ok && len(vals) > 0 {
		v := vals[0]
		return &v
	}
	return nil
}

func formString(r *http.Request, key string) string {
	if v := formValue(r, key); v != nil {
		return *v
	}
	return ""
}

// setString copies a provided optional field into the $set document.
func setString(update bson.M, key string, value *string) {
	if value != nil {
		update[key] = *value
	}
}

// uniquenessTerms builds the $or clause of the natural-key probe from
// whichever of email and phone the request supplied.
func uniquenessTerms(email, phone *string) []bson.M {
	var terms []bson.M
	if email != nil {
		terms = append(terms, bson.M{"email": *email})
	}
	if phone != nil {
		terms = append(terms, bson.M{"phone": *phone})
	}
	return terms
}

// afterUpdate makes FindOneAndUpdate return the document as modified.
func afterUpdate() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// parseObjectIDs converts hex ids from a request body, failing on the
// first malformed one.
func parseObjectIDs(values []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseDate accepts a bare date or a full RFC 3339 timestamp.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New("invalid date: " + value)
}
