package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abhijith3110/Learning-Management-System/internal/middleware"
	"github.com/abhijith3110/Learning-Management-System/internal/models"
	"github.com/abhijith3110/Learning-Management-System/internal/store"
	"github.com/abhijith3110/Learning-Management-System/internal/utils"
)

type AssignmentHandler struct {
	db         *mongo.Database
	collection *mongo.Collection
	lectures   *mongo.Collection
	questions  *mongo.Collection
}

func NewAssignmentHandler(client *mongo.Client, dbName string) *AssignmentHandler {
	db := client.Database(dbName)
	return &AssignmentHandler{
		db:         db,
		collection: db.Collection("assignments"),
		lectures:   db.Collection("lectures"),
		questions:  db.Collection("questions"),
	}
}

var assignmentExpand = []store.Expand{
	{
		Field:      "lecture",
		Collection: "lectures",
		Projection: bson.M{"is_deleted": 0},
		Nested:     lectureExpand,
	},
	{
		Field:      "questions",
		Collection: "questions",
		Projection: bson.M{"is_deleted": 0},
	},
	{
		Field:      "created_by",
		Collection: "admins",
		Projection: bson.M{"first_name": 1, "last_name": 1, "email": 1, "role": 1},
	},
	{
		Field:      "updated_by",
		Collection: "admins",
		Projection: bson.M{"first_name": 1, "last_name": 1, "email": 1, "role": 1},
	},
}

// participantStudentExpand runs against the participant sub-documents, not
// the assignment itself.
var participantStudentExpand = []store.Expand{
	{
		Field:      "student",
		Collection: "students",
		Projection: bson.M{"first_name": 1, "last_name": 1, "email": 1, "student_id": 1, "status": 1},
	},
}

type createAssignmentRequest struct {
	Status    string   `json:"status" validate:"required,oneof=active inactive"`
	Lecture   string   `json:"lecture" validate:"required"`
	LastDate  string   `json:"last_date" validate:"required"`
	Questions []string `json:"questions" validate:"required,min=1"`
}

func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusForbidden, "Unauthorized action")
		return
	}

	var req createAssignmentRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := utils.Validate.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, requestMessage(err))
		return
	}

	lastDate, err := parseDate(req.LastDate)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid date format for last_date")
		return
	}

	if err := models.ValidateAssignmentLastDate(lastDate, time.Now()); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	lectureID, err := primitive.ObjectIDFromHex(req.Lecture)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid lecture ID")
		return
	}
	questionIDs, err := parseObjectIDs(req.Questions)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid question ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	// The lecture's attendee list seeds the participant roster, so the
	// lecture is loaded rather than probed for existence.
	var lecture models.Lecture
	err = h.lectures.FindOne(ctx, bson.M{"_id": lectureID, "is_deleted.status": false}).Decode(&lecture)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.WriteError(w, http.StatusNotFound, "Lecture not found")
		return
	} else if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Create Assignment. Please try again later")
		return
	}

	allFound, err := store.AllExist(ctx, h.questions, questionIDs, nil)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Create Assignment. Please try again later")
		return
	}
	if !allFound {
		utils.WriteError(w, http.StatusNotFound, "One or more Questions are not found or deleted.")
		return
	}

	participants := make([]models.Participant, 0, len(lecture.Attendees))
	for _, studentID := range lecture.Attendees {
		participants = append(participants, models.Participant{
			Student:     studentID,
			Status:      models.ParticipantPending,
			Attachments: []string{},
		})
	}

	now := time.Now()
	assignment := models.Assignment{
		ID:           primitive.NewObjectID(),
		Status:       models.AssignmentStatus(req.Status),
		Lecture:      lectureID,
		LastDate:     lastDate,
		Questions:    questionIDs,
		Participants: participants,
		CreatedBy:    caller.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := h.collection.InsertOne(ctx, assignment); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error saving Assignment data")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, "Assignment Created Successfully", nil)
}

func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"is_deleted": 0}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := h.collection.Find(ctx, store.NotDeleted(), opts)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get Assignments list. Please try again later")
		return
	}

	var assignments []bson.M
	if err := cursor.All(ctx, &assignments); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get Assignments list. Please try again later")
		return
	}

	if err := h.expand(ctx, assignments); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get Assignments list. Please try again later")
		return
	}

	if assignments == nil {
		assignments = []bson.M{}
	}
	utils.WriteSuccess(w, http.StatusOK, "", assignments)
}

func (h *AssignmentHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Assignment ID required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	var assignment bson.M
	err = h.collection.FindOne(ctx, bson.M{"_id": id, "is_deleted.status": false}).Decode(&assignment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.WriteError(w, http.StatusNotFound, "Assignment Not Found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get Assignment. Please try again later")
		return
	}
	delete(assignment, "is_deleted")

	if err := h.expand(ctx, []bson.M{assignment}); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get Assignment. Please try again later")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "", assignment)
}

// expand resolves the assignment references plus the student reference
// inside each participant sub-document.
func (h *AssignmentHandler) expand(ctx context.Context, assignments []bson.M) error {
	if err := store.Populate(ctx, h.db, assignments, assignmentExpand); err != nil {
		return err
	}

	var participants []bson.M
	for _, assignment := range assignments {
		if list, ok := assignment["participants"].(primitive.A); ok {
			for _, elem := range list {
				if participant, ok := elem.(bson.M); ok {
					participants = append(participants, participant)
				}
			}
		}
	}
	if len(participants) == 0 {
		return nil
	}

	return store.Populate(ctx, h.db, participants, participantStudentExpand)
}

func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Assignment ID required")
		return
	}

	caller, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusForbidden, "Unauthorized action")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	if err := store.SoftDelete(ctx, h.collection, id, caller.ID); err != nil {
		if err == store.ErrNotFound {
			utils.WriteError(w, http.StatusNotFound, "Assignment not found or already deleted")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete Assignment. Please try again later")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Assignment deleted successfully", nil)
}
