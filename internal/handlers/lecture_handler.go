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

	"github.com/abhijith3110/Learning-Management-System/internal/middleware"
	"github.com/abhijith3110/Learning-Management-System/internal/models"
	"github.com/abhijith3110/Learning-Management-System/internal/store"
	"github.com/abhijith3110/Learning-Management-System/internal/utils"
)

type LectureHandler struct {
	db         *mongo.Database
	collection *mongo.Collection
	subjects   *mongo.Collection
	teachers   *mongo.Collection
	batches    *mongo.Collection
	students   *mongo.Collection
}

func NewLectureHandler(client *mongo.Client, dbName string) *LectureHandler {
	db := client.Database(dbName)
	return &LectureHandler{
		db:         db,
		collection: db.Collection("lectures"),
		subjects:   db.Collection("subjects"),
		teachers:   db.Collection("teachers"),
		batches:    db.Collection("batches"),
		students:   db.Collection("students"),
	}
}

// lectureExpand resolves every reference a lecture carries, two levels deep
// where the referenced document itself holds references.
var lectureExpand = []store.Expand{
	{
		Field:      "teacher",
		Collection: "teachers",
		Projection: bson.M{"first_name": 1, "last_name": 1, "email": 1, "subject": 1, "status": 1},
		Nested: []store.Expand{
			{
				Field:      "subject",
				Collection: "subjects",
				Projection: bson.M{"subject_name": 1},
			},
		},
	},
	{
		Field:      "subject",
		Collection: "subjects",
		Projection: bson.M{"subject_name": 1},
	},
	{
		Field:      "attendees",
		Collection: "students",
		Projection: bson.M{"first_name": 1, "last_name": 1, "email": 1, "student_id": 1, "status": 1},
	},
	{
		Field:      "batch",
		Collection: "batches",
		Projection: bson.M{"is_deleted": 0},
		Nested:     inChargeExpand,
	},
}

type createLectureRequest struct {
	Duration  *models.Duration    `json:"duration" validate:"required"`
	Link      *models.LectureLink `json:"link"`
	Status    string              `json:"status" validate:"required,oneof=draft pending progress completed"`
	Subject   string              `json:"subject" validate:"required"`
	Batch     string              `json:"batch" validate:"required"`
	Teacher   string              `json:"teacher" validate:"required"`
	Attendees []string            `json:"attendees"`
	Notes     string              `json:"notes"`
}

func (h *LectureHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLectureRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := utils.Validate.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, requestMessage(err))
		return
	}

	if err := models.ValidateLectureDuration(*req.Duration, time.Now()); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Status != string(models.LectureDraft) && (req.Link == nil || req.Link.Live == "") {
		utils.WriteError(w, http.StatusBadRequest, "Lecture link is required unless the lecture is a draft")
		return
	}

	subjectID, err := primitive.ObjectIDFromHex(req.Subject)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid subject ID")
		return
	}
	batchID, err := primitive.ObjectIDFromHex(req.Batch)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid batch ID")
		return
	}
	teacherID, err := primitive.ObjectIDFromHex(req.Teacher)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid teacher ID")
		return
	}
	attendees, err := parseObjectIDs(req.Attendees)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid attendee ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	if err := h.checkReferences(ctx, subjectID, teacherID, batchID, attendees, w); err != nil {
		return
	}

	now := time.Now()
	lecture := models.Lecture{
		ID:        primitive.NewObjectID(),
		Duration:  *req.Duration,
		Link:      req.Link,
		Status:    models.LectureStatus(req.Status),
		Subject:   subjectID,
		Batch:     batchID,
		Teacher:   teacherID,
		Attendees: attendees,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := h.collection.InsertOne(ctx, lecture); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error saving Lecture data")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, "Lecture created Successfully", nil)
}

// checkReferences verifies subject, teacher, batch and attendees together.
// The teacher must be live and assigned to the subject; every attendee must
// be a live student enrolled in the batch. On failure it writes the response
// and returns a non-nil error so the caller stops.
func (h *LectureHandler) checkReferences(ctx context.Context, subjectID, teacherID, batchID primitive.ObjectID, attendees []primitive.ObjectID, w http.ResponseWriter) error {
	subjectExists, err := store.Exists(ctx, h.subjects, bson.M{"_id": subjectID, "is_deleted.status": false})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to save Lecture. Please try again later")
		return err
	}
	if !subjectExists {
		utils.WriteError(w, http.StatusNotFound, "Subject not Found")
		return store.ErrNotFound
	}

	teacherExists, err := store.Exists(ctx, h.teachers, bson.M{
		"_id":               teacherID,
		"is_deleted.status": false,
		"subject":           subjectID,
	})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to save Lecture. Please try again later")
		return err
	}
	if !teacherExists {
		utils.WriteError(w, http.StatusNotFound, "Teacher not Found")
		return store.ErrNotFound
	}

	batchExists, err := store.Exists(ctx, h.batches, bson.M{"_id": batchID, "is_deleted.status": false})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to save Lecture. Please try again later")
		return err
	}
	if !batchExists {
		utils.WriteError(w, http.StatusNotFound, "Batch not Found")
		return store.ErrNotFound
	}

	if len(attendees) > 0 {
		ok, err := store.AllExist(ctx, h.students, attendees, bson.M{"batch": batchID})
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "Failed to save Lecture. Please try again later")
			return err
		}
		if !ok {
			utils.WriteError(w, http.StatusNotFound, "One or more attendees are not found, deleted, or not part of the batch.")
			return store.ErrNotFound
		}
	}

	return nil
}

func (h *LectureHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	page := utils.ParsePage(r)

	filters := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filters["status"] = status
	}
	if batch := r.URL.Query().Get("batch"); batch != "" {
		if batchID, err := primitive.ObjectIDFromHex(batch); err == nil {
			filters["batch"] = batchID
		}
	}

	var lectures []bson.M
	total, err := store.FindPage(ctx, h.collection, store.ListQuery{
		Search:       r.URL.Query().Get("search"),
		SearchFields: []string{"notes"},
		Filters:      filters,
		Projection:   bson.M{"is_deleted": 0},
		Page:         page,
	}, &lectures)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get Lectures list. Please try again later")
		return
	}

	if err := store.Populate(ctx, h.db, lectures, lectureExpand); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get Lectures list. Please try again later")
		return
	}

	if lectures == nil {
		lectures = []bson.M{}
	}
	utils.WriteList(w, lectures, page, total)
}

func (h *LectureHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Lecture ID required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	var lecture bson.M
	err = h.collection.FindOne(ctx, bson.M{"_id": id, "is_deleted.status": false}).Decode(&lecture)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.WriteError(w, http.StatusNotFound, "Lecture Not Found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get Lecture. Please try again later")
		return
	}
	delete(lecture, "is_deleted")

	if err := store.Populate(ctx, h.db, []bson.M{lecture}, lectureExpand); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get Lecture. Please try again later")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "", lecture)
}

type updateLectureRequest struct {
	Duration  *models.Duration    `json:"duration"`
	Link      *models.LectureLink `json:"link"`
	Status    *string             `json:"status" validate:"omitempty,oneof=draft pending progress completed"`
	Subject   *string             `json:"subject"`
	Batch     *string             `json:"batch"`
	Teacher   *string             `json:"teacher"`
	Attendees []string            `json:"attendees"`
	Notes     *string             `json:"notes"`
}

func (h *LectureHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Lecture ID required")
		return
	}

	var req updateLectureRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := utils.Validate.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, requestMessage(err))
		return
	}

	if req.Duration != nil {
		if err := models.ValidateLectureDuration(*req.Duration, time.Now()); err != nil {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	// The current record decides the effective subject and batch when only
	// some of the cross-references change.
	var current models.Lecture
	if err := h.collection.FindOne(ctx, bson.M{"_id": id, "is_deleted.status": false}).Decode(&current); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.WriteError(w, http.StatusNotFound, "Lecture Not Found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Update Lecture. Please try again later")
		return
	}

	subjectID := current.Subject
	if req.Subject != nil {
		subjectID, err = primitive.ObjectIDFromHex(*req.Subject)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Invalid subject ID")
			return
		}
	}
	batchID := current.Batch
	if req.Batch != nil {
		batchID, err = primitive.ObjectIDFromHex(*req.Batch)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Invalid batch ID")
			return
		}
	}
	teacherID := current.Teacher
	if req.Teacher != nil {
		teacherID, err = primitive.ObjectIDFromHex(*req.Teacher)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Invalid teacher ID")
			return
		}
	}
	attendees := current.Attendees
	if req.Attendees != nil {
		attendees, err = parseObjectIDs(req.Attendees)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Invalid attendee ID")
			return
		}
	}

	if err := h.checkReferences(ctx, subjectID, teacherID, batchID, attendees, w); err != nil {
		return
	}

	status := current.Status
	if req.Status != nil {
		status = models.LectureStatus(*req.Status)
	}
	link := current.Link
	if req.Link != nil {
		link = req.Link
	}
	if status != models.LectureDraft && (link == nil || link.Live == "") {
		utils.WriteError(w, http.StatusBadRequest, "Lecture link is required unless the lecture is a draft")
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Duration != nil {
		update["duration"] = *req.Duration
	}
	if req.Link != nil {
		update["link"] = req.Link
	}
	if req.Status != nil {
		update["status"] = *req.Status
	}
	if req.Subject != nil {
		update["subject"] = subjectID
	}
	if req.Batch != nil {
		update["batch"] = batchID
	}
	if req.Teacher != nil {
		update["teacher"] = teacherID
	}
	if req.Attendees != nil {
		update["attendees"] = attendees
	}
	setString(update, "notes", req.Notes)

	var lecture models.Lecture
	err = h.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "is_deleted.status": false},
		bson.M{"$set": update},
		afterUpdate(),
	).Decode(&lecture)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.WriteError(w, http.StatusNotFound, "Lecture Not Found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Update Lecture. Please try again later")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Lecture Updated Successfully", nil)
}

func (h *LectureHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Lecture ID required")
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
			utils.WriteError(w, http.StatusNotFound, "Lecture not found or already deleted")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete Lecture. Please try again later")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Lecture deleted successfully", nil)
}
