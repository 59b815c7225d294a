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

type SubjectHandler struct {
	db         *mongo.Database
	collection *mongo.Collection
}

func NewSubjectHandler(client *mongo.Client, dbName string) *SubjectHandler {
	db := client.Database(dbName)
	return &SubjectHandler{
		db:         db,
		collection: db.Collection("subjects"),
	}
}

// adminExpand resolves created_by/updated_by admin references on subjects.
var adminExpand = []store.Expand{
	{
		Field:      "created_by",
		Collection: "admins",
		Projection: bson.M{"first_name": 1, "last_name": 1, "email": 1, "role": 1, "status": 1, "profile_image": 1},
	},
	{
		Field:      "updated_by",
		Collection: "admins",
		Projection: bson.M{"first_name": 1, "last_name": 1, "email": 1, "role": 1, "status": 1, "profile_image": 1},
	},
}

type subjectRequest struct {
	Name string `json:"subject_name"`
}

func (h *SubjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req subjectRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name == "" {
		utils.WriteError(w, http.StatusBadRequest, "Name of the subject is required")
		return
	}

	caller, _ := middleware.AdminFromContext(r.Context())

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	exists, err := store.Exists(ctx, h.collection, bson.M{"subject_name": req.Name})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Upload Subject. Please try again")
		return
	}
	if exists {
		utils.WriteError(w, http.StatusConflict, "A subject with this name already exists")
		return
	}

	now := time.Now()
	subject := models.Subject{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		CreatedBy: caller.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := h.collection.InsertOne(ctx, subject); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Upload Subject. Please try again")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, subject.Name+" Subject is Added Successfully", nil)
}

func (h *SubjectHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	page := utils.ParsePage(r)

	var subjects []bson.M
	total, err := store.FindPage(ctx, h.collection, store.ListQuery{
		Search:       r.URL.Query().Get("search"),
		SearchFields: []string{"subject_name"},
		Projection:   bson.M{"is_deleted": 0},
		Page:         page,
	}, &subjects)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get Subjects. Please try again")
		return
	}

	if err := store.Populate(ctx, h.db, subjects, adminExpand); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get Subjects. Please try again")
		return
	}

	if subjects == nil {
		subjects = []bson.M{}
	}
	utils.WriteList(w, subjects, page, total)
}

func (h *SubjectHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Subject ID required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	var subject bson.M
	err = h.collection.FindOne(ctx, bson.M{"_id": id, "is_deleted.status": false}).Decode(&subject)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.WriteError(w, http.StatusNotFound, "Subject not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get subject. Please try again")
		return
	}
	delete(subject, "is_deleted")

	if err := store.Populate(ctx, h.db, []bson.M{subject}, adminExpand); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get subject. Please try again")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "", subject)
}

func (h *SubjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Subject ID required")
		return
	}

	var req subjectRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name == "" {
		utils.WriteError(w, http.StatusBadRequest, "Name of the subject is required")
		return
	}

	caller, _ := middleware.AdminFromContext(r.Context())

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	exists, err := store.Exists(ctx, h.collection, bson.M{"subject_name": req.Name, "_id": bson.M{"$ne": id}})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Update subject. Please try again")
		return
	}
	if exists {
		utils.WriteError(w, http.StatusConflict, "A subject with this name already exists")
		return
	}

	var subject models.Subject
	err = h.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "is_deleted.status": false},
		bson.M{"$set": bson.M{
			"subject_name": req.Name,
			"updated_by":   caller.ID,
			"updatedAt":    time.Now(),
		}},
		afterUpdate(),
	).Decode(&subject)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.WriteError(w, http.StatusNotFound, "Subject not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Update subject. Please try again")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, subject.Name+" subject Updated successfully", nil)
}

// Delete soft-deletes a subject. Superadmin-only.
func (h *SubjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Subject ID required")
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
			utils.WriteError(w, http.StatusNotFound, "Subject not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete subject. Please try again")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Subject deleted successfully", nil)
}
