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

type BatchHandler struct {
	db         *mongo.Database
	collection *mongo.Collection
	teachers   *mongo.Collection
}

func NewBatchHandler(client *mongo.Client, dbName string) *BatchHandler {
	db := client.Database(dbName)
	return &BatchHandler{
		db:         db,
		collection: db.Collection("batches"),
		teachers:   db.Collection("teachers"),
	}
}

// inChargeExpand resolves the batch's teacher in charge and that teacher's
// subjects.
var inChargeExpand = []store.Expand{
	{
		Field:      "in_charge",
		Collection: "teachers",
		Projection: bson.M{"first_name": 1, "last_name": 1, "email": 1, "subject": 1, "status": 1, "profile_image": 1},
		Nested: []store.Expand{
			{
				Field:      "subject",
				Collection: "subjects",
				Projection: bson.M{"subject_name": 1},
			},
		},
	},
}

type createBatchRequest struct {
	Name     string           `json:"name" validate:"required"`
	InCharge string           `json:"in_charge" validate:"required"`
	Type     string           `json:"type" validate:"required,oneof=free paid 'crash course'"`
	Status   string           `json:"status" validate:"required,oneof=draft inprogress completed about-to-start"`
	Duration *models.Duration `json:"duration" validate:"required"`
}

func (h *BatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBatchRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := utils.Validate.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, requestMessage(err))
		return
	}

	if err := models.ValidateBatchDuration(*req.Duration, time.Now()); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	inCharge, err := primitive.ObjectIDFromHex(req.InCharge)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid teacher ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	exists, err := store.Exists(ctx, h.collection, bson.M{"name": req.Name})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Create Batch. Please try again.")
		return
	}
	if exists {
		utils.WriteError(w, http.StatusConflict, "This Batch Already exists")
		return
	}

	teacherExists, err := store.Exists(ctx, h.teachers, bson.M{"_id": inCharge, "is_deleted.status": false})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Create Batch. Please try again.")
		return
	}
	if !teacherExists {
		utils.WriteError(w, http.StatusNotFound, "Teacher not Found")
		return
	}

	now := time.Now()
	batch := models.Batch{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		InCharge:  inCharge,
		Type:      models.BatchType(req.Type),
		Status:    models.BatchStatus(req.Status),
		Duration:  *req.Duration,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := h.collection.InsertOne(ctx, batch); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error saving Batch data")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, "Batch created Successfully", nil)
}

func (h *BatchHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	page := utils.ParsePage(r)

	filters := bson.M{}
	if batchType := r.URL.Query().Get("type"); batchType != "" {
		filters["type"] = batchType
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filters["status"] = status
	}

	var batches []bson.M
	total, err := store.FindPage(ctx, h.collection, store.ListQuery{
		Search:       r.URL.Query().Get("search"),
		SearchFields: []string{"name"},
		Filters:      filters,
		Projection:   bson.M{"is_deleted": 0},
		Page:         page,
	}, &batches)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to List All Batches. Please try again.")
		return
	}

	if err := store.Populate(ctx, h.db, batches, inChargeExpand); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to List All Batches. Please try again.")
		return
	}

	if batches == nil {
		batches = []bson.M{}
	}
	utils.WriteList(w, batches, page, total)
}

func (h *BatchHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Batch ID required.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	var batch bson.M
	err = h.collection.FindOne(ctx, bson.M{"_id": id, "is_deleted.status": false}).Decode(&batch)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.WriteError(w, http.StatusNotFound, "Batch Not found.")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get Batch. Please try again.")
		return
	}
	delete(batch, "is_deleted")

	if err := store.Populate(ctx, h.db, []bson.M{batch}, inChargeExpand); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get Batch. Please try again.")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "", batch)
}

type updateBatchRequest struct {
	Name     *string          `json:"name"`
	InCharge *string          `json:"in_charge"`
	Type     *string          `json:"type" validate:"omitempty,oneof=free paid 'crash course'"`
	Status   *string          `json:"status" validate:"omitempty,oneof=draft inprogress completed about-to-start"`
	Duration *models.Duration `json:"duration"`
}

func (h *BatchHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Batch ID required")
		return
	}

	var req updateBatchRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := utils.Validate.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, requestMessage(err))
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	setString(update, "name", req.Name)
	setString(update, "type", req.Type)
	setString(update, "status", req.Status)

	if req.Duration != nil {
		if err := models.ValidateBatchDuration(*req.Duration, time.Now()); err != nil {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		update["duration"] = *req.Duration
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	if req.InCharge != nil {
		inCharge, err := primitive.ObjectIDFromHex(*req.InCharge)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Invalid teacher ID")
			return
		}

		teacherExists, err := store.Exists(ctx, h.teachers, bson.M{"_id": inCharge, "is_deleted.status": false})
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "Failed to Update Batch. Please try again.")
			return
		}
		if !teacherExists {
			utils.WriteError(w, http.StatusNotFound, "Teacher Not found")
			return
		}
		update["in_charge"] = inCharge
	}

	if req.Name != nil {
		exists, err := store.Exists(ctx, h.collection, bson.M{"name": *req.Name, "_id": bson.M{"$ne": id}})
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "Failed to Update Batch. Please try again.")
			return
		}
		if exists {
			utils.WriteError(w, http.StatusConflict, "This batch name is already exist")
			return
		}
	}

	res := h.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "is_deleted.status": false},
		bson.M{"$set": update},
		afterUpdate(),
	)
	if err := res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.WriteError(w, http.StatusNotFound, "Batch not found.")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Update Batch. Please try again.")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Batch Updated Successfully", nil)
}

func (h *BatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Batch ID required")
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
			utils.WriteError(w, http.StatusNotFound, "Batch not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete Batch. Please try again.")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Batch deleted successfully", nil)
}
