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

type QuestionHandler struct {
	db         *mongo.Database
	collection *mongo.Collection
	batches    *mongo.Collection
}

func NewQuestionHandler(client *mongo.Client, dbName string) *QuestionHandler {
	db := client.Database(dbName)
	return &QuestionHandler{
		db:         db,
		collection: db.Collection("questions"),
		batches:    db.Collection("batches"),
	}
}

var questionExpand = []store.Expand{
	{
		Field:      "batch",
		Collection: "batches",
		Projection: bson.M{"is_deleted": 0},
		Nested:     inChargeExpand,
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

type createQuestionRequest struct {
	Type     string                  `json:"type" validate:"required,oneof=objective subjective"`
	Question string                  `json:"question" validate:"required"`
	Options  *models.QuestionOptions `json:"options"`
	Answer   []string                `json:"answer" validate:"required,min=1"`
	Batch    string                  `json:"batch" validate:"required"`
}

func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusForbidden, "Unauthorized action")
		return
	}

	var req createQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := utils.Validate.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, requestMessage(err))
		return
	}

	if err := models.ValidateQuestionOptions(models.QuestionType(req.Type), req.Options); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	batchID, err := primitive.ObjectIDFromHex(req.Batch)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid batch ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	batchExists, err := store.Exists(ctx, h.batches, bson.M{"_id": batchID, "is_deleted.status": false})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Create Question. Please try again later")
		return
	}
	if !batchExists {
		utils.WriteError(w, http.StatusNotFound, "Batch not Found or Batch is deleted")
		return
	}

	now := time.Now()
	question := models.Question{
		ID:        primitive.NewObjectID(),
		Type:      models.QuestionType(req.Type),
		Question:  req.Question,
		Options:   req.Options,
		Answer:    req.Answer,
		Batch:     batchID,
		CreatedBy: caller.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := h.collection.InsertOne(ctx, question); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error saving Question data")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, "Question Created Successfully", nil)
}

func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	page := utils.ParsePage(r)

	filters := bson.M{}
	if qType := r.URL.Query().Get("type"); qType != "" {
		filters["type"] = qType
	}
	if batch := r.URL.Query().Get("batch"); batch != "" {
		if batchID, err := primitive.ObjectIDFromHex(batch); err == nil {
			filters["batch"] = batchID
		}
	}

	var questions []bson.M
	total, err := store.FindPage(ctx, h.collection, store.ListQuery{
		Search:       r.URL.Query().Get("search"),
		SearchFields: []string{"question"},
		Filters:      filters,
		Projection:   bson.M{"is_deleted": 0},
		Page:         page,
	}, &questions)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get Questions list. Please try again later")
		return
	}

	if err := store.Populate(ctx, h.db, questions, questionExpand); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get Questions list. Please try again later")
		return
	}

	if questions == nil {
		questions = []bson.M{}
	}
	utils.WriteList(w, questions, page, total)
}

func (h *QuestionHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Question ID required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	var question bson.M
	err = h.collection.FindOne(ctx, bson.M{"_id": id, "is_deleted.status": false}).Decode(&question)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.WriteError(w, http.StatusNotFound, "Question Not Found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get Question. Please try again later")
		return
	}
	delete(question, "is_deleted")

	if err := store.Populate(ctx, h.db, []bson.M{question}, questionExpand); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get Question. Please try again later")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "", question)
}

type updateQuestionRequest struct {
	Type     *string                 `json:"type" validate:"omitempty,oneof=objective subjective"`
	Question *string                 `json:"question"`
	Options  *models.QuestionOptions `json:"options"`
	Answer   []string                `json:"answer"`
	Batch    *string                 `json:"batch"`
}

func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Question ID required")
		return
	}

	caller, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusForbidden, "Unauthorized action")
		return
	}

	var req updateQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := utils.Validate.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, requestMessage(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	// The type/options pairing is validated against the effective state,
	// so changing only the type still catches a stale options block.
	var current models.Question
	if err := h.collection.FindOne(ctx, bson.M{"_id": id, "is_deleted.status": false}).Decode(&current); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.WriteError(w, http.StatusNotFound, "Question Not Found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Update Question. Please try again later")
		return
	}

	qType := current.Type
	if req.Type != nil {
		qType = models.QuestionType(*req.Type)
	}
	options := current.Options
	if req.Options != nil {
		options = req.Options
	}
	if qType == models.QuestionSubjective && req.Type != nil && req.Options == nil {
		options = nil
	}
	if err := models.ValidateQuestionOptions(qType, options); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	update := bson.M{"updatedAt": time.Now(), "updated_by": caller.ID}
	if req.Type != nil {
		update["type"] = *req.Type
		if qType == models.QuestionSubjective {
			update["options"] = nil
		}
	}
	setString(update, "question", req.Question)
	if req.Options != nil {
		update["options"] = req.Options
	}
	if req.Answer != nil {
		update["answer"] = req.Answer
	}

	if req.Batch != nil {
		batchID, err := primitive.ObjectIDFromHex(*req.Batch)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Invalid batch ID")
			return
		}

		batchExists, err := store.Exists(ctx, h.batches, bson.M{"_id": batchID, "is_deleted.status": false})
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "Failed to Update Question. Please try again later")
			return
		}
		if !batchExists {
			utils.WriteError(w, http.StatusNotFound, "Batch not Found or Batch is deleted")
			return
		}
		update["batch"] = batchID
	}

	var question models.Question
	err = h.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "is_deleted.status": false},
		bson.M{"$set": update},
		afterUpdate(),
	).Decode(&question)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.WriteError(w, http.StatusNotFound, "Question Not Found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Update Question. Please try again later")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Question Updated Successfully", nil)
}

func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Question ID required")
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
			utils.WriteError(w, http.StatusNotFound, "Question not found or already deleted")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete Question. Please try again later")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Question deleted successfully", nil)
}
