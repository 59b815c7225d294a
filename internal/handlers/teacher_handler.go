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
	"golang.org/x/crypto/bcrypt"

	"github.com/abhijith3110/Learning-Management-System/internal/middleware"
	"github.com/abhijith3110/Learning-Management-System/internal/models"
	"github.com/abhijith3110/Learning-Management-System/internal/store"
	"github.com/abhijith3110/Learning-Management-System/internal/utils"
)

type TeacherHandler struct {
	db         *mongo.Database
	collection *mongo.Collection
	subjects   *mongo.Collection
	uploadDir  string
	bcryptCost int
}

func NewTeacherHandler(client *mongo.Client, dbName string, uploadDir string, bcryptCost int) *TeacherHandler {
	db := client.Database(dbName)
	return &TeacherHandler{
		db:         db,
		collection: db.Collection("teachers"),
		subjects:   db.Collection("subjects"),
		uploadDir:  uploadDir,
		bcryptCost: bcryptCost,
	}
}

// subjectExpand resolves the teacher's subject array together with the
// admins who created and last updated each subject.
var subjectExpand = []store.Expand{
	{
		Field:      "subject",
		Collection: "subjects",
		Projection: bson.M{"is_deleted": 0},
		Nested:     adminExpand,
	},
}

type createTeacherRequest struct {
	FirstName string   `json:"first_name" validate:"required"`
	LastName  string   `json:"last_name" validate:"required"`
	Email     string   `json:"email" validate:"required"`
	Password  string   `json:"password" validate:"required"`
	Address   string   `json:"address" validate:"required"`
	Gender    string   `json:"gender" validate:"required,oneof=male female other"`
	DOB       string   `json:"dob" validate:"required"`
	Phone     string   `json:"phone" validate:"required"`
	Subjects  []string `json:"subject" validate:"required,min=1"`
}

func (h *TeacherHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTeacherRequest
	var profileImage string

	if isMultipart(r) {
		path, err := utils.SaveProfileImage(r, h.uploadDir)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Failed to read uploaded file")
			return
		}
		profileImage = path

		req = createTeacherRequest{
			FirstName: formString(r, "first_name"),
			LastName:  formString(r, "last_name"),
			Email:     formString(r, "email"),
			Password:  formString(r, "password"),
			Address:   formString(r, "address"),
			Gender:    formString(r, "gender"),
			DOB:       formString(r, "dob"),
			Phone:     formString(r, "phone"),
		}
		if r.MultipartForm != nil {
			req.Subjects = r.MultipartForm.Value["subject"]
		}
	} else if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := utils.Validate.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, requestMessage(err))
		return
	}

	if !utils.IsValidEmail(req.Email) {
		utils.WriteError(w, http.StatusBadRequest, "Invalid email format")
		return
	}

	if !utils.IsValidPassword(req.Password) {
		utils.WriteError(w, http.StatusBadRequest, passwordRuleMessage)
		return
	}

	if !utils.IsValidPhone(req.Phone) {
		utils.WriteError(w, http.StatusBadRequest, "Phone number must be exactly 10 digits")
		return
	}

	dob, err := parseDate(req.DOB)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid date format for dob")
		return
	}
	if dob.After(time.Now()) {
		utils.WriteError(w, http.StatusBadRequest, "Date of birth cannot be in the future")
		return
	}

	subjectIDs, err := parseObjectIDs(req.Subjects)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid subject ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	exists, err := store.Exists(ctx, h.collection, bson.M{
		"$or": []bson.M{{"email": req.Email}, {"phone": req.Phone}},
	})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Upload Teacher Data. Please try again later")
		return
	}
	if exists {
		utils.WriteError(w, http.StatusConflict, "A teacher with this email or this Phone Number is already exists")
		return
	}

	// Every referenced subject must exist and be live; a partial match
	// fails the whole create.
	ok, err := store.AllExist(ctx, h.subjects, subjectIDs, nil)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Upload Teacher Data. Please try again later")
		return
	}
	if !ok {
		utils.WriteError(w, http.StatusNotFound, "One or more subjects not found")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Upload Teacher Data. Please try again later")
		return
	}

	now := time.Now()
	teacher := models.Teacher{
		ID:           primitive.NewObjectID(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     string(hashed),
		Address:      req.Address,
		Gender:       models.Gender(req.Gender),
		DOB:          dob,
		Age:          utils.CalculateAge(dob, now),
		Phone:        req.Phone,
		Status:       models.TeacherActive,
		Subjects:     subjectIDs,
		ProfileImage: profileImage,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := h.collection.InsertOne(ctx, teacher); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Upload Teacher Data. Please try again later")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated,
		teacher.FirstName+" "+teacher.LastName+" (Teacher) created successfully", nil)
}

func (h *TeacherHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	page := utils.ParsePage(r)

	filters := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filters["status"] = status
	}

	var teachers []bson.M
	total, err := store.FindPage(ctx, h.collection, store.ListQuery{
		Search:       r.URL.Query().Get("search"),
		SearchFields: []string{"first_name", "last_name", "email"},
		Filters:      filters,
		Projection:   bson.M{"is_deleted": 0, "password": 0},
		Page:         page,
	}, &teachers)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get teachers list. Please try again later")
		return
	}

	if err := store.Populate(ctx, h.db, teachers, subjectExpand); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get teachers list. Please try again later")
		return
	}

	if teachers == nil {
		teachers = []bson.M{}
	}
	utils.WriteList(w, teachers, page, total)
}

// ListNames returns id and name pairs of every live teacher, for dropdowns.
func (h *TeacherHandler) ListNames(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	cursor, err := h.collection.Find(ctx, store.NotDeleted())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get teachers list. Please try again later")
		return
	}
	defer cursor.Close(ctx)

	var teachers []models.Teacher
	if err := cursor.All(ctx, &teachers); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get teachers list. Please try again later")
		return
	}

	names := make([]bson.M, 0, len(teachers))
	for _, t := range teachers {
		names = append(names, bson.M{
			"id":         t.ID,
			"first_name": t.FirstName,
			"last_name":  t.LastName,
		})
	}

	utils.WriteSuccess(w, http.StatusOK, "", names)
}

func (h *TeacherHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Teacher ID required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	var teacher bson.M
	err = h.collection.FindOne(ctx, bson.M{"_id": id, "is_deleted.status": false}).Decode(&teacher)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.WriteError(w, http.StatusNotFound, "Teacher Not Found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get teacher. Please try again later")
		return
	}
	delete(teacher, "password")
	delete(teacher, "is_deleted")

	if err := store.Populate(ctx, h.db, []bson.M{teacher}, subjectExpand); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get teacher. Please try again later")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "", teacher)
}

type updateTeacherRequest struct {
	FirstName *string  `json:"first_name"`
	LastName  *string  `json:"last_name"`
	Email     *string  `json:"email"`
	Password  *string  `json:"password"`
	Address   *string  `json:"address"`
	Gender    *string  `json:"gender" validate:"omitempty,oneof=male female other"`
	DOB       *string  `json:"dob"`
	Phone     *string  `json:"phone"`
	Status    *string  `json:"status" validate:"omitempty,oneof=active resigned"`
	Subjects  []string `json:"subject"`
}

func (h *TeacherHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Teacher ID required")
		return
	}

	var req updateTeacherRequest
	var profileImage string

	if isMultipart(r) {
		path, err := utils.SaveProfileImage(r, h.uploadDir)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Failed to read uploaded file")
			return
		}
		profileImage = path

		req = updateTeacherRequest{
			FirstName: formValue(r, "first_name"),
			LastName:  formValue(r, "last_name"),
			Email:     formValue(r, "email"),
			Password:  formValue(r, "password"),
			Address:   formValue(r, "address"),
			Gender:    formValue(r, "gender"),
			DOB:       formValue(r, "dob"),
			Phone:     formValue(r, "phone"),
			Status:    formValue(r, "status"),
		}
		if r.MultipartForm != nil {
			req.Subjects = r.MultipartForm.Value["subject"]
		}
	} else if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := utils.Validate.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, requestMessage(err))
		return
	}

	if req.Email != nil && !utils.IsValidEmail(*req.Email) {
		utils.WriteError(w, http.StatusBadRequest, "Invalid email format!")
		return
	}

	if req.Password != nil && !utils.IsValidPassword(*req.Password) {
		utils.WriteError(w, http.StatusBadRequest, passwordRuleMessage)
		return
	}

	if req.Phone != nil && !utils.IsValidPhone(*req.Phone) {
		utils.WriteError(w, http.StatusBadRequest, "Phone number must be exactly 10 digits")
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	setString(update, "first_name", req.FirstName)
	setString(update, "last_name", req.LastName)
	setString(update, "email", req.Email)
	setString(update, "address", req.Address)
	setString(update, "gender", req.Gender)
	setString(update, "phone", req.Phone)
	setString(update, "status", req.Status)

	if req.DOB != nil {
		dob, err := parseDate(*req.DOB)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Invalid date format for dob")
			return
		}
		if dob.After(time.Now()) {
			utils.WriteError(w, http.StatusBadRequest, "Date of birth cannot be in the future")
			return
		}
		update["dob"] = dob
		update["age"] = utils.CalculateAge(dob, time.Now())
	}

	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), h.bcryptCost)
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "Failed to Update teacher. Please try again later")
			return
		}
		update["password"] = string(hashed)
	}

	if profileImage != "" {
		update["profile_image"] = profileImage
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	if len(req.Subjects) > 0 {
		subjectIDs, err := parseObjectIDs(req.Subjects)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Invalid subject ID")
			return
		}

		ok, err := store.AllExist(ctx, h.subjects, subjectIDs, nil)
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "Failed to Update teacher. Please try again later")
			return
		}
		if !ok {
			utils.WriteError(w, http.StatusNotFound, "One or more subjects not found")
			return
		}
		update["subject"] = subjectIDs
	}

	if conflict := uniquenessTerms(req.Email, req.Phone); conflict != nil {
		exists, err := store.Exists(ctx, h.collection, bson.M{"$or": conflict, "_id": bson.M{"$ne": id}})
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "Failed to Update teacher. Please try again later")
			return
		}
		if exists {
			utils.WriteError(w, http.StatusConflict, "A Teacher with this email or this Phone Number is already exists")
			return
		}
	}

	var teacher models.Teacher
	err = h.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "is_deleted.status": false},
		bson.M{"$set": update},
		afterUpdate(),
	).Decode(&teacher)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.WriteError(w, http.StatusNotFound, "Teacher Not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Update teacher. Please try again later")
		return
	}

	utils.WriteSuccess(w, http.StatusOK,
		teacher.FirstName+" "+teacher.LastName+" (Teacher) Updated successfully", nil)
}

type deleteTeachersRequest struct {
	IDs []string `json:"ids"`
}

// Delete soft-deletes a batch of teachers in one conditional updateMany.
// Superadmin-only. Nothing matching (all already deleted or unknown) is 404.
func (h *TeacherHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteTeachersRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(req.IDs) == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Teacher ID is required")
		return
	}

	ids, err := parseObjectIDs(req.IDs)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid teacher ID")
		return
	}

	caller, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusForbidden, "Unauthorized action")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	matched, err := store.SoftDeleteMany(ctx, h.collection, ids, caller.ID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete Teacher. Please try again later")
		return
	}
	if matched == 0 {
		utils.WriteError(w, http.StatusNotFound, "No Teacher found or already deleted")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Teacher deleted successfully", nil)
}
