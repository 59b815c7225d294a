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

type StudentHandler struct {
	db         *mongo.Database
	collection *mongo.Collection
	batches    *mongo.Collection
	uploadDir  string
	bcryptCost int
}

func NewStudentHandler(client *mongo.Client, dbName string, uploadDir string, bcryptCost int) *StudentHandler {
	db := client.Database(dbName)
	return &StudentHandler{
		db:         db,
		collection: db.Collection("students"),
		batches:    db.Collection("batches"),
		uploadDir:  uploadDir,
		bcryptCost: bcryptCost,
	}
}

// batchExpand resolves the student's batch with its teacher in charge.
var batchExpand = []store.Expand{
	{
		Field:      "batch",
		Collection: "batches",
		Projection: bson.M{"is_deleted": 0},
		Nested:     inChargeExpand,
	},
}

type createStudentRequest struct {
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	Email        string `json:"email" validate:"required"`
	Password     string `json:"password" validate:"required"`
	Gender       string `json:"gender" validate:"required,oneof=male female other"`
	DOB          string `json:"dob" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Status       string `json:"status" validate:"required,oneof=active inactive"`
	Batch        string `json:"batch" validate:"required"`
	Address      string `json:"address"`
	ParentName   string `json:"parent_name"`
	ParentNumber string `json:"parent_number"`
}

func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createStudentRequest
	var profileImage string

	if isMultipart(r) {
		path, err := utils.SaveProfileImage(r, h.uploadDir)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Failed to read uploaded file")
			return
		}
		profileImage = path

		req = createStudentRequest{
			FirstName:    formString(r, "first_name"),
			LastName:     formString(r, "last_name"),
			Email:        formString(r, "email"),
			Password:     formString(r, "password"),
			Gender:       formString(r, "gender"),
			DOB:          formString(r, "dob"),
			Phone:        formString(r, "phone"),
			Status:       formString(r, "status"),
			Batch:        formString(r, "batch"),
			Address:      formString(r, "address"),
			ParentName:   formString(r, "parent_name"),
			ParentNumber: formString(r, "parent_number"),
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
		utils.WriteError(w, http.StatusBadRequest, "Invalid email format!")
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

	if req.ParentNumber != "" {
		if !utils.IsValidPhone(req.ParentNumber) {
			utils.WriteError(w, http.StatusBadRequest, "Parent number must be exactly 10 digits")
			return
		}
		if req.ParentNumber == req.Phone {
			utils.WriteError(w, http.StatusBadRequest, "Parent number must be different from the student's phone number")
			return
		}
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

	batchID, err := primitive.ObjectIDFromHex(req.Batch)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid batch ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	var existing models.Student
	err = h.collection.FindOne(ctx, bson.M{
		"$or": []bson.M{{"email": req.Email}, {"phone": req.Phone}},
	}).Decode(&existing)
	if err == nil {
		message := "A Student with this phone number already exists"
		if existing.Email == req.Email {
			message = "A Student with this email already exists"
		}
		utils.WriteError(w, http.StatusConflict, message)
		return
	} else if err != mongo.ErrNoDocuments {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Upload Student Data. Please try again later")
		return
	}

	batchExists, err := store.Exists(ctx, h.batches, bson.M{"_id": batchID, "is_deleted.status": false})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Upload Student Data. Please try again later")
		return
	}
	if !batchExists {
		utils.WriteError(w, http.StatusNotFound, "Batch not Found")
		return
	}

	studentID, err := h.uniqueStudentID(ctx, req.FirstName)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Upload Student Data. Please try again later")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Upload Student Data. Please try again later")
		return
	}

	now := time.Now()
	student := models.Student{
		ID:           primitive.NewObjectID(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     string(hashed),
		Gender:       models.Gender(req.Gender),
		DOB:          dob,
		Age:          utils.CalculateAge(dob, now),
		Phone:        req.Phone,
		Status:       models.StudentStatus(req.Status),
		StudentID:    studentID,
		Batch:        batchID,
		ProfileImage: profileImage,
		Address:      req.Address,
		ParentName:   req.ParentName,
		ParentNumber: req.ParentNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := h.collection.InsertOne(ctx, student); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error saving Student data")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated,
		student.FirstName+" "+student.LastName+" (Student) created successfully", nil)
}

// uniqueStudentID generates a student id and re-probes storage until it is
// unused. The generator mixes a timestamp with randomness, so a collision
// is rare and the loop is nearly always a single pass.
func (h *StudentHandler) uniqueStudentID(ctx context.Context, firstName string) (string, error) {
	for i := 0; i < 5; i++ {
		candidate := utils.GenerateStudentID(firstName)
		exists, err := store.Exists(ctx, h.collection, bson.M{"student_id": candidate})
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", errors.New("could not allocate a unique student id")
}

func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	page := utils.ParsePage(r)

	filters := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filters["status"] = status
	}
	if gender := r.URL.Query().Get("gender"); gender != "" {
		filters["gender"] = gender
	}
	if batch := r.URL.Query().Get("batch"); batch != "" {
		if batchID, err := primitive.ObjectIDFromHex(batch); err == nil {
			filters["batch"] = batchID
		}
	}

	var students []bson.M
	total, err := store.FindPage(ctx, h.collection, store.ListQuery{
		Search:       r.URL.Query().Get("search"),
		SearchFields: []string{"first_name", "last_name", "email", "student_id"},
		Filters:      filters,
		Projection:   bson.M{"is_deleted": 0, "password": 0},
		Page:         page,
	}, &students)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get Students list. Please try again later")
		return
	}

	if err := store.Populate(ctx, h.db, students, batchExpand); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get Students list. Please try again later")
		return
	}

	if students == nil {
		students = []bson.M{}
	}
	utils.WriteList(w, students, page, total)
}

func (h *StudentHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Student ID required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	var student bson.M
	err = h.collection.FindOne(ctx, bson.M{"_id": id, "is_deleted.status": false}).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.WriteError(w, http.StatusNotFound, "Student Not Found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get Student. Please try again later")
		return
	}
	delete(student, "password")
	delete(student, "is_deleted")

	if err := store.Populate(ctx, h.db, []bson.M{student}, batchExpand); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get Student. Please try again later")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "", student)
}

type updateStudentRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Email        *string `json:"email"`
	Password     *string `json:"password"`
	Gender       *string `json:"gender" validate:"omitempty,oneof=male female other"`
	DOB          *string `json:"dob"`
	Phone        *string `json:"phone"`
	Status       *string `json:"status" validate:"omitempty,oneof=active inactive"`
	Batch        *string `json:"batch"`
	Address      *string `json:"address"`
	ParentName   *string `json:"parent_name"`
	ParentNumber *string `json:"parent_number"`
}

func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Student ID required")
		return
	}

	var req updateStudentRequest
	var profileImage string

	if isMultipart(r) {
		path, err := utils.SaveProfileImage(r, h.uploadDir)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Failed to read uploaded file")
			return
		}
		profileImage = path

		req = updateStudentRequest{
			FirstName:    formValue(r, "first_name"),
			LastName:     formValue(r, "last_name"),
			Email:        formValue(r, "email"),
			Password:     formValue(r, "password"),
			Gender:       formValue(r, "gender"),
			DOB:          formValue(r, "dob"),
			Phone:        formValue(r, "phone"),
			Status:       formValue(r, "status"),
			Batch:        formValue(r, "batch"),
			Address:      formValue(r, "address"),
			ParentName:   formValue(r, "parent_name"),
			ParentNumber: formValue(r, "parent_number"),
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

	if req.ParentNumber != nil && *req.ParentNumber != "" && !utils.IsValidPhone(*req.ParentNumber) {
		utils.WriteError(w, http.StatusBadRequest, "Parent number must be exactly 10 digits")
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	setString(update, "first_name", req.FirstName)
	setString(update, "last_name", req.LastName)
	setString(update, "email", req.Email)
	setString(update, "gender", req.Gender)
	setString(update, "phone", req.Phone)
	setString(update, "status", req.Status)
	setString(update, "address", req.Address)
	setString(update, "parent_name", req.ParentName)
	setString(update, "parent_number", req.ParentNumber)

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
			utils.WriteError(w, http.StatusInternalServerError, "Failed to Update Student. Please try again later")
			return
		}
		update["password"] = string(hashed)
	}

	if profileImage != "" {
		update["profile_image"] = profileImage
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	// Current record, needed to compare phone against parent_number when
	// only one of them changes.
	var current models.Student
	if err := h.collection.FindOne(ctx, bson.M{"_id": id, "is_deleted.status": false}).Decode(&current); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.WriteError(w, http.StatusNotFound, "Student Not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Update Student. Please try again later")
		return
	}

	phone := current.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	parentNumber := current.ParentNumber
	if req.ParentNumber != nil {
		parentNumber = *req.ParentNumber
	}
	if parentNumber != "" && parentNumber == phone {
		utils.WriteError(w, http.StatusBadRequest, "Parent number must be different from the student's phone number")
		return
	}

	if conflict := uniquenessTerms(req.Email, req.Phone); conflict != nil {
		var existing models.Student
		err := h.collection.FindOne(ctx, bson.M{"$or": conflict, "_id": bson.M{"$ne": id}}).Decode(&existing)
		if err == nil {
			message := "A Student with this phone number already exists"
			if req.Email != nil && existing.Email == *req.Email {
				message = "A Student with this email already exists"
			}
			utils.WriteError(w, http.StatusConflict, message)
			return
		} else if err != mongo.ErrNoDocuments {
			utils.WriteError(w, http.StatusInternalServerError, "Failed to Update Student. Please try again later")
			return
		}
	}

	if req.Batch != nil {
		batchID, err := primitive.ObjectIDFromHex(*req.Batch)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Invalid batch ID")
			return
		}

		batchExists, err := store.Exists(ctx, h.batches, bson.M{"_id": batchID, "is_deleted.status": false})
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "Failed to Update Student. Please try again later")
			return
		}
		if !batchExists {
			utils.WriteError(w, http.StatusNotFound, "Batch not Found")
			return
		}
		update["batch"] = batchID
	}

	var student models.Student
	err = h.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "is_deleted.status": false},
		bson.M{"$set": update},
		afterUpdate(),
	).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.WriteError(w, http.StatusNotFound, "Student Not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Update Student. Please try again later")
		return
	}

	utils.WriteSuccess(w, http.StatusOK,
		student.FirstName+" "+student.LastName+" (Student) Updated successfully", nil)
}

// Delete soft-deletes one student. Superadmin-only.
func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Student ID required")
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
			utils.WriteError(w, http.StatusNotFound, "Student not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete Student. Please try again later")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Student Deleted Successfully", nil)
}
