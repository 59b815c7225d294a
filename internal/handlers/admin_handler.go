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

	"github.com/abhijith3110/Learning-Management-System/internal/auth"
	"github.com/abhijith3110/Learning-Management-System/internal/middleware"
	"github.com/abhijith3110/Learning-Management-System/internal/models"
	"github.com/abhijith3110/Learning-Management-System/internal/store"
	"github.com/abhijith3110/Learning-Management-System/internal/utils"
)

type AdminHandler struct {
	collection *mongo.Collection
	tokens     *auth.TokenManager
	uploadDir  string
	bcryptCost int
}

func NewAdminHandler(client *mongo.Client, dbName string, tokens *auth.TokenManager, uploadDir string, bcryptCost int) *AdminHandler {
	return &AdminHandler{
		collection: client.Database(dbName).Collection("admins"),
		tokens:     tokens,
		uploadDir:  uploadDir,
		bcryptCost: bcryptCost,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// dummyPasswordHash is compared against when the email lookup misses, so
// an unknown email costs the same bcrypt work as a wrong password.
var dummyPasswordHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Login verifies credentials against the stored hash and issues an access
// token. Unknown email and wrong password produce the identical 401 so the
// response never reveals which one happened.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds loginRequest
	if err := decodeJSON(r, &creds); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if creds.Email == "" || creds.Password == "" {
		utils.WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	var admin models.Admin
	err := h.collection.FindOne(ctx, bson.M{
		"email":             creds.Email,
		"is_deleted.status": false,
		"status":            models.AdminActive,
	}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(creds.Password))
			utils.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to login. Please try again later")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(creds.Password)); err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.tokens.Generate(admin.ID.Hex(), string(admin.Role))
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to login. Please try again later")
		return
	}

	utils.WriteToken(w, "Login successful", token)
}

type createAdminRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
	Gender    string `json:"gender" validate:"required,oneof=male female other"`
	DOB       string `json:"dob" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=active resigned"`
	Role      string `json:"role" validate:"required,oneof=admin superadmin"`
}

// Create inserts a new admin. Superadmin-only; the role gate runs on the
// route before this handler.
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAdminRequest
	var profileImage string

	if isMultipart(r) {
		path, err := utils.SaveProfileImage(r, h.uploadDir)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Failed to read uploaded file")
			return
		}
		profileImage = path

		req = createAdminRequest{
			FirstName: formString(r, "first_name"),
			LastName:  formString(r, "last_name"),
			Email:     formString(r, "email"),
			Password:  formString(r, "password"),
			Gender:    formString(r, "gender"),
			DOB:       formString(r, "dob"),
			Phone:     formString(r, "phone"),
			Status:    formString(r, "status"),
			Role:      formString(r, "role"),
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

	dob, err := parseDate(req.DOB)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid date format for dob")
		return
	}
	if dob.After(time.Now()) {
		utils.WriteError(w, http.StatusBadRequest, "Date of birth cannot be in the future")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	// Natural-key collision check. Soft-deleted admins still hold their
	// email and phone.
	exists, err := store.Exists(ctx, h.collection, bson.M{
		"$or": []bson.M{{"email": req.Email}, {"phone": req.Phone}},
	})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create admin. Please try again later")
		return
	}
	if exists {
		utils.WriteError(w, http.StatusConflict, "An admin with this email or phone number already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create admin. Please try again later")
		return
	}

	now := time.Now()
	newAdmin := models.Admin{
		ID:           primitive.NewObjectID(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     string(hashed),
		Gender:       models.Gender(req.Gender),
		DOB:          dob,
		Age:          utils.CalculateAge(dob, now),
		Phone:        req.Phone,
		Status:       models.AdminStatus(req.Status),
		Role:         models.AdminRole(req.Role),
		ProfileImage: profileImage,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := h.collection.InsertOne(ctx, newAdmin); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create admin. Please try again later")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated,
		newAdmin.FirstName+" "+newAdmin.LastName+" ("+string(newAdmin.Role)+") created successfully", nil)
}

// List returns one page of non-deleted admins with a case-insensitive
// search over name and email plus exact status/gender filters.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
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

	var admins []models.Admin
	total, err := store.FindPage(ctx, h.collection, store.ListQuery{
		Search:       r.URL.Query().Get("search"),
		SearchFields: []string{"first_name", "last_name", "email"},
		Filters:      filters,
		Projection:   bson.M{"password": 0, "is_deleted": 0},
		Page:         page,
	}, &admins)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get Admin list. Please try again later")
		return
	}

	if admins == nil {
		admins = []models.Admin{}
	}
	utils.WriteList(w, admins, page, total)
}

// GetOne returns a single live admin by id.
func (h *AdminHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Admin ID Required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	var admin models.Admin
	err = h.collection.FindOne(ctx, bson.M{"_id": id, "is_deleted.status": false}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.WriteError(w, http.StatusNotFound, "Admin Not Found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get Admin. Please try again later")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "", admin)
}

type updateAdminRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	Gender    *string `json:"gender" validate:"omitempty,oneof=male female other"`
	DOB       *string `json:"dob"`
	Phone     *string `json:"phone"`
	Status    *string `json:"status" validate:"omitempty,oneof=active resigned"`
	Role      *string `json:"role" validate:"omitempty,oneof=admin superadmin"`
}

// Update applies a partial update: absent fields keep their stored values,
// present fields overwrite exactly. Superadmin-only.
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Admin ID Required")
		return
	}

	var req updateAdminRequest
	var profileImage string

	if isMultipart(r) {
		path, err := utils.SaveProfileImage(r, h.uploadDir)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Failed to read uploaded file")
			return
		}
		profileImage = path

		req = updateAdminRequest{
			FirstName: formValue(r, "first_name"),
			LastName:  formValue(r, "last_name"),
			Email:     formValue(r, "email"),
			Password:  formValue(r, "password"),
			Gender:    formValue(r, "gender"),
			DOB:       formValue(r, "dob"),
			Phone:     formValue(r, "phone"),
			Status:    formValue(r, "status"),
			Role:      formValue(r, "role"),
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
	setString(update, "gender", req.Gender)
	setString(update, "phone", req.Phone)
	setString(update, "status", req.Status)
	setString(update, "role", req.Role)

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
			utils.WriteError(w, http.StatusInternalServerError, "Failed to Update Admin. Please try again later")
			return
		}
		update["password"] = string(hashed)
	}

	if profileImage != "" {
		update["profile_image"] = profileImage
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	if conflict := uniquenessTerms(req.Email, req.Phone); conflict != nil {
		exists, err := store.Exists(ctx, h.collection, bson.M{"$or": conflict, "_id": bson.M{"$ne": id}})
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "Failed to Update Admin. Please try again later")
			return
		}
		if exists {
			utils.WriteError(w, http.StatusConflict, "An admin with this email or this Phone Number already exists")
			return
		}
	}

	var admin models.Admin
	err = h.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "is_deleted.status": false},
		bson.M{"$set": update},
		afterUpdate(),
	).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.WriteError(w, http.StatusNotFound, "Admin not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to Update Admin. Please try again later")
		return
	}

	utils.WriteSuccess(w, http.StatusOK,
		admin.FirstName+" "+admin.LastName+" ("+string(admin.Role)+") Updated successfully", nil)
}

// Delete soft-deletes an admin. The transition is a single conditional
// find-and-modify; a second delete of the same id gets 404. Superadmin-only.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Admin ID is required")
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
			utils.WriteError(w, http.StatusNotFound, "Admin not found or already deleted")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete admin. Please try again later")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Admin deleted successfully", nil)
}
