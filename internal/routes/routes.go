package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/abhijith3110/Learning-Management-System/internal/auth"
	"github.com/abhijith3110/Learning-Management-System/internal/config"
	"github.com/abhijith3110/Learning-Management-System/internal/handlers"
	"github.com/abhijith3110/Learning-Management-System/internal/middleware"
	"github.com/abhijith3110/Learning-Management-System/internal/store"
	"github.com/abhijith3110/Learning-Management-System/internal/utils"
)

// superadmin wraps one route with the role gate carrying that route's own
// refusal message.
func superadmin(message string, h http.HandlerFunc) http.Handler {
	return middleware.RequireSuperadmin(message)(h)
}

func SetupRouter(client *mongo.Client, cfg config.Config, tokens *auth.TokenManager) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.Recovery)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusNotFound, "Route not found")
	})

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Server is healthy"))
	}).Methods("GET")

	adminHandler := handlers.NewAdminHandler(client, cfg.DatabaseName, tokens, cfg.UploadDir, cfg.BcryptCost)
	teacherHandler := handlers.NewTeacherHandler(client, cfg.DatabaseName, cfg.UploadDir, cfg.BcryptCost)
	studentHandler := handlers.NewStudentHandler(client, cfg.DatabaseName, cfg.UploadDir, cfg.BcryptCost)
	subjectHandler := handlers.NewSubjectHandler(client, cfg.DatabaseName)
	batchHandler := handlers.NewBatchHandler(client, cfg.DatabaseName)
	lectureHandler := handlers.NewLectureHandler(client, cfg.DatabaseName)
	questionHandler := handlers.NewQuestionHandler(client, cfg.DatabaseName)
	assignmentHandler := handlers.NewAssignmentHandler(client, cfg.DatabaseName)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/admin/login", adminHandler.Login).Methods("POST")

	accounts := store.NewAccounts(client, cfg.DatabaseName)
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AdminAuth(tokens, accounts))

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/all", adminHandler.List).Methods("GET")
	admin.Handle("", superadmin("Only Super Admin can create admins", adminHandler.Create)).Methods("POST")
	admin.HandleFunc("/{id}", adminHandler.GetOne).Methods("GET")
	admin.Handle("/{id}", superadmin("Only Super Admin can Update Admins or Super admins", adminHandler.Update)).Methods("PUT")
	admin.Handle("/{id}", superadmin("Only Super Admin can delete admins or superadmins", adminHandler.Delete)).Methods("DELETE")

	teacher := protected.PathPrefix("/teacher").Subrouter()
	teacher.HandleFunc("", teacherHandler.Create).Methods("POST")
	teacher.HandleFunc("/names", teacherHandler.ListNames).Methods("GET")
	teacher.HandleFunc("/all", teacherHandler.List).Methods("GET")
	teacher.HandleFunc("/{id}", teacherHandler.GetOne).Methods("GET")
	teacher.HandleFunc("/{id}", teacherHandler.Update).Methods("PUT")
	teacher.Handle("", superadmin("Only Super Admin can delete Teachers", teacherHandler.Delete)).Methods("DELETE")

	student := protected.PathPrefix("/student").Subrouter()
	student.HandleFunc("", studentHandler.Create).Methods("POST")
	student.HandleFunc("/all", studentHandler.List).Methods("GET")
	student.HandleFunc("/{id}", studentHandler.GetOne).Methods("GET")
	student.HandleFunc("/{id}", studentHandler.Update).Methods("PUT")
	student.Handle("/{id}", superadmin("Only Super Admin can delete Students", studentHandler.Delete)).Methods("DELETE")

	subject := protected.PathPrefix("/subject").Subrouter()
	subject.HandleFunc("", subjectHandler.Create).Methods("POST")
	subject.HandleFunc("/all", subjectHandler.List).Methods("GET")
	subject.HandleFunc("/{id}", subjectHandler.GetOne).Methods("GET")
	subject.HandleFunc("/{id}", subjectHandler.Update).Methods("PUT")
	subject.Handle("/{id}", superadmin("Only Super Admin can delete Subjects", subjectHandler.Delete)).Methods("DELETE")

	batch := protected.PathPrefix("/batch").Subrouter()
	batch.HandleFunc("", batchHandler.Create).Methods("POST")
	batch.HandleFunc("/all", batchHandler.List).Methods("GET")
	batch.HandleFunc("/{id}", batchHandler.GetOne).Methods("GET")
	batch.HandleFunc("/{id}", batchHandler.Update).Methods("PUT")
	batch.HandleFunc("/{id}", batchHandler.Delete).Methods("DELETE")

	lecture := protected.PathPrefix("/lecture").Subrouter()
	lecture.HandleFunc("", lectureHandler.Create).Methods("POST")
	lecture.HandleFunc("/all", lectureHandler.List).Methods("GET")
	lecture.HandleFunc("/{id}", lectureHandler.GetOne).Methods("GET")
	lecture.HandleFunc("/{id}", lectureHandler.Update).Methods("PUT")
	lecture.HandleFunc("/{id}", lectureHandler.Delete).Methods("DELETE")

	question := protected.PathPrefix("/question").Subrouter()
	question.HandleFunc("", questionHandler.Create).Methods("POST")
	question.HandleFunc("/all", questionHandler.List).Methods("GET")
	question.HandleFunc("/{id}", questionHandler.GetOne).Methods("GET")
	question.HandleFunc("/{id}", questionHandler.Update).Methods("PUT")
	question.HandleFunc("/{id}", questionHandler.Delete).Methods("DELETE")

	assignment := protected.PathPrefix("/assignment").Subrouter()
	assignment.HandleFunc("", assignmentHandler.Create).Methods("POST")
	assignment.HandleFunc("/all", assignmentHandler.List).Methods("GET")
	assignment.HandleFunc("/{id}", assignmentHandler.GetOne).Methods("GET")
	assignment.HandleFunc("/{id}", assignmentHandler.Delete).Methods("DELETE")

	return router
}
