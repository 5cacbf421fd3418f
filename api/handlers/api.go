package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"

	"github.com/Ashik756/eclass-hub/api"
	"github.com/Ashik756/eclass-hub/api/scheduler"
	"github.com/Ashik756/eclass-hub/config"
	"github.com/Ashik756/eclass-hub/databases"
	"github.com/Ashik756/eclass-hub/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router   *mux.Router
	DB       databases.CollectionHelper
	Config   config.Config
	dbHelper databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewUserDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	hub := NewCommentHub()

	u := User{DB: databases.NewUserDatabase(a.dbHelper)}
	b := Batch{
		DB:  databases.NewBatchDatabase(a.dbHelper),
		EDB: databases.NewEnrollmentDatabase(a.dbHelper),
		UDB: databases.NewUserDatabase(a.dbHelper),
	}
	c := Class{DB: databases.NewClassDatabase(a.dbHelper)}
	n := Note{DB: databases.NewNoteDatabase(a.dbHelper)}
	cm := Comment{
		DB:  databases.NewCommentDatabase(a.dbHelper),
		UDB: databases.NewUserDatabase(a.dbHelper),
		Hub: hub,
	}
	t := Test{
		DB:  databases.NewTestDatabase(a.dbHelper),
		QDB: databases.NewQuestionDatabase(a.dbHelper),
		RDB: databases.NewResultDatabase(a.dbHelper),
		UDB: databases.NewUserDatabase(a.dbHelper),
	}
	adm := Admin{UDB: databases.NewUserDatabase(a.dbHelper)}
	cloudinaryHandler := CloudinaryHandler{}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	// realtime surfaces
	r.HandleFunc("/ws/comments", hub.HandleCommentsWebSocket)
	socketServer := InitializeSocketIO()
	r.Handle("/socket.io/", socketServer)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/user/create-user", http.HandlerFunc(u.UserCreateHandler)).Methods("POST")
	apiCreate.Handle("/user/check-user", http.HandlerFunc(u.UserCheckEmailHandler)).Methods("POST")
	apiCreate.Handle("/user/{user_id}", api.Middleware(http.HandlerFunc(u.UserHandler))).Methods("GET")

	apiCreate.Handle("/batch", api.Middleware(http.HandlerFunc(b.CreateBatchHandler))).Methods("POST")
	apiCreate.Handle("/batch/join", api.Middleware(http.HandlerFunc(b.JoinBatchHandler))).Methods("POST")
	apiCreate.Handle("/batch/checkout-session", api.Middleware(http.HandlerFunc(b.CreateCheckoutSessionHandler))).Methods("POST")
	apiCreate.Handle("/batch/{batch_id}", api.Middleware(http.HandlerFunc(b.BatchByIDHandler))).Methods("GET")
	apiCreate.Handle("/batch/{batch_id}", api.Middleware(http.HandlerFunc(b.UpdateBatchFieldHandler))).Methods("PATCH")
	apiCreate.Handle("/batch/{batch_id}", api.Middleware(http.HandlerFunc(b.DeleteBatchByIDHandler))).Methods("DELETE")
	apiCreate.Handle("/batches/teacher/{teacher_id}", api.Middleware(http.HandlerFunc(b.BatchesByTeacherIDHandler))).Methods("GET")
	apiCreate.Handle("/batches/student/{student_id}", api.Middleware(http.HandlerFunc(b.BatchesByStudentIDHandler))).Methods("GET")

	apiCreate.Handle("/class", api.Middleware(http.HandlerFunc(c.CreateClassHandler))).Methods("POST")
	apiCreate.Handle("/class/{class_id}", api.Middleware(http.HandlerFunc(c.ClassByIDHandler))).Methods("GET")
	apiCreate.Handle("/class/{class_id}", api.Middleware(http.HandlerFunc(c.UpdateClassFieldHandler))).Methods("PATCH")
	apiCreate.Handle("/class/{class_id}", api.Middleware(http.HandlerFunc(c.DeleteClassByIDHandler))).Methods("DELETE")
	apiCreate.Handle("/class/{class_id}/live-status", api.Middleware(http.HandlerFunc(c.SetLiveStatusHandler))).Methods("PUT")
	apiCreate.Handle("/classes/batch/{batch_id}", api.Middleware(http.HandlerFunc(c.ClassesByBatchIDHandler))).Methods("GET")

	apiCreate.Handle("/class/{class_id}/comments", api.Middleware(http.HandlerFunc(cm.CommentsByClassIDHandler))).Methods("GET")
	apiCreate.Handle("/class/{class_id}/comments", api.Middleware(http.HandlerFunc(cm.CreateCommentHandler))).Methods("POST")
	apiCreate.Handle("/comment/{comment_id}", api.Middleware(http.HandlerFunc(cm.CommentByIDHandler))).Methods("GET")
	apiCreate.Handle("/comment/{comment_id}", api.Middleware(http.HandlerFunc(cm.DeleteCommentHandler))).Methods("DELETE")

	apiCreate.Handle("/note", api.Middleware(http.HandlerFunc(n.CreateNoteHandler))).Methods("POST")
	apiCreate.Handle("/note/{note_id}", api.Middleware(http.HandlerFunc(n.DeleteNoteByIDHandler))).Methods("DELETE")
	apiCreate.Handle("/notes/batch/{batch_id}", api.Middleware(http.HandlerFunc(n.NotesByBatchIDHandler))).Methods("GET")

	apiCreate.Handle("/test", api.Middleware(http.HandlerFunc(t.CreateTestHandler))).Methods("POST")
	apiCreate.Handle("/test/{test_id}", api.Middleware(http.HandlerFunc(t.TestByIDHandler))).Methods("GET")
	apiCreate.Handle("/test/{test_id}/submit", api.Middleware(http.HandlerFunc(t.SubmitTestHandler))).Methods("POST")
	apiCreate.Handle("/test/{test_id}/result/{student_id}", api.Middleware(http.HandlerFunc(t.ResultByStudentHandler))).Methods("GET")
	apiCreate.Handle("/tests/batch/{batch_id}", api.Middleware(http.HandlerFunc(t.TestsByBatchIDHandler))).Methods("GET")

	apiCreate.Handle("/admin/moderator-token", api.Middleware(http.HandlerFunc(adm.CreateModeratorTokenHandler))).Methods("POST")

	apiCreate.Handle("/generate-signature", api.Middleware(http.HandlerFunc(cloudinaryHandler.GenerateSignature))).Methods("POST")
	apiCreate.Handle("/upload-thumbnail", api.Middleware(http.HandlerFunc(cloudinaryHandler.UploadThumbnail))).Methods("POST")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("eclass-hub has connected to the database")

	// initialize stripe
	stripeKey := os.Getenv("STRIPE_SECRET_KEY")
	if stripeKey == "" {
		return fmt.Errorf("stripe secret key is not set")
	}
	stripe.Key = stripeKey

	// start the class reminder scheduler
	s := scheduler.NewScheduler(
		databases.NewClassDatabase(a.dbHelper),
		databases.NewBatchDatabase(a.dbHelper),
		databases.NewEnrollmentDatabase(a.dbHelper),
		databases.NewUserDatabase(a.dbHelper),
		databases.NewSchedulerLockDatabase(a.dbHelper),
	)
	s.Start()

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
