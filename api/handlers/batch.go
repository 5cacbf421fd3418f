package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ashik756/eclass-hub/api"
	"github.com/Ashik756/eclass-hub/config"
	"github.com/Ashik756/eclass-hub/databases"
	"github.com/Ashik756/eclass-hub/models"
)

// Batch exported for testing purposes
type Batch struct {
	DB  databases.BatchDatabase
	EDB databases.EnrollmentDatabase
	UDB databases.UserDatabase
}

// CreateBatchHandler creates a new batch owned by a teacher. A fresh invite code
// is generated so students can join by code.
func (b Batch) CreateBatchHandler(w http.ResponseWriter, r *http.Request) {
	var details models.BatchDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if details.TeacherID == "" {
		config.ErrorStatus("teacherID is required", http.StatusBadRequest, w, fmt.Errorf("missing teacherID"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	teacher, err := b.UDB.FindOne(ctx, bson.M{"_id": details.TeacherID})
	if err != nil {
		config.ErrorStatus("failed to get teacher by ID", http.StatusNotFound, w, err)
		return
	}
	if teacher.Details.Role != models.RoleTeacher {
		config.ErrorStatus("only teachers can create batches", http.StatusForbidden, w, fmt.Errorf("forbidden"))
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	details.InviteCode = strings.Split(uuid.New().String(), "-")[0]
	details.CreatedAt = now
	details.UpdatedAt = now

	batch := models.Batch{
		ID:      primitive.NewObjectID(),
		Details: details,
	}

	if _, err := b.DB.InsertOne(ctx, batch); err != nil {
		config.ErrorStatus("failed to insert batch", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"_id":        batch.ID.Hex(),
		"inviteCode": details.InviteCode,
	})
}

// BatchByIDHandler returns a batch by ID
func (b Batch) BatchByIDHandler(w http.ResponseWriter, r *http.Request) {
	batchID := mux.Vars(r)["batch_id"]

	bID, err := primitive.ObjectIDFromHex(batchID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := b.DB.FindOne(ctx, bson.M{"_id": bID})
	if err != nil {
		config.ErrorStatus("failed to get batch by ID", http.StatusNotFound, w, err)
		return
	}

	respBytes, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(respBytes)
}

// BatchesByTeacherIDHandler returns every batch a teacher owns, newest first
func (b Batch) BatchesByTeacherIDHandler(w http.ResponseWriter, r *http.Request) {
	teacherID := mux.Vars(r)["teacher_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	sortDesc := options.Find().SetSort(bson.D{{Key: "batch.createdAt", Value: -1}})
	dbResp, err := b.DB.Find(ctx, bson.M{"batch.teacherID": teacherID}, sortDesc)
	if err != nil {
		config.ErrorStatus("failed to get batches by teacher ID", http.StatusInternalServerError, w, err)
		return
	}
	if dbResp == nil {
		dbResp = []models.Batch{}
	}

	respBytes, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(respBytes)
}

// BatchesByStudentIDHandler returns every batch a student is enrolled in
func (b Batch) BatchesByStudentIDHandler(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["student_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	enrollments, err := b.EDB.Find(ctx, bson.M{"studentID": studentID})
	if err != nil {
		config.ErrorStatus("failed to get enrollments", http.StatusInternalServerError, w, err)
		return
	}

	batchIDs := make([]primitive.ObjectID, 0, len(enrollments))
	for _, e := range enrollments {
		bID, err := primitive.ObjectIDFromHex(e.BatchID)
		if err != nil {
			continue
		}
		batchIDs = append(batchIDs, bID)
	}

	batches := []models.Batch{}
	if len(batchIDs) > 0 {
		batches, err = b.DB.Find(ctx, bson.M{"_id": bson.M{"$in": batchIDs}})
		if err != nil {
			config.ErrorStatus("failed to get batches", http.StatusInternalServerError, w, err)
			return
		}
	}

	respBytes, err := json.Marshal(batches)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(respBytes)
}

// JoinBatchHandler enrolls a student into the batch matching an invite code.
// Joining twice is a no-op.
func (b Batch) JoinBatchHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		StudentID  string `json:"studentID"`
		InviteCode string `json:"inviteCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	batch, err := b.DB.FindOne(ctx, bson.M{"batch.inviteCode": body.InviteCode})
	if err != nil {
		config.ErrorStatus("no batch found for invite code", http.StatusNotFound, w, err)
		return
	}

	existing, _ := b.EDB.FindOne(ctx, bson.M{"batchID": batch.ID.Hex(), "studentID": body.StudentID})
	if existing != nil {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"batchID": batch.ID.Hex()})
		return
	}

	enrollment := models.Enrollment{
		ID:         primitive.NewObjectID(),
		BatchID:    batch.ID.Hex(),
		StudentID:  body.StudentID,
		EnrolledAt: primitive.NewDateTimeFromTime(time.Now()),
	}
	if _, err := b.EDB.InsertOne(ctx, enrollment); err != nil {
		config.ErrorStatus("failed to insert enrollment", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"batchID": batch.ID.Hex()})
}

// UpdateBatchFieldHandler patches arbitrary fields on the inner batch document
func (b Batch) UpdateBatchFieldHandler(w http.ResponseWriter, r *http.Request) {
	batchID := mux.Vars(r)["batch_id"]

	bID, err := primitive.ObjectIDFromHex(batchID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	set := bson.M{"batch.updatedAt": primitive.NewDateTimeFromTime(time.Now())}
	for k, v := range fields {
		set["batch."+k] = v
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := b.DB.UpdateOne(ctx, bson.M{"_id": bID}, bson.M{"$set": set}); err != nil {
		config.ErrorStatus("failed to update batch", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"updated": batchID})
}

// DeleteBatchByIDHandler deletes a batch
func (b Batch) DeleteBatchByIDHandler(w http.ResponseWriter, r *http.Request) {
	batchID := mux.Vars(r)["batch_id"]

	bID, err := primitive.ObjectIDFromHex(batchID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := b.DB.DeleteOne(ctx, bson.M{"_id": bID}); err != nil {
		config.ErrorStatus("failed to delete batch", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"deleted": batchID})
}

// CreateCheckoutSessionHandler starts a Stripe checkout for a premium batch
func (b Batch) CreateCheckoutSessionHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		BatchID    string `json:"batchID"`
		SuccessURL string `json:"successUrl"`
		CancelURL  string `json:"cancelUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	bID, err := primitive.ObjectIDFromHex(body.BatchID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	batch, err := b.DB.FindOne(ctx, bson.M{"_id": bID})
	if err != nil {
		config.ErrorStatus("failed to get batch by ID", http.StatusNotFound, w, err)
		return
	}
	if !batch.Details.Premium {
		config.ErrorStatus("batch is free to join", http.StatusBadRequest, w, fmt.Errorf("not a premium batch"))
		return
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(body.SuccessURL),
		CancelURL:  stripe.String(body.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(batch.Details.PriceCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(batch.Details.Name),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}

	s, err := session.New(params)
	if err != nil {
		config.ErrorStatus("failed to create checkout session", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"sessionId": s.ID, "url": s.URL})
}
