package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ashik756/eclass-hub/api"
	"github.com/Ashik756/eclass-hub/config"
	"github.com/Ashik756/eclass-hub/databases"
	"github.com/Ashik756/eclass-hub/models"
)

// Class exported for testing purposes
type Class struct {
	DB databases.ClassDatabase
}

// CreateClassHandler creates a new live or recorded class in a batch
func (c Class) CreateClassHandler(w http.ResponseWriter, r *http.Request) {
	var details models.ClassDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if details.ClassType != models.ClassTypeLive && details.ClassType != models.ClassTypeRecorded {
		config.ErrorStatus("invalid class type", http.StatusBadRequest, w, fmt.Errorf("classType must be live or recorded"))
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	details.CreatedAt = now
	details.UpdatedAt = now

	class := models.Class{
		ID:      primitive.NewObjectID(),
		Details: details,
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := c.DB.InsertOne(ctx, class); err != nil {
		config.ErrorStatus("failed to insert class", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"_id": class.ID.Hex()})
}

// ClassByIDHandler returns a class by ID
func (c Class) ClassByIDHandler(w http.ResponseWriter, r *http.Request) {
	classID := mux.Vars(r)["class_id"]

	bID, err := primitive.ObjectIDFromHex(classID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := c.DB.FindOne(ctx, bson.M{"_id": bID})
	if err != nil {
		config.ErrorStatus("failed to get class by ID", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ClassesByBatchIDHandler returns every class in a batch in display order
func (c Class) ClassesByBatchIDHandler(w http.ResponseWriter, r *http.Request) {
	batchID := mux.Vars(r)["batch_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	sortAsc := options.Find().SetSort(bson.D{{Key: "class.orderIndex", Value: 1}})
	dbResp, err := c.DB.Find(ctx, bson.M{"class.batchID": batchID}, sortAsc)
	if err != nil {
		config.ErrorStatus("failed to get classes by batch ID", http.StatusInternalServerError, w, err)
		return
	}
	if dbResp == nil {
		dbResp = []models.Class{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SetLiveStatusHandler flips a live class on or off air and notifies every
// presence subscriber of the batch room
func (c Class) SetLiveStatusHandler(w http.ResponseWriter, r *http.Request) {
	classID := mux.Vars(r)["class_id"]

	bID, err := primitive.ObjectIDFromHex(classID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var body struct {
		IsLive bool `json:"isLive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	class, err := c.DB.FindOne(ctx, bson.M{"_id": bID})
	if err != nil {
		config.ErrorStatus("failed to get class by ID", http.StatusNotFound, w, err)
		return
	}

	update := bson.M{"$set": bson.M{
		"class.isLive":    body.IsLive,
		"class.updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}}
	if err := c.DB.UpdateOne(ctx, bson.M{"_id": bID}, update); err != nil {
		config.ErrorStatus("failed to update class", http.StatusInternalServerError, w, err)
		return
	}

	EmitClassLiveStatus(class.Details.BatchID, classID, body.IsLive)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{"classID": classID, "isLive": body.IsLive})
}

// UpdateClassFieldHandler patches arbitrary fields on the inner class document
func (c Class) UpdateClassFieldHandler(w http.ResponseWriter, r *http.Request) {
	classID := mux.Vars(r)["class_id"]

	bID, err := primitive.ObjectIDFromHex(classID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	set := bson.M{"class.updatedAt": primitive.NewDateTimeFromTime(time.Now())}
	for k, v := range fields {
		set["class."+k] = v
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := c.DB.UpdateOne(ctx, bson.M{"_id": bID}, bson.M{"$set": set}); err != nil {
		config.ErrorStatus("failed to update class", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"updated": classID})
}

// DeleteClassByIDHandler deletes a class
func (c Class) DeleteClassByIDHandler(w http.ResponseWriter, r *http.Request) {
	classID := mux.Vars(r)["class_id"]

	bID, err := primitive.ObjectIDFromHex(classID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := c.DB.DeleteOne(ctx, bson.M{"_id": bID}); err != nil {
		config.ErrorStatus("failed to delete class", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"deleted": classID})
}
