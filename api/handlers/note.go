package handlers

import (
	"encoding/json"
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

// Note exported for testing purposes
type Note struct {
	DB databases.NoteDatabase
}

// CreateNoteHandler attaches a study note to a batch
func (n Note) CreateNoteHandler(w http.ResponseWriter, r *http.Request) {
	var details models.NoteDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	details.CreatedAt = primitive.NewDateTimeFromTime(time.Now())

	note := models.Note{
		ID:      primitive.NewObjectID(),
		Details: details,
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := n.DB.InsertOne(ctx, note); err != nil {
		config.ErrorStatus("failed to insert note", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"_id": note.ID.Hex()})
}

// NotesByBatchIDHandler returns every note in a batch, newest first
func (n Note) NotesByBatchIDHandler(w http.ResponseWriter, r *http.Request) {
	batchID := mux.Vars(r)["batch_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	sortDesc := options.Find().SetSort(bson.D{{Key: "note.createdAt", Value: -1}})
	dbResp, err := n.DB.Find(ctx, bson.M{"note.batchID": batchID}, sortDesc)
	if err != nil {
		config.ErrorStatus("failed to get notes by batch ID", http.StatusInternalServerError, w, err)
		return
	}
	if dbResp == nil {
		dbResp = []models.Note{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteNoteByIDHandler deletes a note
func (n Note) DeleteNoteByIDHandler(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["note_id"]

	bID, err := primitive.ObjectIDFromHex(noteID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := n.DB.DeleteOne(ctx, bson.M{"_id": bID}); err != nil {
		config.ErrorStatus("failed to delete note", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"deleted": noteID})
}
