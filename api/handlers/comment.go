package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ashik756/eclass-hub/api"
	"github.com/Ashik756/eclass-hub/config"
	"github.com/Ashik756/eclass-hub/databases"
	"github.com/Ashik756/eclass-hub/models"
	"github.com/Ashik756/eclass-hub/stream"
)

// Comment exported for testing purposes
type Comment struct {
	DB  databases.CommentDatabase
	UDB databases.UserDatabase
	Hub *CommentHub
}

// CommentsByClassIDHandler returns every comment for a class ordered by creation
// time ascending. A class with no comments returns an empty list, not an error.
func (c Comment) CommentsByClassIDHandler(w http.ResponseWriter, r *http.Request) {
	classID := mux.Vars(r)["class_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	sortAsc := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	dbResp, err := c.DB.Find(ctx, bson.M{"classID": classID}, sortAsc)
	if err != nil {
		config.ErrorStatus("failed to get comments by class ID", http.StatusInternalServerError, w, err)
		return
	}
	if dbResp == nil {
		dbResp = []models.LiveComment{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CommentByIDHandler returns one comment with its denormalized author fields.
// Clients call this as the follow-up fetch after an insert notification.
func (c Comment) CommentByIDHandler(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["comment_id"]

	bID, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := c.DB.FindOne(ctx, bson.M{"_id": bID})
	if err != nil {
		config.ErrorStatus("failed to get comment by ID", http.StatusNotFound, w, err)
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

// CreateCommentHandler inserts a new comment into a class's stream and pushes an
// insert notification to the class's feed subscribers. The notification carries
// only the row identity; subscribers re-fetch the canonical record.
func (c Comment) CreateCommentHandler(w http.ResponseWriter, r *http.Request) {
	classID := mux.Vars(r)["class_id"]

	var body struct {
		AuthorID string `json:"authorID"`
		Message  string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	body.Message = strings.TrimSpace(body.Message)
	if body.Message == "" {
		config.ErrorStatus("message must not be empty", http.StatusBadRequest, w, fmt.Errorf("empty message"))
		return
	}
	if body.AuthorID == "" {
		config.ErrorStatus("authorID is required", http.StatusBadRequest, w, fmt.Errorf("missing authorID"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	// denormalize the author onto the row so readers skip the profile join
	author, err := c.UDB.FindOne(ctx, bson.M{"_id": body.AuthorID})
	if err != nil {
		config.ErrorStatus("failed to get author by ID", http.StatusNotFound, w, err)
		return
	}

	comment := models.LiveComment{
		ID:         primitive.NewObjectID(),
		ClassID:    classID,
		AuthorID:   author.ID,
		AuthorName: author.Details.Name,
		AuthorRole: author.Details.Role,
		Message:    body.Message,
		CreatedAt:  primitive.NewDateTimeFromTime(time.Now()),
	}

	if _, err := c.DB.InsertOne(ctx, comment); err != nil {
		config.ErrorStatus("failed to insert comment", http.StatusInternalServerError, w, err)
		return
	}

	c.Hub.Broadcast(classID, stream.Event{
		Kind:      stream.EventInsert,
		CommentID: comment.ID.Hex(),
		ClassID:   classID,
	})

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"_id": comment.ID.Hex()})
}

// DeleteCommentHandler removes a comment and pushes a delete notification.
// Only a teacher may delete, and not their own comment; the same rule the UI
// uses to show the affordance is enforced here.
func (c Comment) DeleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["comment_id"]
	requesterID := r.URL.Query().Get("requesterID")

	bID, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	comment, err := c.DB.FindOne(ctx, bson.M{"_id": bID})
	if err != nil {
		config.ErrorStatus("failed to get comment by ID", http.StatusNotFound, w, err)
		return
	}

	requester, err := c.UDB.FindOne(ctx, bson.M{"_id": requesterID})
	if err != nil {
		config.ErrorStatus("failed to get requester by ID", http.StatusNotFound, w, err)
		return
	}
	if requester.Details.Role != models.RoleTeacher || requester.ID == comment.AuthorID {
		config.ErrorStatus("not allowed to delete this comment", http.StatusForbidden, w, fmt.Errorf("forbidden"))
		return
	}

	if err := c.DB.DeleteOne(ctx, bson.M{"_id": bID}); err != nil {
		config.ErrorStatus("failed to delete comment", http.StatusInternalServerError, w, err)
		return
	}

	c.Hub.Broadcast(comment.ClassID, stream.Event{
		Kind:      stream.EventDelete,
		CommentID: commentID,
		ClassID:   comment.ClassID,
	})

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"deleted": commentID})
}
