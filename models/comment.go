package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// LiveComment holds the structure for the livecomments collection in mongo. The
// author name and role are denormalized onto the row so the chat UI never has to
// join against profiles on the hot path.
type LiveComment struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	ClassID    string             `json:"classID" bson:"classID"`
	AuthorID   string             `json:"authorID" bson:"authorID"`
	AuthorName string             `json:"authorName" bson:"authorName"`
	AuthorRole string             `json:"authorRole" bson:"authorRole"` // "teacher" or "student"
	Message    string             `json:"message" bson:"message"`
	CreatedAt  primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
