package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Note holds the structure for the notes collection in mongo
type Note struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details NoteDetails        `json:"note" bson:"note"`
}

// NoteDetails holds the inner structure for the notes collection
type NoteDetails struct {
	BatchID   string             `json:"batchID" bson:"batchID"`
	Title     string             `json:"title" bson:"title"`
	FileURL   string             `json:"fileUrl" bson:"fileUrl"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
