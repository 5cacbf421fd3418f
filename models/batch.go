package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Batch holds the structure for the batches collection in mongo
type Batch struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details BatchDetails       `json:"batch" bson:"batch"`
}

// BatchDetails holds the inner structure for the batches collection
type BatchDetails struct {
	Name         string             `json:"name" bson:"name"`
	Subject      string             `json:"subject" bson:"subject"`
	Description  string             `json:"description" bson:"description"`
	TeacherID    string             `json:"teacherID" bson:"teacherID"`
	InviteCode   string             `json:"inviteCode" bson:"inviteCode"`
	ThumbnailURL string             `json:"thumbnailUrl" bson:"thumbnailUrl"`
	Premium      bool               `json:"premium" bson:"premium"`
	PriceCents   int64              `json:"priceCents" bson:"priceCents"`
	CreatedAt    primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt    primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// Enrollment holds the structure for the enrollments collection in mongo. One row
// per (batch, student) pair.
type Enrollment struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	BatchID    string             `json:"batchID" bson:"batchID"`
	StudentID  string             `json:"studentID" bson:"studentID"`
	EnrolledAt primitive.DateTime `json:"enrolledAt" bson:"enrolledAt"`
}
