package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Class types as stored in the classes collection
const (
	ClassTypeLive     = "live"
	ClassTypeRecorded = "recorded"
)

// Class holds the structure for the classes collection in mongo
type Class struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details ClassDetails       `json:"class" bson:"class"`
}

// ClassDetails holds the inner structure for the classes collection
type ClassDetails struct {
	BatchID      string             `json:"batchID" bson:"batchID"`
	Title        string             `json:"title" bson:"title"`
	Description  string             `json:"description" bson:"description"`
	ClassType    string             `json:"classType" bson:"classType"`
	VideoURL     string             `json:"videoUrl" bson:"videoUrl"`
	LiveURL      string             `json:"liveUrl" bson:"liveUrl"`
	Duration     string             `json:"duration" bson:"duration"`
	IsLive       bool               `json:"isLive" bson:"isLive"`
	OrderIndex   int                `json:"orderIndex" bson:"orderIndex"`
	ScheduledAt  primitive.DateTime `json:"scheduledAt" bson:"scheduledAt"`
	ReminderSent bool               `json:"reminderSent" bson:"reminderSent"`
	CreatedAt    primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt    primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
